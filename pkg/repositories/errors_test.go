package repositories

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStoreErrorNotNullViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23502", Column: "name", Message: "null value in column \"name\""}

	err := mapStoreError("kitchen", "create", pqErr)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
}

func TestMapStoreErrorCheckViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23514", Message: "check constraint violated"}

	err := mapStoreError("payment", "update", pqErr)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestMapStoreErrorGeneric(t *testing.T) {
	cause := errors.New("connection reset")

	err := mapStoreError("lease", "list", cause)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "lease", storeErr.Entity)
	assert.Equal(t, "list", storeErr.Op)
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "email", Message: "is required"}
	assert.Equal(t, "email: is required", err.Error())

	bare := &ValidationError{Message: "bad input"}
	assert.Equal(t, "bad input", bare.Error())
}
