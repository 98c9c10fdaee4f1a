package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StoreError wraps any datastore failure that is not a constraint rejection.
// Callers surface a generic message and keep their prior state.
type StoreError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError is raised when a required field is missing or malformed,
// either at the submit boundary or rejected by a database constraint. The
// constraint message is propagated as-is, not normalized.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AttachmentUploadError reports a partial attachment failure: the object was
// stored but the owning record was not patched. URL carries the stored
// object's address so a retry can re-run only the record patch.
type AttachmentUploadError struct {
	Entity  string
	OwnerID uuid.UUID
	URL     string
	Err     error
}

func (e *AttachmentUploadError) Error() string {
	return fmt.Sprintf("attachment stored for %s %s but record update failed: %v", e.Entity, e.OwnerID, e.Err)
}

func (e *AttachmentUploadError) Unwrap() error {
	return e.Err
}

// not-null and check violations map to ValidationError so the caller can
// re-show the form instead of treating it as an outage
func mapStoreError(entity, op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23502", "23514":
			return &ValidationError{Field: pqErr.Column, Message: pqErr.Message}
		}
	}
	return &StoreError{Entity: entity, Op: op, Err: err}
}
