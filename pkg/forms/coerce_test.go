package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{"int passes through", 42, 42},
		{"float truncates", 3.9, 3},
		{"numeric string", "17", 17},
		{"leading digits win", "12x", 12},
		{"leading whitespace skipped", "  8", 8},
		{"negative", "-5", -5},
		{"explicit plus", "+5", 5},
		{"garbage becomes zero", "abc", 0},
		{"empty becomes zero", "", 0},
		{"bare sign becomes zero", "-", 0},
		{"nil becomes zero", nil, 0},
		{"bool becomes zero", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceInt(tt.input))
		})
	}
}

func TestCoerceFloat(t *testing.T) {
	assert.Equal(t, 1.5, CoerceFloat("1.5"))
	assert.Equal(t, 2.0, CoerceFloat(2))
	assert.Equal(t, 0.0, CoerceFloat("not a number"))
	assert.Equal(t, 0.0, CoerceFloat(nil))
}

func TestCoerceBool(t *testing.T) {
	assert.True(t, CoerceBool(true))
	assert.True(t, CoerceBool("true"))
	assert.False(t, CoerceBool("yes"))
	assert.False(t, CoerceBool(1))
	assert.False(t, CoerceBool(nil))
}

func TestCoerceStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, CoerceStringSlice([]string{"a", "b"}))
	assert.Equal(t, []string{"a"}, CoerceStringSlice([]any{"a", 2}))
	assert.Empty(t, CoerceStringSlice("a"))
}
