package forms

import (
	"strconv"
	"strings"
)

// CoerceInt converts arbitrary form input to an int. String input is parsed
// the way browser forms historically did it: leading whitespace is skipped,
// an optional sign is honored, and parsing stops at the first non-digit.
// Anything unparseable becomes 0 rather than an error, so "12x" is 12 and
// "abc" is 0.
func CoerceInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	case string:
		return parseLeadingInt(n)
	}
	return 0
}

// CoerceFloat converts arbitrary form input to a float64, falling back to 0
// for anything unparseable.
func CoerceFloat(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// CoerceBool converts form input to a bool. Only an actual bool or the
// strings "true"/"false" flip it; everything else is false.
func CoerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false
		}
		return parsed
	}
	return false
}

// CoerceStringSlice accepts []string or []any of strings.
func CoerceStringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return []string{}
}

func parseLeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r")
	if s == "" {
		return 0
	}

	i := 0
	if s[0] == '+' || s[0] == '-' {
		i = 1
	}
	end := i
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == i {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
