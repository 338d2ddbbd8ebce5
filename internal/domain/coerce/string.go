package coerce

import (
	"fmt"
	"strings"
)

// StringOptions controls String coercion. Zero length bounds are unset.
type StringOptions struct {
	AllowNull bool
	MinLength int
	MaxLength int
	NoTrim    bool
}

// String coerces value into a bounded string. Non-string scalars are
// stringified. Input is trimmed unless NoTrim is set. Whitespace-only input
// fails with "cannot be empty" to distinguish it from absent input.
func String(value any, field string, opts StringOptions) (*string, error) {
	var raw string
	switch v := value.(type) {
	case nil:
		return nullString(field, opts.AllowNull)
	case string:
		raw = v
	case []string:
		if len(v) == 0 {
			return nullString(field, opts.AllowNull)
		}
		raw = v[0]
	default:
		raw = fmt.Sprint(v)
	}

	s := raw
	if !opts.NoTrim {
		s = strings.TrimSpace(s)
	}
	if s == "" {
		if opts.AllowNull {
			return nil, nil
		}
		if raw != "" {
			return nil, errorf(field, "%s cannot be empty", field)
		}
		return nil, required(field)
	}

	if opts.MinLength > 0 && len(s) < opts.MinLength {
		return nil, errorf(field, "%s must be at least %d characters", field, opts.MinLength)
	}
	if opts.MaxLength > 0 && len(s) > opts.MaxLength {
		return nil, errorf(field, "%s must be at most %d characters", field, opts.MaxLength)
	}
	return &s, nil
}

// Boolean coerces value into a bool, never failing: true/false and 0/1 pass
// through, the exact strings "true" and "false" parse, any other non-empty
// string is treated as true, and absent input yields def.
func Boolean(value any, _ string, def bool) bool {
	switch v := value.(type) {
	case nil:
		return def
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch v {
		case "":
			return def
		case "true":
			return true
		case "false":
			return false
		default:
			return true
		}
	case []string:
		if len(v) == 0 {
			return def
		}
		return Boolean(v[0], "", def)
	default:
		return def
	}
}

func nullString(field string, allowNull bool) (*string, error) {
	if allowNull {
		return nil, nil
	}
	return nil, required(field)
}
