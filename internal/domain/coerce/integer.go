package coerce

import (
	"math"
	"strconv"
	"strings"
)

// IntOptions controls Integer coercion.
// Max <= 0 means no upper bound.
type IntOptions struct {
	Min       int64
	Max       int64
	AllowNull bool
}

// Integer coerces value into an int64 within [opts.Min, opts.Max].
// Numeric strings are trimmed before parsing; leading zeros are accepted;
// decimals are truncated toward zero ("12.5" -> 12). A []string input uses
// its first element, mirroring how url.Values carries repeated parameters.
// Nil and empty input return (nil, nil) when AllowNull is set.
func Integer(value any, field string, opts IntOptions) (*int64, error) {
	max := opts.Max
	if max <= 0 {
		max = math.MaxInt64
	}

	var n int64
	switch v := value.(type) {
	case nil:
		return nullInt(field, opts.AllowNull)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nullInt(field, opts.AllowNull)
		}
		parsed, ok := parseInt(s)
		if !ok {
			return nil, errorf(field, "%s must be a valid integer", field)
		}
		n = parsed
	case []string:
		if len(v) == 0 {
			return nullInt(field, opts.AllowNull)
		}
		return Integer(v[0], field, opts)
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float32:
		return Integer(float64(v), field, opts)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errorf(field, "%s must be a valid integer", field)
		}
		n = int64(math.Trunc(v))
	default:
		// bool, objects, other slices
		return nil, errorf(field, "%s must be a valid integer", field)
	}

	if n < opts.Min {
		return nil, errorf(field, "%s must be at least %d", field, opts.Min)
	}
	if n > max {
		return nil, errorf(field, "%s must be at most %d", field, max)
	}
	return &n, nil
}

// UserID coerces an authenticated principal identifier. Non-numeric strings
// are external/dev identities without a database row and map to nil rather
// than an error. Numeric input must be a positive integer.
func UserID(value any) (*int64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		if _, ok := parseInt(s); !ok {
			return nil, nil
		}
	}
	return Integer(value, "user id", IntOptions{Min: 1, AllowNull: true})
}

func nullInt(field string, allowNull bool) (*int64, error) {
	if allowNull {
		return nil, nil
	}
	return nil, required(field)
}

// parseInt parses s as an integer, truncating a decimal part toward zero.
func parseInt(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}
