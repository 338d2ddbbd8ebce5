package coerce

import (
	"strings"

	"github.com/google/uuid"
)

// UUIDOptions controls UUID coercion.
type UUIDOptions struct {
	AllowNull bool
}

// canonicalUUIDLen is the 8-4-4-4-12 hyphenated form. uuid.Parse also
// accepts braced, URN and bare-hex forms, which we reject up front.
const canonicalUUIDLen = 36

// UUID coerces value into a canonical lowercase UUID v4 string. Only the
// hyphenated form is accepted, case-insensitively; version and variant
// nibbles are checked explicitly.
func UUID(value any, field string, opts UUIDOptions) (*string, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nullString(field, opts.AllowNull)
	case string:
		s = strings.TrimSpace(v)
	default:
		return nil, errorf(field, "%s must be a valid UUID v4", field)
	}
	if s == "" {
		return nullString(field, opts.AllowNull)
	}

	if len(s) != canonicalUUIDLen {
		return nil, errorf(field, "%s must be a valid UUID v4", field)
	}
	u, err := uuid.Parse(s)
	if err != nil || u.Version() != 4 || u.Variant() != uuid.RFC4122 {
		return nil, errorf(field, "%s must be a valid UUID v4", field)
	}

	canonical := u.String()
	return &canonical, nil
}
