package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/trossworks/trossd/internal/domain/coerce"
)

// FieldType is the declared type of a filterable column. Each type carries
// its own coercion, so a filter value is typed before it reaches SQL
// assembly.
type FieldType string

// Field type constants.
const (
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
	FieldString  FieldType = "string"
)

// IsValid checks if the field type is one of the supported values.
func (t FieldType) IsValid() bool {
	return t == FieldInteger || t == FieldBoolean || t == FieldString
}

// Rule refines a FieldType with optional bounds and an allowed-value set,
// used when a filter schema is declared standalone.
type Rule struct {
	Type    FieldType
	Min     int64
	Max     int64
	Allowed []string
}

// Coerce converts a raw filter value according to the field type.
func (t FieldType) Coerce(value any, field string, rule Rule) (any, error) {
	switch t {
	case FieldInteger:
		n, err := coerce.Integer(value, field, coerce.IntOptions{Min: rule.Min, Max: rule.Max})
		if err != nil {
			return nil, err
		}
		return *n, nil
	case FieldBoolean:
		return coerce.Boolean(value, field, false), nil
	case FieldString:
		if _, ok := value.(string); !ok {
			if _, ok := value.([]string); !ok {
				return nil, &coerce.FieldError{Field: field, Message: fmt.Sprintf("%s must be a string", field)}
			}
		}
		s, err := coerce.String(value, field, coerce.StringOptions{})
		if err != nil {
			return nil, err
		}
		if len(rule.Allowed) > 0 && !slices.Contains(rule.Allowed, *s) {
			return nil, &coerce.FieldError{
				Field:   field,
				Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(rule.Allowed, ", ")),
			}
		}
		return *s, nil
	default:
		return nil, fmt.Errorf("unknown field type %q for %q", t, field)
	}
}
