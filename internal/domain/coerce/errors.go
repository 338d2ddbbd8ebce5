// Package coerce converts untrusted request input into typed, range and
// format checked values. Every function returns an explicit error instead
// of panicking, so call sites decide how a failure surfaces.
package coerce

import "fmt"

// FieldError is a validation failure tagged with the offending field.
// Its message is safe to surface verbatim to API consumers.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func errorf(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func required(field string) *FieldError {
	return errorf(field, "%s is required", field)
}
