package validation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trossworks/trossd/internal/domain/coerce"
)

// ErrorResponse is the wire shape of a validation failure. Existing API
// consumers match on it field-for-field, so it must not change.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

const errorTitle = "Validation Error"

// Reject writes the uniform 400 envelope for a failed check.
func Reject(w http.ResponseWriter, field, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorTitle,
		Field:   field,
		Message: message,
	})
}

// RejectErr writes the envelope for a coercion error, preferring the
// field recorded on the error itself.
func RejectErr(w http.ResponseWriter, field string, err error) {
	var fe *coerce.FieldError
	if errors.As(err, &fe) && fe.Field != "" {
		field = fe.Field
	}
	Reject(w, field, err.Error())
}
