// Package errs defines the error shape returned to API clients and the echo
// error handler that renders it.
package errs

import (
	"net/http"
	"strings"
)

// FieldError is a field-level validation failure.
//
//	{ "field": "difficulty", "error": "must be one of: Easy Medium Hard" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the body of every non-2xx response.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string { return e.Message }

func codeFor(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// NewNotFoundError reports a missing user or problem.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{Code: codeFor(http.StatusNotFound), Message: message, Status: http.StatusNotFound}
}

// NewConflictError reports a duplicate username or problem name. It is sent
// as 400 Bad Request with a CONFLICT code.
func NewConflictError(message string) *HTTPError {
	return &HTTPError{Code: "CONFLICT", Message: message, Status: http.StatusBadRequest}
}

// NewValidationError reports malformed or out-of-range input.
func NewValidationError(message string, fields []FieldError) *HTTPError {
	return &HTTPError{
		Code:    "VALIDATION_FAILED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Errors:  fields,
	}
}

// NewInternalServerError hides the underlying cause from the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusInternalServerError),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
