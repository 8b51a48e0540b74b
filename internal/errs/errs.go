// Package errs defines custom error types and utilities.
//
// Its purpose is to give callers of the persistence layer meaningful,
// consistent error structures: a machine-readable code, a human
// message, an HTTP status to map onto, and optional field-level errors
// for validation failures.
package errs

import "strings"

// FieldError represents a field-level validation error.
// Example: { "field": "name", "error": "is required" }
type FieldError struct {
	// Field is the field name the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type surfaced by this layer.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "REVIEW_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code for the surrounding application to use.
//   - Override: whether the message is safe to show to end users as-is.
//   - Errors: optional per-field validation errors.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError, so
// errors.Is(err, &errs.HTTPError{}) works as a type check.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES format, e.g. "Bad Request" -> "BAD_REQUEST".
// Used to derive stable machine codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
