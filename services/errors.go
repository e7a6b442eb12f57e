package services

import "fmt"

// Stable error codes surfaced to API clients.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeFeeAlreadyApplied = "FEE_ALREADY_APPLIED"
	CodeNotFound          = "NOT_FOUND"
)

// Error is a service-level failure with a stable code. Validation failures
// carry field-level detail in Fields.
type Error struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrNotFound is returned for missing rows and for rows the caller does not
// own; the two cases are indistinguishable on purpose.
func ErrNotFound(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found."}
}

func ErrInvalidStatus(message string) *Error {
	return &Error{Code: CodeInvalidStatus, Message: message}
}

func ErrValidation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "Validation failed.", Fields: fields}
}
