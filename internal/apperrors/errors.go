package apperrors

import "errors"

// Sentinel errors for the sharing subsystem. Match with errors.Is();
// pkg/responses maps them to HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrRequiredField = errors.New("required field missing")
	ErrInternal      = errors.New("internal error")
)

// WrappedError carries a user-facing message on top of a sentinel so
// services can raise taxonomy errors with context.
type WrappedError struct {
	Sentinel error
	Message  string
}

func (e *WrappedError) Error() string { return e.Message }

func (e *WrappedError) Unwrap() error { return e.Sentinel }

// NotFound builds a NOT_FOUND error with a message.
func NotFound(msg string) error {
	return &WrappedError{Sentinel: ErrNotFound, Message: msg}
}

// Conflict builds a CONFLICT error with a message.
func Conflict(msg string) error {
	return &WrappedError{Sentinel: ErrConflict, Message: msg}
}

// Unauthorized builds an UNAUTHORIZED error with a message.
func Unauthorized(msg string) error {
	return &WrappedError{Sentinel: ErrUnauthorized, Message: msg}
}

// Forbidden builds a FORBIDDEN error with a message.
func Forbidden(msg string) error {
	return &WrappedError{Sentinel: ErrForbidden, Message: msg}
}

// RequiredField builds a REQUIRED_FIELD error with a message.
func RequiredField(msg string) error {
	return &WrappedError{Sentinel: ErrRequiredField, Message: msg}
}

// Internal builds an INTERNAL_ERROR. The message is a generic user-facing
// string; the underlying cause stays in logs, never in responses.
func Internal(msg string) error {
	return &WrappedError{Sentinel: ErrInternal, Message: msg}
}
