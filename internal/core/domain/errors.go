package domain

import (
	"errors"
	"fmt"
)

var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateUsername = errors.New("username already exists")
var ErrSelfDelete = errors.New("you cannot delete your own user")
var ErrInvalidRole = errors.New("invalid user role")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many failed login attempts")
var ErrStoreUnavailable = errors.New("store unavailable")

// FieldError tags a failure with the input field that caused it, so the
// client can highlight the offending input. It wraps the underlying error
// for errors.Is matching.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError builds a field-tagged validation failure.
func NewFieldError(field, msg string) *FieldError {
	return &FieldError{Field: field, Err: errors.New(msg)}
}

// FieldOf returns the tagged field name when err carries one, or "".
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}
