package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an identifier did not resolve to an existing row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is surfaced distinctly so callers can prompt for a different email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotAuthenticated means no valid session is attached to the request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden means the caller's role does not permit the operation.
	ErrForbidden = errors.New("insufficient permissions")
)

// ValidationError reports a missing or malformed field. The write that
// triggered it is aborted, leaving prior state unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
