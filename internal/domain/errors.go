package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Store and service errors wrap one of
// these so the API layer can map them to a status code with errors.Is.
var (
	// ErrValidation is returned when input is missing or malformed.
	// This is often wrapped by a *ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when a unique value (username, email) is already taken.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized is returned for bad credentials or an unusable token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a requested entity or route does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPersistence is returned when a database write fails mid-transaction.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. If err is nil the
// error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrValidation, so field errors that wrap a
// more specific sentinel still classify as validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
