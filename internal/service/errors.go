package service

import (
	"fmt"

	"github.com/tenantbot/api-registry/internal/domain"
)

var (
	// ErrNoEndpoints is returned when an API is registered without endpoints.
	ErrNoEndpoints = domain.NewValidationError("endpoints", "must contain at least one endpoint", nil)

	// ErrUserUnavailable is returned by Resolve when a token names a user that
	// no longer exists.
	ErrUserUnavailable = fmt.Errorf("user not found: %w", domain.ErrUnauthorized)
)

// ServiceError wraps an unexpected failure with the operation it interrupted.
// It always classifies as domain.ErrPersistence.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "register_api")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// NewServiceError creates a ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is domain.ErrPersistence.
func (e *ServiceError) Is(target error) bool {
	return target == domain.ErrPersistence
}
