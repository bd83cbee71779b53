package store

import (
	"errors"
	"fmt"

	"github.com/tenantbot/api-registry/internal/domain"
)

// Common store errors used across all store implementations. Each wraps a
// domain sentinel so callers outside the persistence layer can classify
// failures with errors.Is against the domain taxonomy alone.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = fmt.Errorf("entity %w", domain.ErrNotFound)

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same email).
	ErrDuplicate = fmt.Errorf("entity already exists: %w", domain.ErrConflict)

	// ErrInvalidEntity is returned when the database rejects a row because of
	// a foreign key, check or not-null constraint.
	ErrInvalidEntity = fmt.Errorf("invalid entity: %w", domain.ErrPersistence)

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = fmt.Errorf("transaction failed: %w", domain.ErrPersistence)

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrUsernameExists indicates that a user with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
