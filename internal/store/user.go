package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a user whose HashedPassword is already set and fills in
	// the generated ID and CreatedAt.
	// Returns ErrUsernameExists or ErrEmailExists on a unique violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user, including the password hash, by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindConflict reports which unique field, if any, is already taken.
	// It returns ErrUsernameExists, ErrEmailExists or nil.
	FindConflict(ctx context.Context, username, email string) error

	// WithTx returns a UserStore that runs its queries on tx.
	WithTx(tx *sql.Tx) UserStore
}
