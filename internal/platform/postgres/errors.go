package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tenantbot/api-registry/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Unique constraints on the users table, named in the initial migration.
const (
	usersUsernameConstraint = "users_username_key"
	usersEmailConstraint    = "users_email_key"
)

// MapError maps a database error to a store sentinel, keeping the original
// error in the chain. Errors without a specific mapping are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %w", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check constraint violation (%s): %w", store.ErrInvalidEntity, pgErr.ConstraintName, err)
		case notNullViolationCode:
			return fmt.Errorf("%w: not null violation (%s): %w", store.ErrInvalidEntity, pgErr.ColumnName, err)
		}
	}

	return err
}

// mapUserUniqueViolation turns a unique violation on the users table into the
// field-specific sentinel. Any other error goes through MapError.
func mapUserUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return MapError(err)
	}
	switch pgErr.ConstraintName {
	case usersUsernameConstraint:
		return fmt.Errorf("%w: %w", store.ErrUsernameExists, err)
	case usersEmailConstraint:
		return fmt.Errorf("%w: %w", store.ErrEmailExists, err)
	default:
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	}
}
