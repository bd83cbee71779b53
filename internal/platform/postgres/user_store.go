package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return fmt.Errorf("%w: password hash is empty", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, user.Username, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		mapped := mapUserUniqueViolation(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("user already exists",
				slog.String("error", mapped.Error()))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

const selectUserColumns = `SELECT id, username, email, password, created_at FROM users`

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, selectUserColumns+` WHERE id = $1`, id)
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, selectUserColumns+` WHERE email = $1`, email)
}

func (s *PostgresUserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &user, nil
}

// FindConflict implements store.UserStore.FindConflict
func (s *PostgresUserStore) FindConflict(ctx context.Context, username, email string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE username = $1),
			EXISTS (SELECT 1 FROM users WHERE email = $2)
	`
	var usernameTaken, emailTaken bool
	if err := s.db.QueryRowContext(ctx, query, username, email).Scan(&usernameTaken, &emailTaken); err != nil {
		log.Error("failed to check user uniqueness", slog.String("error", err.Error()))
		return MapError(err)
	}

	switch {
	case usernameTaken:
		return store.ErrUsernameExists
	case emailTaken:
		return store.ErrEmailExists
	default:
		return nil
	}
}
