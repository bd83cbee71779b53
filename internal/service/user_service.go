package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/service/auth"
	"github.com/tenantbot/api-registry/internal/store"
)

// UserService provides signup, signin and token-subject resolution.
type UserService interface {
	// Signup validates and stores a new user and issues a token for it.
	Signup(ctx context.Context, username, email, password string) (*domain.User, string, error)

	// Signin checks credentials and issues a token. Unknown email and wrong
	// password both yield auth.ErrInvalidCredentials.
	Signin(ctx context.Context, email, password string) (*domain.User, string, error)

	// Resolve loads the user a validated token refers to. A user that no
	// longer exists yields ErrUserUnavailable.
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	db       store.TxBeginner
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.JWTService
	logger   *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. db opens the signup transaction.
func NewUserService(
	users store.UserStore,
	db store.TxBeginner,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.JWTService,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		db:       db,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With("component", "user_service"),
	}
}

// Signup implements UserService.
func (s *UserServiceImpl) Signup(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(username, email, password)
	if err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.users.WithTx(tx)

		// The insert re-checks through the unique constraints; this pre-check
		// only gives the common case a precise message without a failed write.
		if err := txStore.FindConflict(ctx, user.Username, user.Email); err != nil {
			if store.IsDuplicateError(err) {
				log.Debug("signup rejected: user exists", "error", err)
				return err
			}
			return fmt.Errorf("failed to check existing users: %w", err)
		}

		if err := txStore.Create(ctx, user); err != nil {
			if store.IsDuplicateError(err) {
				log.Debug("signup lost a uniqueness race", "error", err)
				return err
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user signed up", "user_id", user.ID)
	return user, token, nil
}

// Signin implements UserService.
func (s *UserServiceImpl) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domain.NewValidationError("", "email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("signin rejected: unknown email")
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("signin rejected: password mismatch", "user_id", user.ID)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user signed in", "user_id", user.ID)
	return user, token, nil
}

// Resolve implements UserService.
func (s *UserServiceImpl) Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserUnavailable
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}
