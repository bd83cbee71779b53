package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed token carrying the user's ID and email.
	GenerateToken(ctx context.Context, userID uuid.UUID, email string) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString and
	// returns its claims. Failures are ErrInvalidToken, ErrExpiredToken or
	// ErrTokenNotYetValid.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
