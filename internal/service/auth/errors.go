package auth

import (
	"errors"
	"fmt"

	"github.com/tenantbot/api-registry/internal/domain"
)

// Common authentication service errors. All of them classify as
// domain.ErrUnauthorized.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = fmt.Errorf("invalid authentication token: %w", domain.ErrUnauthorized)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("authentication token has expired: %w", domain.ErrUnauthorized)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf or iat in the future)
	ErrTokenNotYetValid = fmt.Errorf("authentication token not yet valid: %w", domain.ErrUnauthorized)

	// ErrInvalidCredentials is returned by signin for an unknown email and for
	// a wrong password alike.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
)

// IsTokenError reports whether err came from token validation.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrTokenNotYetValid)
}
