package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/api/shared"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/service/auth"
)

// Messages returned by Authenticate.
const (
	MsgTokenRequired = "Authorization token required"
	MsgInvalidToken  = "Invalid or expired token"
	MsgUserNotFound  = "User not found"
	MsgInternalError = "Internal server error"
)

// UserResolver loads the user a validated token refers to.
type UserResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
	}
}

// Authenticate requires a valid bearer token naming an existing user and
// stores that user in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, status, msg, err := m.Identify(r)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, status, msg, err)
			return
		}

		ctx := shared.WithUser(r.Context(), user)
		log := logger.FromContext(ctx).With("user_id", user.ID)
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identify runs the bearer token checks without writing a response. On
// failure it returns the status and client message to answer with.
func (m *AuthMiddleware) Identify(r *http.Request) (domain.PublicUser, int, string, error) {
	token, ok := BearerToken(r)
	if !ok {
		return domain.PublicUser{}, http.StatusUnauthorized, MsgTokenRequired, auth.ErrInvalidToken
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		return domain.PublicUser{}, http.StatusUnauthorized, MsgInvalidToken, err
	}

	user, err := m.users.Resolve(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return domain.PublicUser{}, http.StatusUnauthorized, MsgUserNotFound, err
		}
		return domain.PublicUser{}, http.StatusInternalServerError, MsgInternalError, err
	}

	return domain.PublicUser{ID: user.ID, Username: user.Username, Email: user.Email}, http.StatusOK, "", nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// GetUser returns the user Authenticate stored in the request context.
func GetUser(r *http.Request) (domain.PublicUser, bool) {
	return shared.UserFromContext(r.Context())
}
