package api

import (
	"log/slog"
	"net/http"

	"github.com/tenantbot/api-registry/internal/api/middleware"
	"github.com/tenantbot/api-registry/internal/api/shared"
	"github.com/tenantbot/api-registry/internal/platform/logger"
	"github.com/tenantbot/api-registry/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users  service.UserService
	auth   *middleware.AuthMiddleware
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. authMW is used by VerifyToken to
// run the same checks as protected routes.
func NewAuthHandler(users service.UserService, authMW *middleware.AuthMiddleware, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:  users,
		auth:   authMW,
		logger: logger.With("component", "auth_handler"),
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, token, err := h.users.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Success: true,
		User:    user.Public(),
		Token:   token,
	})
}

// Signin handles POST /auth/signin.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, token, err := h.users.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success: true,
		User:    user.Public(),
		Token:   token,
	})
}

// VerifyToken handles GET /auth/verify-token. Failures still answer with
// data.valid=false so clients can branch on it.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	user, status, msg, err := h.auth.Identify(r)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("token verification failed", "error", err)
		shared.RespondWithError(w, r, status, msg, shared.WithErrorData(TokenStatus{Valid: false}))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, TokenStatus{Valid: true, User: &user})
}

// Protected handles GET /api/protected by echoing the authenticated user.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, middleware.MsgTokenRequired)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, user)
}
