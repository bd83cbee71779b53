package api

import (
	"errors"
	"net/http"

	"github.com/tenantbot/api-registry/internal/api/shared"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/service"
	"github.com/tenantbot/api-registry/internal/service/auth"
	"github.com/tenantbot/api-registry/internal/store"
)

// Client-facing messages.
const (
	MsgInternalError     = "Internal server error"
	MsgEndpointNotFound  = "Endpoint not found"
	MsgInvalidToken      = "Invalid or expired token"
	MsgInvalidCredential = "Invalid credentials"
)

// MapErrorToStatusCode maps the error taxonomy to an HTTP status code.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
// Validation messages name the offending field; anything unclassified
// becomes a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternalError
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, domain.ErrConflict):
		return "User already exists"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return MsgInvalidCredential
	case auth.IsTokenError(err):
		return MsgInvalidToken
	case errors.Is(err, service.ErrUserUnavailable):
		return "User not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	default:
		return MsgInternalError
	}
}

// HandleAPIError writes the error envelope for err. fallback replaces the
// generic message for 5xx responses when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)

	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MsgEndpointNotFound)
}

// MethodNotAllowed answers a known path requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}
