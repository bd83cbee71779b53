package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tenantbot/api-registry/internal/api"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/service"
	"github.com/tenantbot/api-registry/internal/service/auth"
	"github.com/tenantbot/api-registry/internal/store"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", domain.NewValidationError("baseUrl", "is required", nil), http.StatusBadRequest, "baseUrl is required"},
		{"wrapped validation", fmt.Errorf("signup: %w", domain.NewValidationError("email", "has invalid format", nil)), http.StatusBadRequest, "email has invalid format"},
		{"email exists", store.ErrEmailExists, http.StatusConflict, "Email already exists"},
		{"username exists", fmt.Errorf("create: %w", store.ErrUsernameExists), http.StatusConflict, "Username already exists"},
		{"generic duplicate", store.ErrDuplicate, http.StatusConflict, "User already exists"},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Invalid or expired token"},
		{"user gone", service.ErrUserUnavailable, http.StatusUnauthorized, "User not found"},
		{"not found", store.ErrNotFound, http.StatusNotFound, "Not found"},
		{"persistence", service.NewServiceError("list_apis", "failed", errors.New("boom")), http.StatusInternalServerError, "Internal server error"},
		{"unknown", errors.New("something odd"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, api.MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMessage, api.GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_Nil(t *testing.T) {
	assert.Equal(t, "Internal server error", api.GetSafeErrorMessage(nil))
}
