package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tenantbot/api-registry/internal/config"
	"github.com/tenantbot/api-registry/internal/domain"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestService(t *testing.T, secret string, now func() time.Time) JWTService {
	t.Helper()
	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
	}, WithClock(now))
	require.NoError(t, err)
	return svc
}

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, testSecret, fixed(fixedTime))
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_CarriesIDAndEmailClaims(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSecret, time.Now)
	userID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), userID, "bob@example.com")
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, parsed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), parsed["id"])
	assert.Equal(t, "bob@example.com", parsed["email"])
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	issuer := newTestService(t, testSecret, fixed(issued))
	token, err := issuer.GenerateToken(context.Background(), userID, "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		at      time.Time
		token   string
		wantErr error
	}{
		{
			name:   "valid just before expiry",
			secret: testSecret,
			at:     issued.Add(59 * time.Minute),
			token:  token,
		},
		{
			name:   "valid one second before expiry",
			secret: testSecret,
			at:     issued.Add(time.Hour - time.Second),
			token:  token,
		},
		{
			name:    "expired at the expiry instant",
			secret:  testSecret,
			at:      issued.Add(time.Hour),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "expired one second after expiry",
			secret:  testSecret,
			at:      issued.Add(time.Hour + time.Second),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "expired after one hour",
			secret:  testSecret,
			at:      issued.Add(2 * time.Hour),
			token:   token,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "issued in the future",
			secret:  testSecret,
			at:      issued.Add(-time.Hour),
			token:   token,
			wantErr: ErrTokenNotYetValid,
		},
		{
			name:    "wrong secret",
			secret:  "wrong-secret-that-is-long-enough-for-testing",
			at:      issued,
			token:   token,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed",
			secret:  testSecret,
			at:      issued,
			token:   "not.a.token",
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty",
			secret:  testSecret,
			at:      issued,
			token:   "",
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(t, tc.secret, fixed(tc.at))

			claims, err := svc.ValidateToken(context.Background(), tc.token)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, userID, claims.UserID)
				return
			}
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.True(t, IsTokenError(err))
		})
	}
}

func TestValidateToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	now := time.Now()
	claims := jwtCustomClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := newTestService(t, testSecret, time.Now)
	_, err = svc.ValidateToken(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RequiresUserID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc := newTestService(t, testSecret, time.Now)
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
