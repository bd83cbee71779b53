package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/tenantbot/api-registry/internal/api"
	"github.com/tenantbot/api-registry/internal/api/middleware"
	"github.com/tenantbot/api-registry/internal/config"
	"github.com/tenantbot/api-registry/internal/mocks"
	"github.com/tenantbot/api-registry/internal/service"
	"github.com/tenantbot/api-registry/internal/service/auth"
)

const testSecret = "api-handler-test-secret-0123456789abcdef"

type testEnv struct {
	users  *mocks.MockUserStore
	apis   *mocks.MockAPIService
	tokens auth.JWTService
	router http.Handler
}

// newTestEnv wires the handlers the way the server does, with in-memory
// stores and a real token service.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)

	users := mocks.NewMockUserStore()
	pw := &mocks.MockPassword{}
	txDB := mocks.NewTxDB()
	t.Cleanup(func() { _ = txDB.Close() })
	userSvc := service.NewUserService(users, txDB, pw, pw, tokens, nil)
	apiSvc := &mocks.MockAPIService{}

	authMW := middleware.NewAuthMiddleware(tokens, userSvc)
	authHandler := api.NewAuthHandler(userSvc, authMW, nil)
	apiHandler := api.NewAPIHandler(apiSvc, nil)

	r := chi.NewRouter()
	r.NotFound(api.NotFound)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
		r.Get("/verify-token", authHandler.VerifyToken)
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(authMW.Authenticate)
		r.Get("/protected", authHandler.Protected)
		r.Post("/add", apiHandler.Add)
		r.Get("/all", apiHandler.All)
	})

	return &testEnv{users: users, apis: apiSvc, tokens: tokens, router: r}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns its token.
func (e *testEnv) signup(t *testing.T, username, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
