package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRegistration(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordRegistration("created", 3)
	m.RecordRegistration("created", 2)
	m.RecordRegistration("invalid", 4)
	m.RecordRegistration("failed", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsTotal.WithLabelValues("failed")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RegisteredEndpoints))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/items/1", "/items/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/{id}", "418")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestsTotal))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New(nil)
	m.RecordRegistration("created", 1)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	text := string(body)
	assert.True(t, strings.Contains(text, `registry_api_registrations_total{outcome="created"} 1`))
	assert.Contains(t, text, "go_goroutines")
}
