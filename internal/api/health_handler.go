package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tenantbot/api-registry/internal/api/shared"
	"github.com/tenantbot/api-registry/internal/platform/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency whose reachability is reported by readiness checks.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

// PingContext calls f(ctx).
func (f PingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Success   bool              `json:"success"`
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler reports liveness and readiness.
type HealthHandler struct {
	db    Pinger
	cache Pinger
	now   func() time.Time
}

// NewHealthHandler creates a HealthHandler. cache may be nil when no cache is
// configured.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, now: time.Now}
}

// Live handles GET /health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Success:   true,
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /health/ready. A database failure makes the service
// unavailable; a cache failure only degrades it.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	log := logger.FromContext(ctx)

	resp := HealthResponse{
		Success: true,
		Status:  "ok",
		Checks:  map[string]string{"database": "ok"},
	}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		log.Error("readiness check failed", "dependency", "database", "error", err)
		resp.Checks["database"] = "unavailable"
		resp.Success = false
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Checks["cache"] = "ok"
		if err := h.cache.PingContext(ctx); err != nil {
			log.Warn("readiness check failed", "dependency", "cache", "error", err)
			resp.Checks["cache"] = "unavailable"
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		}
	}

	resp.Timestamp = h.now().UTC().Format(time.RFC3339)
	shared.RespondWithJSON(w, r, status, resp)
}
