package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tenantbot/api-registry/internal/api"
	"github.com/tenantbot/api-registry/internal/config"
	"github.com/tenantbot/api-registry/internal/platform/cache"
	"github.com/tenantbot/api-registry/internal/platform/metrics"
	"github.com/tenantbot/api-registry/internal/platform/postgres"
	"github.com/tenantbot/api-registry/internal/service"
	"github.com/tenantbot/api-registry/internal/service/auth"
	"github.com/tenantbot/api-registry/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	cache *cache.ListCache // nil when no Redis URL is configured

	metrics *metrics.Metrics

	userStore store.UserStore
	apiStore  store.APIStore

	jwtService  auth.JWTService
	userService service.UserService
	apiService  service.APIService
}

// newApplication opens the database (and the cache when configured) and wires
// stores and services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app, err := buildApplication(ctx, cfg, logger, db, prometheus.NewRegistry())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// buildApplication wires the application around an already-open database.
func buildApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	registry *prometheus.Registry,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(registry),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	if cfg.Cache.RedisURL != "" {
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		app.cache, err = cache.New(ctx, cfg.Cache.RedisURL, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("listing cache enabled", "ttl_seconds", cfg.Cache.TTLSeconds)
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.apiStore = postgres.NewPostgresAPIStore(db, logger)

	hasher := auth.NewBcrypt(cfg.Auth.BcryptCost)
	app.userService = service.NewUserService(app.userStore, db, hasher, hasher, app.jwtService, logger)

	opts := []service.APIServiceOption{service.WithRegistrationRecorder(app.metrics)}
	if app.cache != nil {
		opts = append(opts, service.WithListCache(app.cache))
	}
	app.apiService = service.NewAPIService(app.apiStore, db, logger, opts...)

	logger.Info("application initialized successfully")
	return app, nil
}

// cachePinger returns the cache as a readiness dependency, or nil.
func (app *application) cachePinger() api.Pinger {
	if app.cache == nil {
		return nil
	}
	return api.PingerFunc(app.cache.Ping)
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
