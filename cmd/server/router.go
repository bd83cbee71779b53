package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"

	"github.com/tenantbot/api-registry/internal/api"
	apiMiddleware "github.com/tenantbot/api-registry/internal/api/middleware"
)

// setupRouter creates the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(app.metrics.Middleware)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userService)
	authHandler := api.NewAuthHandler(app.userService, authMiddleware, app.logger)
	apiHandler := api.NewAPIHandler(app.apiService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.cachePinger())
	limiter := apiMiddleware.NewRateLimiter(app.config.RateLimit.AuthRPS, app.config.RateLimit.AuthBurst)

	r.Route("/auth", func(r chi.Router) {
		r.Use(limiter.Limit)
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
		r.Get("/verify-token", authHandler.VerifyToken)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/protected", authHandler.Protected)
		r.Post("/add", apiHandler.Add)
		r.Get("/all", apiHandler.All)
	})

	r.Get("/health", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return corsHandler(app.config.CORS.AllowedOrigins)(r)
}

// corsHandler allows credentialed requests from origins. A "*" entry allows
// any origin by echoing it back, which browsers require when credentials are
// sent.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	opts := []handlers.CORSOption{
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-Id"}),
		handlers.ExposedHeaders([]string{apiMiddleware.TraceHeader}),
		handlers.AllowCredentials(),
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		opts = append(opts, handlers.AllowedOriginValidator(func(string) bool { return true }))
	} else {
		opts = append(opts, handlers.AllowedOrigins(origins))
	}
	return handlers.CORS(opts...)
}
