package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/vidcards/internal/api"
	apiMiddleware "github.com/phrazzld/vidcards/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	generateHandler := api.NewGenerateHandler(
		app.cardService,
		app.config.Server.MaxBodyBytes,
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.With(apiMiddleware.RateLimit(apiMiddleware.RateLimitConfig{
			RequestLimit: app.config.Server.RateLimitRequests,
			WindowSize:   app.config.Server.RateLimitWindow,
		})).Post("/generate", generateHandler.Generate)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
