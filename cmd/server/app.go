package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/vidcards/internal/config"
	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/metrics"
	"github.com/phrazzld/vidcards/internal/platform/gemini"
	"github.com/phrazzld/vidcards/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// registry backs the /metrics endpoint.
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	generator   generation.ContentGenerator
	cardService service.CardService
}

// newApplication creates an application backed by the Gemini generator.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	generator, err := gemini.NewGenerator(logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model", cfg.LLM.ModelName)

	return newApplicationWithGenerator(cfg, logger, generator)
}

// newApplicationWithGenerator wires the application around any content
// generator.
func newApplicationWithGenerator(
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.ContentGenerator,
) (*application, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := &application{
		config:    cfg,
		logger:    logger,
		registry:  registry,
		metrics:   metrics.New(registry),
		generator: generator,
	}

	var err error
	app.cardService, err = service.NewCardService(
		generator,
		logger,
		service.WithMetrics(app.metrics),
		service.WithRequestTimeout(cfg.LLM.RequestTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run listens on the configured port and serves until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", app.config.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if err := app.serve(ctx, listener, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
