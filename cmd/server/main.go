// Package main implements the entry point for the vidcards API server,
// which turns YouTube videos into study flashcards using Gemini.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/vidcards/internal/config"
)

// main is the entry point for the vidcards server.
// It loads configuration, sets up logging, wires the application and serves
// HTTP until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("vidcards server: %v", err)
	}
}

// run performs start-up and blocks until ctx is cancelled or the server fails.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	// The server is useless without credentials; fail before listening.
	if err := cfg.LLM.RequireAPIKey(); err != nil {
		logger.Error("Gemini API key is not configured",
			"hint", "set GEMINI_API_KEY or VIDCARDS_LLM_GEMINI_API_KEY")
		return err
	}

	logger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("model", cfg.LLM.ModelName),
		slog.Duration("request_timeout", cfg.LLM.RequestTimeout),
		slog.Int("rate_limit_requests", cfg.Server.RateLimitRequests))

	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
