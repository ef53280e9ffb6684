package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/vidcards/internal/config"
	"github.com/phrazzld/vidcards/internal/platform/logger"
)

// setupAppLogger configures and initializes the application logger based on config settings.
// Returns the configured logger or an error if setup fails.
func setupAppLogger(cfg *config.Config, out io.Writer) (*slog.Logger, error) {
	loggerConfig := logger.LoggerConfig{
		Level:  cfg.Server.LogLevel,
		Output: out,
	}

	l, err := logger.Setup(loggerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return l, nil
}
