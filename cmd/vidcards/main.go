// Command vidcards is an operator tool for the flashcard generator. It can
// validate YouTube links offline and run a single generation from the shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/vidcards/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logs go to stderr so stdout stays machine readable.
	log, err := logger.Setup(logger.LoggerConfig{Level: os.Getenv("VIDCARDS_SERVER_LOG_LEVEL"), Output: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidcards: %v\n", err)
		os.Exit(1)
	}

	runner := NewRunner(RunnerOpts{Logger: log})

	if err := newCommand(runner).Run(ctx, os.Args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "vidcards: %v\n", err)
		}
		os.Exit(1)
	}
}
