package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phrazzld/vidcards/internal/api"
	"github.com/phrazzld/vidcards/internal/api/shared"
	"github.com/phrazzld/vidcards/internal/config"
	"github.com/phrazzld/vidcards/internal/domain"
	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/platform/gemini"
	"github.com/phrazzld/vidcards/internal/service"
	"github.com/phrazzld/vidcards/internal/youtube"
	"github.com/urfave/cli/v3"
)

// errReported marks a failure whose details were already written to the
// output; main only needs to set the exit code.
var errReported = errors.New("failure already reported")

// GeneratorFactory builds the content generator used by the generate command.
type GeneratorFactory func(logger *slog.Logger, cfg config.LLMConfig) (generation.ContentGenerator, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	loadConfig   func() (*config.Config, error)
	newGenerator GeneratorFactory
	logger       *slog.Logger
	output       io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	LoadConfig   func() (*config.Config, error)
	NewGenerator GeneratorFactory
	Logger       *slog.Logger
	Output       io.Writer
}

// NewRunner creates a new Runner, filling unset options with the production
// defaults.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.NewGenerator == nil {
		opts.NewGenerator = func(logger *slog.Logger, cfg config.LLMConfig) (generation.ContentGenerator, error) {
			return gemini.NewGenerator(logger, cfg)
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		loadConfig:   opts.LoadConfig,
		newGenerator: opts.NewGenerator,
		logger:       opts.Logger,
		output:       opts.Output,
	}
}

func newCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "vidcards",
		Usage:    "Generate study flashcards from YouTube videos",
		Writer:   r.output,
		Commands: []*cli.Command{checkCommand(r), generateCommand(r)},
		// Exit codes are decided by main; never let the library exit.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate YouTube links and print their canonical form",
		ArgsUsage: "<url>...",
		Action:    r.Check,
	}
}

func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate flashcards for one video and print the JSON result",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Override llm.request_timeout for this run",
			},
		},
		Action: r.Generate,
	}
}

// Check prints "valid <id> <canonical-url>" or "invalid <input>" for every
// argument. It fails if any argument is invalid.
func (r *Runner) Check(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return errors.New("check: at least one URL is required")
	}

	invalid := 0
	for _, arg := range args {
		ref, err := youtube.Parse(arg)
		if err != nil {
			invalid++
			if err := r.writePlain("invalid %s\n", arg); err != nil {
				return err
			}
			continue
		}
		if err := r.writePlain("valid %s %s\n", ref.ID(), ref.URL()); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d inputs invalid", errReported, invalid, len(args))
	}
	return nil
}

// Generate runs the full card generation for a single URL and prints the
// success or failure body.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("generate: exactly one URL is required")
	}
	rawURL := cmd.Args().First()

	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	timeout := cfg.LLM.RequestTimeout
	if cmd.IsSet("timeout") {
		timeout = cmd.Duration("timeout")
	}

	cards, err := r.generate(ctx, cfg, rawURL, timeout)
	if err != nil {
		if werr := r.writeJSON(shared.NewFailureResponse(api.GetSafeErrorMessage(err))); werr != nil {
			return werr
		}
		r.logger.Debug("generation failed",
			slog.String("error_code", api.ErrorCode(err)))
		return fmt.Errorf("%w: %s", errReported, api.ErrorCode(err))
	}

	return r.writeJSON(api.GenerateResponse{Cards: cards})
}

func (r *Runner) generate(
	ctx context.Context,
	cfg *config.Config,
	rawURL string,
	timeout time.Duration,
) ([]domain.StudyCard, error) {
	generator, err := r.newGenerator(r.logger.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return nil, generation.NewError(generation.CategoryConfiguration, err)
	}

	svc, err := service.NewCardService(generator, r.logger, service.WithRequestTimeout(timeout))
	if err != nil {
		return nil, err
	}

	return svc.Generate(ctx, rawURL)
}

func (r *Runner) writeJSON(data any) error {
	output, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(append(output, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.output, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
