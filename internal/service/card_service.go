package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vidcards/internal/domain"
	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/metrics"
	"github.com/phrazzld/vidcards/internal/platform/logger"
	"github.com/phrazzld/vidcards/internal/redact"
	"github.com/phrazzld/vidcards/internal/youtube"
)

// CardService provides study card operations.
type CardService interface {
	// Generate produces study cards for the video at rawURL. Errors carry a
	// generation.Category retrievable with generation.CategoryOf.
	Generate(ctx context.Context, rawURL string) ([]domain.StudyCard, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	generator generation.ContentGenerator
	metrics   *metrics.Metrics
	timeout   time.Duration
	logger    *slog.Logger
}

// CardServiceOption customises a CardService.
type CardServiceOption func(*cardServiceImpl)

// WithMetrics records generation outcomes and upstream latency on m.
func WithMetrics(m *metrics.Metrics) CardServiceOption {
	return func(s *cardServiceImpl) {
		s.metrics = m
	}
}

// WithRequestTimeout bounds each Generate call. A zero or negative value
// leaves the caller's context untouched.
func WithRequestTimeout(d time.Duration) CardServiceOption {
	return func(s *cardServiceImpl) {
		s.timeout = d
	}
}

// NewCardService creates a new CardService
// It returns an error if the generator is nil.
func NewCardService(
	generator generation.ContentGenerator,
	logger *slog.Logger,
	opts ...CardServiceOption,
) (CardService, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardServiceImpl{
		generator: generator,
		logger:    logger.With(slog.String("component", "card_service")),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Generate implements CardService.Generate
func (s *cardServiceImpl) Generate(ctx context.Context, rawURL string) ([]domain.StudyCard, error) {
	log := s.loggerFor(ctx)

	cards, dropped, err := s.generate(ctx, log, rawURL)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = generation.CategoryOf(err).String()
	}
	s.metrics.ObserveOutcome(outcome, len(cards), dropped)

	return cards, err
}

func (s *cardServiceImpl) generate(
	ctx context.Context,
	log *slog.Logger,
	rawURL string,
) ([]domain.StudyCard, int, error) {
	if rawURL == "" {
		return nil, 0, generation.NewError(generation.CategoryInvalidInput, ErrURLRequired)
	}

	ref, err := youtube.Parse(rawURL)
	if err != nil {
		log.DebugContext(ctx, "rejected video URL", slog.String("error", err.Error()))
		return nil, 0, generation.NewError(generation.CategoryInvalidInput, err)
	}

	log = log.With(slog.String("video_id", ref.ID()))

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.generator.GenerateContent(ctx, ref.URL())
	elapsed := time.Since(start)
	s.metrics.ObserveUpstream(elapsed, err)

	if err != nil {
		category := generation.CategoryOf(err)
		log.ErrorContext(ctx, "content generation failed",
			slog.String("category", category.String()),
			slog.Duration("elapsed", elapsed),
			slog.String("error", redact.Error(err)))
		return nil, 0, generation.NewError(category, err)
	}

	cards, dropped, err := generation.ParseCards(text)
	if err != nil {
		category := generation.CategoryOf(err)
		attrs := []any{
			slog.String("category", category.String()),
			slog.String("error", err.Error()),
		}
		if category == generation.CategoryMalformedResponse || category == generation.CategoryInvalidSchema {
			attrs = append(attrs, slog.String("payload", redact.Payload(text)))
		}
		log.ErrorContext(ctx, "invalid model response", attrs...)
		return nil, dropped, err
	}

	if dropped > 0 {
		log.DebugContext(ctx, "dropped invalid cards",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(cards)))
	}

	log.InfoContext(ctx, "generated study cards",
		slog.Int("card_count", len(cards)),
		slog.Duration("elapsed", elapsed))

	return cards, dropped, nil
}

// loggerFor prefers the request-scoped logger installed by the trace
// middleware, falling back to the service logger.
func (s *cardServiceImpl) loggerFor(ctx context.Context) *slog.Logger {
	if ctxLogger, ok := logger.FromContextOK(ctx); ok {
		return ctxLogger.With(slog.String("component", "card_service"))
	}
	return s.logger
}

// IsURLRequired reports whether err was caused by a missing video URL.
func IsURLRequired(err error) bool {
	return errors.Is(err, ErrURLRequired)
}
