package generation

import (
	"context"
)

// ContentGenerator is the boundary to the external content generation
// service. Implementations submit a video reference together with a fixed
// flashcard instruction and return the model's raw text, which is expected
// to be JSON of the form {"cards":[{"question":...,"answer":...}]}.
//
// GenerateContent performs exactly one upstream request and never retries.
// Rate limiting must be reported as an error wrapping ErrRateLimited and
// credential or configuration problems as an error wrapping ErrInvalidConfig.
// An empty string with a nil error means the model returned no text.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, videoURL string) (string, error)
}

// ContentGeneratorFunc adapts an ordinary function to ContentGenerator.
type ContentGeneratorFunc func(ctx context.Context, videoURL string) (string, error)

// GenerateContent calls f(ctx, videoURL).
func (f ContentGeneratorFunc) GenerateContent(ctx context.Context, videoURL string) (string, error) {
	return f(ctx, videoURL)
}
