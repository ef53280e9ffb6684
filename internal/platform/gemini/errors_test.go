package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"429 code", genai.APIError{Code: 429}, generation.ErrRateLimited},
		{"resource exhausted", genai.APIError{Code: 400, Status: "RESOURCE_EXHAUSTED"}, generation.ErrRateLimited},
		{"pointer api error", &genai.APIError{Code: 429}, generation.ErrRateLimited},
		{"wrapped api error", fmt.Errorf("call: %w", genai.APIError{Code: 429}), generation.ErrRateLimited},
		{"401", genai.APIError{Code: 401}, generation.ErrInvalidConfig},
		{"403", genai.APIError{Code: 403}, generation.ErrInvalidConfig},
		{"unauthenticated", genai.APIError{Code: 400, Status: "UNAUTHENTICATED"}, generation.ErrInvalidConfig},
		{"permission denied", genai.APIError{Status: "PERMISSION_DENIED"}, generation.ErrInvalidConfig},
		{"api key message", genai.APIError{Code: 400, Message: "API key not valid", Status: "INVALID_ARGUMENT"}, generation.ErrInvalidConfig},
		{"rate limit message", errors.New("rate limit reached"), generation.ErrRateLimited},
		{"quota message", errors.New("Quota exceeded for project"), generation.ErrRateLimited},
		{"server error", genai.APIError{Code: 500, Status: "INTERNAL"}, generation.ErrGenerationFailed},
		{"plain error", errors.New("connection reset"), generation.ErrGenerationFailed},
		{"deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), generation.ErrGenerationFailed},
		{"canceled", context.Canceled, generation.ErrGenerationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), tt.err.Error())
		})
	}

	assert.NoError(t, classifyError(nil))
}

func TestClassifyErrorKeepsContextCause(t *testing.T) {
	// A cancelled call whose message mentions a quota is still a cancellation.
	err := fmt.Errorf("quota lookup: %w", context.Canceled)
	got := classifyError(err)
	assert.ErrorIs(t, got, generation.ErrGenerationFailed)
	assert.NotErrorIs(t, got, generation.ErrRateLimited)
}
