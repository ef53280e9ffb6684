package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/vidcards/internal/generation"
	"google.golang.org/genai"
)

// Error definitions for the gemini package.
var (
	// ErrEmptyVideoURL is returned when GenerateContent is called without a URL.
	ErrEmptyVideoURL = errors.New("video URL cannot be empty")
)

// classifyError wraps an upstream failure in the generation sentinel that
// describes it.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	if apiErr, ok := asAPIError(err); ok {
		switch {
		case apiErr.Code == http.StatusTooManyRequests,
			apiErr.Status == "RESOURCE_EXHAUSTED":
			return fmt.Errorf("%w: %w", generation.ErrRateLimited, err)
		case apiErr.Code == http.StatusUnauthorized,
			apiErr.Code == http.StatusForbidden,
			apiErr.Status == "UNAUTHENTICATED",
			apiErr.Status == "PERMISSION_DENIED":
			return fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
		}
	}

	// Gemini reports a bad key as 400 INVALID_ARGUMENT, so the message is the
	// only signal for some failures.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %w", generation.ErrRateLimited, err)
	case strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
	default:
		return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}
}

// asAPIError extracts a genai.APIError, which the SDK returns by value.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}

	return genai.APIError{}, false
}
