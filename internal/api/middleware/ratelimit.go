package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/phrazzld/vidcards/internal/api/shared"
)

// RateLimitedMessage is the failure message sent when a client exceeds its
// request budget.
const RateLimitedMessage = "API rate limit exceeded. Please try again later."

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	// RequestLimit is the maximum number of requests allowed in the window.
	// Zero disables limiting.
	RequestLimit int
	// WindowSize is the time window for rate limiting
	WindowSize time.Duration
	// KeyFunc extracts the rate limit key from the request.
	// If nil, defaults to IP-based rate limiting
	KeyFunc httprate.KeyFunc
}

// RateLimit creates a sliding-window rate limiting middleware. Rejected
// requests receive the standard failure body with status 429 and the
// rate_limited error code.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RequestLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = httprate.KeyByIP
	}

	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowSize,
		httprate.WithKeyFuncs(keyFunc),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(cfg.WindowSize)))
			shared.RespondWithErrorAndLog(w, r,
				http.StatusTooManyRequests,
				"rate_limited",
				RateLimitedMessage,
				nil)
		}),
	)
}

// retryAfterSeconds rounds window up to whole seconds, with a minimum of one.
func retryAfterSeconds(window time.Duration) int {
	secs := int(math.Ceil(window.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
