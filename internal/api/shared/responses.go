package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/vidcards/internal/domain"
	"github.com/phrazzld/vidcards/internal/platform/logger"
	"github.com/phrazzld/vidcards/internal/redact"
)

// Response headers set by the API.
const (
	// TraceIDHeader carries the request trace ID on every response.
	TraceIDHeader = "X-Trace-ID"

	// ErrorCodeHeader carries the failure category label on error responses.
	ErrorCodeHeader = "X-Error-Code"
)

// FailureResponse defines the standard error response structure.
// Cards is always an empty array so clients can read it unconditionally.
type FailureResponse struct {
	Cards []domain.StudyCard `json:"cards"`
	Error string             `json:"error"`
}

// NewFailureResponse creates a FailureResponse with an empty card list.
func NewFailureResponse(message string) FailureResponse {
	return FailureResponse{
		Cards: []domain.StudyCard{},
		Error: message,
	}
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithErrorAndLog writes a failure response and logs the detailed error.
// code is the machine-readable failure label sent in the X-Error-Code header;
// userMessage is the only error text the client sees.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 429 Too Many Requests: Logged at WARN level (operational concern)
// - Other 4xx errors: Logged at DEBUG level unless WithElevatedLogLevel is given
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	code string,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_code", code),
		slog.String("user_message", userMessage),
	}

	// Include the redacted error details (but only in the logs)
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if status == http.StatusTooManyRequests {
		logLevel = slog.LevelWarn
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	// The request logger installed by the trace middleware already carries
	// trace_id.
	log, ok := logger.FromContextOK(r.Context())
	if !ok {
		log = slog.Default()
		if traceID != "" {
			logAttrs = append(logAttrs, slog.String("trace_id", traceID))
		}
	}
	log.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	if code != "" {
		w.Header().Set(ErrorCodeHeader, code)
	}
	RespondWithJSON(w, r, status, NewFailureResponse(userMessage))
}
