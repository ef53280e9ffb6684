package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/vidcards/internal/generation"
	"github.com/phrazzld/vidcards/internal/service"
)

// User-facing failure messages. These strings are part of the API contract.
const (
	MsgURLRequired       = "URL is required"
	MsgInvalidURL        = "Invalid YouTube URL. Please provide a valid YouTube video link."
	MsgUpstreamEmpty     = "No response from AI model. Please try again."
	MsgMalformedResponse = "Failed to parse AI response. Please try again."
	MsgInvalidSchema     = "Invalid response structure from AI. Please try again."
	MsgNoValidCards      = "No valid flashcards generated. Please try again."
	MsgRateLimited       = "API rate limit exceeded. Please try again later."
	MsgConfiguration     = "API key configuration error"
	MsgInternal          = "Failed to generate flashcards. Please try again."
)

// MapErrorToStatusCode maps generation failures to HTTP status codes based on
// their category. This prevents leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch generation.CategoryOf(err) {
	case generation.CategoryInvalidInput:
		return http.StatusBadRequest
	case generation.CategoryRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error category. Raw error text never reaches clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternal
	}

	switch generation.CategoryOf(err) {
	case generation.CategoryInvalidInput:
		if errors.Is(err, service.ErrURLRequired) {
			return MsgURLRequired
		}
		return MsgInvalidURL
	case generation.CategoryUpstreamEmpty:
		return MsgUpstreamEmpty
	case generation.CategoryMalformedResponse:
		return MsgMalformedResponse
	case generation.CategoryInvalidSchema:
		return MsgInvalidSchema
	case generation.CategoryNoValidCards:
		return MsgNoValidCards
	case generation.CategoryRateLimited:
		return MsgRateLimited
	case generation.CategoryConfiguration:
		return MsgConfiguration
	default:
		return MsgInternal
	}
}

// ErrorCode returns the machine-readable label reported in the X-Error-Code
// header for err.
func ErrorCode(err error) string {
	return generation.CategoryOf(err).String()
}
