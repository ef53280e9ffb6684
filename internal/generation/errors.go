package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the generation pipeline. Each maps to exactly
// one Category; see CategoryOf.
var (
	// ErrInvalidInput is returned when the caller supplied a missing or
	// unrecognised video URL.
	ErrInvalidInput = errors.New("invalid video URL")

	// ErrUpstreamEmpty is returned when the model produced no text.
	ErrUpstreamEmpty = errors.New("no response text from language model")

	// ErrMalformedResponse is returned when the model output is not valid JSON.
	ErrMalformedResponse = errors.New("language model response is not valid JSON")

	// ErrInvalidSchema is returned when the model output lacks a cards array.
	ErrInvalidSchema = errors.New("language model response has no cards array")

	// ErrNoValidCards is returned when no card survives validation.
	ErrNoValidCards = errors.New("no valid cards in language model response")

	// ErrRateLimited is returned when the upstream reports rate limiting or
	// quota exhaustion.
	ErrRateLimited = errors.New("language model rate limit exceeded")

	// ErrInvalidConfig is returned when the generator configuration or the
	// upstream credentials are invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGenerationFailed is returned when the upstream call fails for any
	// other reason.
	ErrGenerationFailed = errors.New("failed to generate cards from video")
)

// Category classifies a failed generation.
type Category int

// Failure categories.
const (
	CategoryUnknown Category = iota
	CategoryInvalidInput
	CategoryUpstreamEmpty
	CategoryMalformedResponse
	CategoryInvalidSchema
	CategoryNoValidCards
	CategoryRateLimited
	CategoryConfiguration
)

var categoryLabels = map[Category]string{
	CategoryUnknown:           "internal_error",
	CategoryInvalidInput:      "invalid_input",
	CategoryUpstreamEmpty:     "upstream_empty",
	CategoryMalformedResponse: "malformed_response",
	CategoryInvalidSchema:     "invalid_schema",
	CategoryNoValidCards:      "no_valid_cards",
	CategoryRateLimited:       "rate_limited",
	CategoryConfiguration:     "configuration_error",
}

// String returns the stable machine-readable label of the category.
func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[CategoryUnknown]
}

// Categories lists every category, in declaration order.
func Categories() []Category {
	return []Category{
		CategoryUnknown,
		CategoryInvalidInput,
		CategoryUpstreamEmpty,
		CategoryMalformedResponse,
		CategoryInvalidSchema,
		CategoryNoValidCards,
		CategoryRateLimited,
		CategoryConfiguration,
	}
}

// Error is a categorised generation failure.
type Error struct {
	Category Category
	Err      error
}

// NewError wraps err with a category.
func NewError(category Category, err error) *Error {
	return &Error{Category: category, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Category.String()
	}
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// CategoryOf reports the category of err. An *Error anywhere in the chain
// wins; otherwise the package sentinels are consulted. Errors that match
// nothing, including context cancellation, are CategoryUnknown.
func CategoryOf(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Category
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return CategoryInvalidInput
	case errors.Is(err, ErrUpstreamEmpty):
		return CategoryUpstreamEmpty
	case errors.Is(err, ErrMalformedResponse):
		return CategoryMalformedResponse
	case errors.Is(err, ErrInvalidSchema):
		return CategoryInvalidSchema
	case errors.Is(err, ErrNoValidCards):
		return CategoryNoValidCards
	case errors.Is(err, ErrRateLimited):
		return CategoryRateLimited
	case errors.Is(err, ErrInvalidConfig):
		return CategoryConfiguration
	default:
		return CategoryUnknown
	}
}
