package generation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryString(t *testing.T) {
	t.Parallel()

	want := map[Category]string{
		CategoryUnknown:           "internal_error",
		CategoryInvalidInput:      "invalid_input",
		CategoryUpstreamEmpty:     "upstream_empty",
		CategoryMalformedResponse: "malformed_response",
		CategoryInvalidSchema:     "invalid_schema",
		CategoryNoValidCards:      "no_valid_cards",
		CategoryRateLimited:       "rate_limited",
		CategoryConfiguration:     "configuration_error",
	}

	for _, c := range Categories() {
		assert.Equal(t, want[c], c.String())
	}
	assert.Len(t, Categories(), len(want))
	assert.Equal(t, "internal_error", Category(99).String())
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "nil", err: nil, want: CategoryUnknown},
		{name: "plain_error", err: errors.New("boom"), want: CategoryUnknown},
		{name: "context_canceled", err: context.Canceled, want: CategoryUnknown},
		{name: "typed_error", err: NewError(CategoryNoValidCards, errors.New("x")), want: CategoryNoValidCards},
		{name: "wrapped_typed_error", err: fmt.Errorf("outer: %w", NewError(CategoryInvalidSchema, nil)), want: CategoryInvalidSchema},
		{name: "typed_error_wins_over_sentinel", err: NewError(CategoryUnknown, ErrRateLimited), want: CategoryUnknown},
		{name: "invalid_input", err: ErrInvalidInput, want: CategoryInvalidInput},
		{name: "upstream_empty", err: ErrUpstreamEmpty, want: CategoryUpstreamEmpty},
		{name: "malformed", err: ErrMalformedResponse, want: CategoryMalformedResponse},
		{name: "schema", err: ErrInvalidSchema, want: CategoryInvalidSchema},
		{name: "no_cards", err: ErrNoValidCards, want: CategoryNoValidCards},
		{name: "rate_limited", err: fmt.Errorf("%w: 429", ErrRateLimited), want: CategoryRateLimited},
		{name: "config", err: fmt.Errorf("%w: missing key", ErrInvalidConfig), want: CategoryConfiguration},
		{name: "generation_failed", err: ErrGenerationFailed, want: CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CategoryOf(tt.err))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	err := NewError(CategoryRateLimited, ErrRateLimited)
	assert.Equal(t, "rate_limited: language model rate limit exceeded", err.Error())
	assert.True(t, errors.Is(err, ErrRateLimited))

	assert.Equal(t, "upstream_empty", NewError(CategoryUpstreamEmpty, nil).Error())
}
