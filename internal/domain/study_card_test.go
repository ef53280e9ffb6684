package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudyCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question string
		answer   string
		wantErr  error
	}{
		{name: "valid", question: "What is Go?", answer: "A programming language"},
		{name: "surrounding_whitespace_kept", question: "  Q  ", answer: "\tA\n"},
		{name: "empty_question", question: "", answer: "A", wantErr: ErrEmptyQuestion},
		{name: "blank_question", question: " \t\n", answer: "A", wantErr: ErrEmptyQuestion},
		{name: "empty_answer", question: "Q", answer: "", wantErr: ErrEmptyAnswer},
		{name: "blank_answer", question: "Q", answer: "   ", wantErr: ErrEmptyAnswer},
		{name: "both_blank_reports_question", question: "", answer: "", wantErr: ErrEmptyQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			card, err := NewStudyCard(tt.question, tt.answer)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				assert.True(t, errors.Is(err, ErrValidation))
				assert.Equal(t, StudyCard{}, card)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.question, card.Question)
			assert.Equal(t, tt.answer, card.Answer)
		})
	}
}

func TestStudyCardJSON(t *testing.T) {
	t.Parallel()

	card, err := NewStudyCard("Q1", "A1")
	require.NoError(t, err)

	data, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"question":"Q1","answer":"A1"}`, string(data))
}
