package domain

import (
	"fmt"
	"strings"
)

// StudyCard is a single question/answer pair generated from a video.
// Both fields hold the text exactly as produced upstream; only their trimmed
// length is checked.
type StudyCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewStudyCard creates a StudyCard and validates it.
func NewStudyCard(question, answer string) (StudyCard, error) {
	card := StudyCard{
		Question: question,
		Answer:   answer,
	}

	if err := card.Validate(); err != nil {
		return StudyCard{}, err
	}

	return card, nil
}

// Validate checks that both sides of the card contain non-whitespace text.
// The returned error wraps ErrValidation and one of ErrEmptyQuestion or
// ErrEmptyAnswer.
func (c StudyCard) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyQuestion)
	}

	if strings.TrimSpace(c.Answer) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyAnswer)
	}

	return nil
}
