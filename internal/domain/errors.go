package domain

import "errors"

// Study card validation errors.
var (
	// ErrValidation is wrapped by every study card validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyQuestion is returned when a card question is blank.
	ErrEmptyQuestion = errors.New("card question cannot be empty")

	// ErrEmptyAnswer is returned when a card answer is blank.
	ErrEmptyAnswer = errors.New("card answer cannot be empty")
)
