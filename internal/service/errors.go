package service

import "errors"

// Service errors used alongside the generation categories.
var (
	// ErrURLRequired indicates the caller supplied no video URL at all.
	// It is reported with generation.CategoryInvalidInput; the API layer uses
	// it to distinguish a missing URL from a malformed one.
	ErrURLRequired = errors.New("video URL is required")
)
