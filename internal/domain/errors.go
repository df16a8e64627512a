// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidLevel is returned when a CEFR level is not one of A1-C2.
	ErrInvalidLevel = errors.New("invalid CEFR level")

	// ErrInvalidQuality is returned when a review quality rating is outside [0,5].
	// This indicates a programming error in the caller; retrying with the same
	// input will fail again.
	ErrInvalidQuality = errors.New("quality must be between 0 and 5")

	// ErrInvalidRating is returned when a daily-entry difficulty rating is outside [0,5].
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)
