package api

import (
	"errors"
	"net/http"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/service/daily_words"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, review.ErrItemNotFound),
		errors.Is(err, review.ErrRecordNotFound),
		errors.Is(err, review.ErrEntryNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrEntryAlreadyCompleted),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidQuality),
		errors.Is(err, daily_words.ErrInvalidLearner),
		errors.Is(err, daily_words.ErrInvalidLevel),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, review.ErrItemNotFound):
		return "Vocabulary item not found"

	case errors.Is(err, review.ErrRecordNotFound):
		return "This item has not been reviewed yet"

	case errors.Is(err, review.ErrEntryNotFound):
		return "Entry not found in today's study set"

	case errors.Is(err, review.ErrEntryAlreadyCompleted):
		return "Entry already completed"

	case errors.Is(err, domain.ErrInvalidQuality):
		return "Quality rating must be between 0 and 5"

	case errors.Is(err, daily_words.ErrInvalidLevel):
		return "Invalid language level"

	case errors.Is(err, daily_words.ErrInvalidLearner):
		return "Invalid learner ID"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
