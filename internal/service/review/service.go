package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// ReviewService processes a learner's vocabulary reviews and keeps the
// mastery schedule up to date.
type ReviewService interface {
	// SubmitReview records a review of the given item with a 0-5 quality
	// rating and returns the updated mastery record. If the item appears in
	// today's uncompleted study set, the matching entry is marked completed
	// in the same transaction.
	//
	// Returns:
	//   - (nil, ErrItemNotFound): if the item does not exist in the catalog
	//   - (nil, domain.ErrInvalidQuality): if quality is outside [0,5]
	SubmitReview(
		ctx context.Context,
		learnerID uuid.UUID,
		itemID uuid.UUID,
		quality int,
	) (*domain.MasteryRecord, error)

	// CompleteDailyEntry marks one of today's study-set entries as completed
	// with the given quality rating and applies the review to the item's
	// mastery record, atomically.
	//
	// Returns:
	//   - (nil, ErrEntryNotFound): if the entry is not in today's set
	//   - (nil, ErrEntryAlreadyCompleted): if the entry was already completed
	//   - (nil, domain.ErrInvalidQuality): if quality is outside [0,5]
	CompleteDailyEntry(
		ctx context.Context,
		learnerID uuid.UUID,
		entryID uuid.UUID,
		quality int,
	) (*domain.MasteryRecord, error)

	// GetRecord retrieves the learner's mastery record for an item.
	// Returns ErrRecordNotFound if the item has never been reviewed.
	GetRecord(
		ctx context.Context,
		learnerID uuid.UUID,
		itemID uuid.UUID,
	) (*domain.MasteryRecord, error)
}

// Common error types for ReviewService.
var (
	// ErrItemNotFound indicates the vocabulary item does not exist.
	ErrItemNotFound = errors.New("vocabulary item not found")

	// ErrRecordNotFound indicates the learner has never reviewed the item.
	ErrRecordNotFound = errors.New("mastery record not found")

	// ErrEntryNotFound indicates the daily entry is not part of today's set.
	ErrEntryNotFound = errors.New("daily entry not found for today")

	// ErrEntryAlreadyCompleted indicates the daily entry was already reviewed.
	ErrEntryAlreadyCompleted = errors.New("daily entry already completed")
)

// ServiceError wraps errors from the review service with operation context,
// so consumers can differentiate failures with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "submit_review").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a new ServiceError for the submit_review
// operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_review",
		Message:   message,
		Err:       err,
	}
}

// NewCompleteEntryError returns a new ServiceError for the
// complete_daily_entry operation.
func NewCompleteEntryError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "complete_daily_entry",
		Message:   message,
		Err:       err,
	}
}

// NewGetRecordError returns a new ServiceError for the get_record operation.
func NewGetRecordError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_record",
		Message:   message,
		Err:       err,
	}
}
