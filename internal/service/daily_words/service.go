package daily_words

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// DailyWord pairs a study-set entry with the vocabulary item it refers to.
type DailyWord struct {
	Entry *domain.DailyWordEntry
	Item  *domain.VocabularyItem
}

// ComposeOptions tunes a single composition call. The zero value means
// "use the configured defaults and include due reviews".
type ComposeOptions struct {
	// DailyGoal overrides the configured daily word count when positive.
	DailyGoal int

	// SkipReviews composes a set of new words only, ignoring the review
	// queue. Used for learners who explicitly want fresh material.
	SkipReviews bool
}

// StudyStatistics summarizes a learner's vocabulary progress and recent
// study behavior.
type StudyStatistics struct {
	// TotalWords is the number of items the learner has ever been scheduled.
	TotalWords int

	// StatusCounts breaks TotalWords down by mastery status.
	StatusCounts map[domain.MasteryStatus]int

	// DueCount is the number of items currently due for review.
	DueCount int

	// CompletionRate is the share of study-set entries completed within the
	// analyzed window, in [0,1].
	CompletionRate float64

	// RetentionRate is the percentage of completed reviews in the window
	// that counted as successful recalls.
	RetentionRate float64

	// StreakDays is the number of consecutive calendar days, ending today or
	// yesterday, on which the learner completed at least one entry.
	StreakDays int

	// DaysAnalyzed is the window the rates were computed over.
	DaysAnalyzed int

	// RecommendedGoal is the daily goal suggested from the window's
	// retention and completion rates.
	RecommendedGoal int
}

// DailyWordsService composes daily study sets and evaluates a learner's
// progress through the CEFR levels.
type DailyWordsService interface {
	// ComposeToday returns the learner's study set for today, composing and
	// persisting it first if it does not exist yet. Composition is
	// idempotent per (learner, day): repeated calls return the same entries.
	//
	// The set is filled with due reviews first (most urgent first, capped by
	// the review quota) and topped up with randomly chosen unseen words from
	// the learner's level, falling back to the next level when the current
	// one is exhausted.
	ComposeToday(
		ctx context.Context,
		learnerID uuid.UUID,
		level domain.Level,
		opts ComposeOptions,
	) ([]*DailyWord, error)

	// ShouldAdvance reports whether the learner has mastered enough of the
	// given level to move on: at least 80% of the level's scheduled items
	// are familiar or mastered. A learner with no records at the level has
	// not started it and never advances. The result is advisory; whether a
	// next level exists is the caller's concern.
	ShouldAdvance(
		ctx context.Context,
		learnerID uuid.UUID,
		level domain.Level,
	) (bool, error)

	// TodayCompletionRate returns the share of today's study set the learner
	// has completed, in [0,1]. Returns 0 if no set exists for today.
	TodayCompletionRate(ctx context.Context, learnerID uuid.UUID) (float64, error)

	// Statistics computes study statistics over the last days calendar days.
	// A non-positive days falls back to the default 30-day window.
	Statistics(
		ctx context.Context,
		learnerID uuid.UUID,
		days int,
	) (*StudyStatistics, error)
}

// Common error types for DailyWordsService.
var (
	// ErrInvalidLearner indicates a nil learner ID was supplied.
	ErrInvalidLearner = errors.New("learner id cannot be nil")

	// ErrInvalidLevel indicates an unknown CEFR level was supplied.
	ErrInvalidLevel = errors.New("invalid language level")
)

// ServiceError wraps errors from the daily words service with operation
// context.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "compose_today").
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

// NewComposeError returns a new ServiceError for the compose_today operation.
func NewComposeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "compose_today",
		Message:   message,
		Err:       err,
	}
}

// NewProgressionError returns a new ServiceError for the should_advance
// operation.
func NewProgressionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "should_advance",
		Message:   message,
		Err:       err,
	}
}

// NewStatisticsError returns a new ServiceError for the statistics operation.
func NewStatisticsError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "statistics",
		Message:   message,
		Err:       err,
	}
}
