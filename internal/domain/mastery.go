package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for MasteryRecord
var (
	ErrEmptyLearnerID    = errors.New("mastery record learner ID cannot be empty")
	ErrEmptyItemID       = errors.New("mastery record item ID cannot be empty")
	ErrInvalidInterval   = errors.New("interval must be greater than or equal to 0")
	ErrInvalidEaseFactor = errors.New("ease factor must be at least the minimum ease factor")
	ErrInvalidStatus     = errors.New("invalid mastery status")
)

// MinEaseFactor is the floor below which a record's ease factor never drops.
const MinEaseFactor = 1.3

// InitialEaseFactor is the ease factor assigned before the first review.
const InitialEaseFactor = 2.5

// MasteryStatus describes how well a learner knows an item. It is derived
// from repetitions and interval, never set independently.
type MasteryStatus string

// Possible mastery status values.
const (
	MasteryStatusNew      MasteryStatus = "new"
	MasteryStatusLearning MasteryStatus = "learning"
	MasteryStatusFamiliar MasteryStatus = "familiar"
	MasteryStatusMastered MasteryStatus = "mastered"
)

// IsValid reports whether s is a known mastery status.
func (s MasteryStatus) IsValid() bool {
	switch s {
	case MasteryStatusNew, MasteryStatusLearning, MasteryStatusFamiliar, MasteryStatusMastered:
		return true
	default:
		return false
	}
}

// DeriveStatus computes the mastery status from the repetition count and the
// current interval in days. An item is mastered after at least three
// consecutive qualifying reviews with an interval of three weeks or more.
func DeriveStatus(repetitions, interval int) MasteryStatus {
	switch {
	case repetitions == 0:
		return MasteryStatusNew
	case repetitions >= 3 && interval >= 21:
		return MasteryStatusMastered
	case repetitions >= 2:
		return MasteryStatusFamiliar
	default:
		return MasteryStatusLearning
	}
}

// MasteryRecord tracks a learner's spaced repetition state for a single
// vocabulary item. The pair (LearnerID, ItemID) is the uniqueness key.
// Records are mutated only by the SRS scheduler, which returns updated
// copies rather than modifying in place.
type MasteryRecord struct {
	LearnerID      uuid.UUID     `json:"learner_id"`
	ItemID         uuid.UUID     `json:"item_id"`
	Status         MasteryStatus `json:"status"`
	EaseFactor     float64       `json:"ease_factor"` // Governs interval growth; never below MinEaseFactor
	Interval       int           `json:"interval"`    // Days until the next review
	Repetitions    int           `json:"repetitions"` // Consecutive qualifying reviews; reset on failure
	LastReviewedAt *time.Time    `json:"last_reviewed_at,omitempty"`
	NextReviewAt   *time.Time    `json:"next_review_at,omitempty"` // Nil means due now
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewMasteryRecord creates the initial record for a learner and item.
// The record starts unreviewed: default ease factor, zero interval, and no
// next-review date, which makes the item immediately due.
func NewMasteryRecord(learnerID, itemID uuid.UUID) (*MasteryRecord, error) {
	now := time.Now().UTC()
	record := &MasteryRecord{
		LearnerID:   learnerID,
		ItemID:      itemID,
		Status:      MasteryStatusNew,
		EaseFactor:  InitialEaseFactor,
		Interval:    0,
		Repetitions: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the MasteryRecord has valid data.
// Returns an error if any field fails validation.
func (r *MasteryRecord) Validate() error {
	if r.LearnerID == uuid.Nil {
		return ErrEmptyLearnerID
	}

	if r.ItemID == uuid.Nil {
		return ErrEmptyItemID
	}

	if r.Interval < 0 {
		return ErrInvalidInterval
	}

	if r.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}

	if !r.Status.IsValid() {
		return ErrInvalidStatus
	}

	return nil
}

// Clone returns a deep copy of the record. The scheduler works on copies to
// keep its updates free of side effects on caller-owned state.
func (r *MasteryRecord) Clone() *MasteryRecord {
	clone := *r
	if r.LastReviewedAt != nil {
		t := *r.LastReviewedAt
		clone.LastReviewedAt = &t
	}
	if r.NextReviewAt != nil {
		t := *r.NextReviewAt
		clone.NextReviewAt = &t
	}
	return &clone
}
