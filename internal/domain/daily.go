package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Daily-entry validation errors
var (
	ErrEmptyEntryID        = errors.New("daily entry ID cannot be empty")
	ErrEmptyEntryLearnerID = errors.New("daily entry learner ID cannot be empty")
	ErrEmptyEntryItemID    = errors.New("daily entry item ID cannot be empty")
	ErrEmptyEntryDate      = errors.New("daily entry date cannot be zero")
	ErrRatingWithoutReview = errors.New("daily entry cannot carry a rating before completion")
)

// DailyWordEntry assigns one vocabulary item to a learner's study set for one
// calendar day. Entries for a given (learner, day) are generated at most once;
// regeneration on the same day returns the existing set unchanged.
type DailyWordEntry struct {
	ID        uuid.UUID `json:"id"`
	LearnerID uuid.UUID `json:"learner_id"`
	ItemID    uuid.UUID `json:"item_id"`
	Date      time.Time `json:"date"` // Date-only; normalized to midnight UTC
	Completed bool      `json:"completed"`
	Rating    *int      `json:"rating,omitempty"` // 0-5, set once completed
	CreatedAt time.Time `json:"created_at"`
}

// DateOnly truncates t to its calendar day in UTC. Daily entries compare by
// day, never by time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDailyWordEntry creates an uncompleted study assignment for the given day.
// The day portion of date is kept; any time-of-day component is discarded.
func NewDailyWordEntry(learnerID, itemID uuid.UUID, date time.Time) (*DailyWordEntry, error) {
	entry := &DailyWordEntry{
		ID:        uuid.New(),
		LearnerID: learnerID,
		ItemID:    itemID,
		Date:      DateOnly(date),
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the DailyWordEntry has valid data.
// Returns an error if any field fails validation.
func (e *DailyWordEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEntryID
	}

	if e.LearnerID == uuid.Nil {
		return ErrEmptyEntryLearnerID
	}

	if e.ItemID == uuid.Nil {
		return ErrEmptyEntryItemID
	}

	if e.Date.IsZero() {
		return ErrEmptyEntryDate
	}

	if e.Rating != nil {
		if !e.Completed {
			return ErrRatingWithoutReview
		}
		if *e.Rating < 0 || *e.Rating > 5 {
			return ErrInvalidRating
		}
	}

	return nil
}
