package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// DailyEntryStore defines the interface for daily study-set persistence.
//
// The store must guarantee at-most-once insertion per (learner, item, day) —
// the PostgreSQL implementation does this with a unique constraint — because
// the composer's idempotence check is not itself a lock: two concurrent
// composition calls for the same learner and day must not both insert.
type DailyEntryStore interface {
	// GetForDay retrieves the learner's entries for the given calendar day.
	// The time component of day is ignored.
	GetForDay(ctx context.Context, learnerID uuid.UUID, day time.Time) ([]*domain.DailyWordEntry, error)

	// GetHistory retrieves the learner's entries for the last days calendar
	// days up to and including today, newest first.
	GetHistory(ctx context.Context, learnerID uuid.UUID, days int) ([]*domain.DailyWordEntry, error)

	// CreateBatch persists the entries as a single atomic unit: either every
	// entry is inserted or none is. Returns ErrDailyEntryExists if any entry
	// collides with an existing (learner, item, day) row.
	CreateBatch(ctx context.Context, entries []*domain.DailyWordEntry) error

	// MarkCompleted marks the entry as completed with the learner's 0-5
	// difficulty rating. Returns ErrDailyEntryNotFound if the entry does not
	// exist.
	MarkCompleted(ctx context.Context, entryID uuid.UUID, rating int) error

	// WithTx returns a new DailyEntryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) DailyEntryStore
}
