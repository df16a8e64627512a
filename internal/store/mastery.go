package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// MasteryStore defines the interface for mastery record persistence.
// A mastery record is keyed by the (learner, item) pair; records are created
// on first review and updated on every subsequent one, never deleted.
type MasteryStore interface {
	// Get retrieves the mastery record for the given learner and item.
	// Returns ErrMasteryRecordNotFound if the learner has never reviewed the
	// item; the scheduler treats that case as "never reviewed, due now".
	Get(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.MasteryRecord, error)

	// GetAll retrieves every mastery record for the learner, in no
	// particular order.
	GetAll(ctx context.Context, learnerID uuid.UUID) ([]*domain.MasteryRecord, error)

	// GetDue retrieves the learner's records that are due at time now:
	// next_review_at is null or not after now.
	GetDue(ctx context.Context, learnerID uuid.UUID, now time.Time) ([]*domain.MasteryRecord, error)

	// Upsert inserts the record, or replaces the existing record for the
	// same (learner, item) pair. It handles domain validation internally and
	// returns validation errors wrapped in ErrInvalidEntity.
	Upsert(ctx context.Context, record *domain.MasteryRecord) error

	// WithTx returns a new MasteryStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) MasteryStore
}
