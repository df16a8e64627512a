package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// PostgresMasteryStore implements the store.MasteryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMasteryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMasteryStore creates a new PostgreSQL implementation of the
// MasteryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMasteryStore(db store.DBTX, logger *slog.Logger) *PostgresMasteryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMasteryStore{
		db:     db,
		logger: logger.With(slog.String("component", "mastery_store")),
	}
}

// Ensure PostgresMasteryStore implements store.MasteryStore interface
var _ store.MasteryStore = (*PostgresMasteryStore)(nil)

// masteryColumns is the column list shared by every SELECT in this store.
const masteryColumns = `learner_id, item_id, status, ease_factor, interval_days,
	repetitions, last_reviewed_at, next_review_at, created_at, updated_at`

// Get implements store.MasteryStore.Get
func (s *PostgresMasteryStore) Get(
	ctx context.Context,
	learnerID, itemID uuid.UUID,
) (*domain.MasteryRecord, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM mastery_records
		WHERE learner_id = $1 AND item_id = $2
	`

	record, err := scanMasteryRecord(s.db.QueryRowContext(ctx, query, learnerID, itemID))
	if err != nil {
		if IsNotFound(err) {
			return nil, store.ErrMasteryRecordNotFound
		}
		return nil, MapError(fmt.Errorf("failed to get mastery record: %w", err))
	}

	return record, nil
}

// GetAll implements store.MasteryStore.GetAll
func (s *PostgresMasteryStore) GetAll(
	ctx context.Context,
	learnerID uuid.UUID,
) ([]*domain.MasteryRecord, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM mastery_records
		WHERE learner_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to query mastery records: %w", err))
	}
	defer func() { _ = rows.Close() }()

	return collectMasteryRecords(rows)
}

// GetDue implements store.MasteryStore.GetDue
// A record is due when it has never been scheduled or its next review time
// is not after now.
func (s *PostgresMasteryStore) GetDue(
	ctx context.Context,
	learnerID uuid.UUID,
	now time.Time,
) ([]*domain.MasteryRecord, error) {
	query := `
		SELECT ` + masteryColumns + `
		FROM mastery_records
		WHERE learner_id = $1
		  AND (next_review_at IS NULL OR next_review_at <= $2)
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, now.UTC())
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to query due mastery records: %w", err))
	}
	defer func() { _ = rows.Close() }()

	return collectMasteryRecords(rows)
}

// Upsert implements store.MasteryStore.Upsert
// It inserts the record or replaces the existing one for the same
// (learner, item) pair. Validation errors are wrapped in store.ErrInvalidEntity.
func (s *PostgresMasteryStore) Upsert(ctx context.Context, record *domain.MasteryRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO mastery_records
			(learner_id, item_id, status, ease_factor, interval_days,
			 repetitions, last_reviewed_at, next_review_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (learner_id, item_id) DO UPDATE SET
			status = EXCLUDED.status,
			ease_factor = EXCLUDED.ease_factor,
			interval_days = EXCLUDED.interval_days,
			repetitions = EXCLUDED.repetitions,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			next_review_at = EXCLUDED.next_review_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		record.LearnerID,
		record.ItemID,
		record.Status,
		record.EaseFactor,
		record.Interval,
		record.Repetitions,
		nullableTime(record.LastReviewedAt),
		nullableTime(record.NextReviewAt),
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert mastery record",
			slog.String("learner_id", record.LearnerID.String()),
			slog.String("item_id", record.ItemID.String()),
			slog.String("error", err.Error()))
		return MapError(fmt.Errorf("failed to upsert mastery record: %w", err))
	}

	return nil
}

// WithTx implements store.MasteryStore.WithTx
func (s *PostgresMasteryStore) WithTx(tx *sql.Tx) store.MasteryStore {
	return &PostgresMasteryStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMasteryRecord maps one result row onto a domain.MasteryRecord.
func scanMasteryRecord(row rowScanner) (*domain.MasteryRecord, error) {
	var record domain.MasteryRecord
	var lastReviewed, nextReview sql.NullTime

	err := row.Scan(
		&record.LearnerID,
		&record.ItemID,
		&record.Status,
		&record.EaseFactor,
		&record.Interval,
		&record.Repetitions,
		&lastReviewed,
		&nextReview,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		t := lastReviewed.Time.UTC()
		record.LastReviewedAt = &t
	}
	if nextReview.Valid {
		t := nextReview.Time.UTC()
		record.NextReviewAt = &t
	}

	return &record, nil
}

// collectMasteryRecords drains rows into a slice, surfacing iteration errors.
func collectMasteryRecords(rows *sql.Rows) ([]*domain.MasteryRecord, error) {
	var records []*domain.MasteryRecord
	for rows.Next() {
		record, err := scanMasteryRecord(rows)
		if err != nil {
			return nil, MapError(fmt.Errorf("failed to scan mastery record: %w", err))
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(fmt.Errorf("failed to iterate mastery records: %w", err))
	}

	return records, nil
}

// nullableTime converts an optional timestamp to its SQL representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
