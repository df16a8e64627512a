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

// PostgresDailyEntryStore implements the store.DailyEntryStore interface
// using a PostgreSQL database as the storage backend.
//
// The daily_word_entries table carries a unique constraint on
// (learner_id, item_id, study_date); CreateBatch converts a violation into
// store.ErrDailyEntryExists, which gives the composer its at-most-once
// generation guarantee under concurrent calls.
type PostgresDailyEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDailyEntryStore creates a new PostgreSQL implementation of the
// DailyEntryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDailyEntryStore(db store.DBTX, logger *slog.Logger) *PostgresDailyEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDailyEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "daily_entry_store")),
	}
}

// Ensure PostgresDailyEntryStore implements store.DailyEntryStore interface
var _ store.DailyEntryStore = (*PostgresDailyEntryStore)(nil)

const dailyColumns = `id, learner_id, item_id, study_date, completed, rating, created_at`

// GetForDay implements store.DailyEntryStore.GetForDay
func (s *PostgresDailyEntryStore) GetForDay(
	ctx context.Context,
	learnerID uuid.UUID,
	day time.Time,
) ([]*domain.DailyWordEntry, error) {
	query := `
		SELECT ` + dailyColumns + `
		FROM daily_word_entries
		WHERE learner_id = $1 AND study_date = $2
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, domain.DateOnly(day))
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to query daily entries: %w", err))
	}
	defer func() { _ = rows.Close() }()

	return collectDailyEntries(rows)
}

// GetHistory implements store.DailyEntryStore.GetHistory
func (s *PostgresDailyEntryStore) GetHistory(
	ctx context.Context,
	learnerID uuid.UUID,
	days int,
) ([]*domain.DailyWordEntry, error) {
	if days <= 0 {
		return nil, nil
	}

	since := domain.DateOnly(time.Now().UTC()).AddDate(0, 0, -(days - 1))

	query := `
		SELECT ` + dailyColumns + `
		FROM daily_word_entries
		WHERE learner_id = $1 AND study_date >= $2
		ORDER BY study_date DESC, created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, learnerID, since)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to query daily entry history: %w", err))
	}
	defer func() { _ = rows.Close() }()

	return collectDailyEntries(rows)
}

// CreateBatch implements store.DailyEntryStore.CreateBatch
// All inserts run against the store's DBTX; to make the batch atomic the
// caller wraps it in a transaction via WithTx and store.RunInTransaction.
func (s *PostgresDailyEntryStore) CreateBatch(
	ctx context.Context,
	entries []*domain.DailyWordEntry,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(entries) == 0 {
		return nil
	}

	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	query := `
		INSERT INTO daily_word_entries
			(id, learner_id, item_id, study_date, completed, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, entry := range entries {
		_, err := s.db.ExecContext(ctx, query,
			entry.ID,
			entry.LearnerID,
			entry.ItemID,
			entry.Date,
			entry.Completed,
			nullableRating(entry.Rating),
			entry.CreatedAt,
		)
		if err != nil {
			if IsUniqueViolation(err) {
				log.Debug("daily entry already exists",
					slog.String("learner_id", entry.LearnerID.String()),
					slog.String("item_id", entry.ItemID.String()),
					slog.Time("study_date", entry.Date))
				return store.ErrDailyEntryExists
			}

			log.Error("failed to insert daily entry",
				slog.String("learner_id", entry.LearnerID.String()),
				slog.String("item_id", entry.ItemID.String()),
				slog.String("error", err.Error()))
			return MapError(fmt.Errorf("failed to insert daily entry: %w", err))
		}
	}

	return nil
}

// MarkCompleted implements store.DailyEntryStore.MarkCompleted
func (s *PostgresDailyEntryStore) MarkCompleted(
	ctx context.Context,
	entryID uuid.UUID,
	rating int,
) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidRating)
	}

	query := `
		UPDATE daily_word_entries
		SET completed = TRUE, rating = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, rating, entryID)
	if err != nil {
		return MapError(fmt.Errorf("failed to mark daily entry completed: %w", err))
	}

	if err := CheckRowsAffected(result, "daily entry"); err != nil {
		return store.ErrDailyEntryNotFound
	}

	return nil
}

// WithTx implements store.DailyEntryStore.WithTx
func (s *PostgresDailyEntryStore) WithTx(tx *sql.Tx) store.DailyEntryStore {
	return &PostgresDailyEntryStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanDailyEntry maps one result row onto a domain.DailyWordEntry.
func scanDailyEntry(row rowScanner) (*domain.DailyWordEntry, error) {
	var entry domain.DailyWordEntry
	var rating sql.NullInt64

	err := row.Scan(
		&entry.ID,
		&entry.LearnerID,
		&entry.ItemID,
		&entry.Date,
		&entry.Completed,
		&rating,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Date = domain.DateOnly(entry.Date)
	if rating.Valid {
		r := int(rating.Int64)
		entry.Rating = &r
	}

	return &entry, nil
}

func collectDailyEntries(rows *sql.Rows) ([]*domain.DailyWordEntry, error) {
	var entries []*domain.DailyWordEntry
	for rows.Next() {
		entry, err := scanDailyEntry(rows)
		if err != nil {
			return nil, MapError(fmt.Errorf("failed to scan daily entry: %w", err))
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(fmt.Errorf("failed to iterate daily entries: %w", err))
	}

	return entries, nil
}

// nullableRating converts an optional rating to its SQL representation.
func nullableRating(rating *int) sql.NullInt64 {
	if rating == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*rating), Valid: true}
}
