package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	db           *sql.DB
	masteryStore store.MasteryStore
	catalogStore store.CatalogStore
	dailyStore   store.DailyEntryStore
	srsService   srs.Service
	now          func() time.Time
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	db *sql.DB,
	masteryStore store.MasteryStore,
	catalogStore store.CatalogStore,
	dailyStore store.DailyEntryStore,
	srsService srs.Service,
	logger *slog.Logger,
) ReviewService {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}
	if masteryStore == nil {
		panic("masteryStore cannot be nil")
	}
	if catalogStore == nil {
		panic("catalogStore cannot be nil")
	}
	if dailyStore == nil {
		panic("dailyStore cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		db:           db,
		masteryStore: masteryStore,
		catalogStore: catalogStore,
		dailyStore:   dailyStore,
		srsService:   srsService,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements ReviewService.SubmitReview.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	learnerID uuid.UUID,
	itemID uuid.UUID,
	quality int,
) (*domain.MasteryRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("processing review",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("quality", quality))

	if quality < 0 || quality > 5 {
		return nil, domain.ErrInvalidQuality
	}

	// Verify the item still exists in the catalog before touching the
	// schedule.
	items, err := s.catalogStore.GetByIDs(ctx, []uuid.UUID{itemID})
	if err != nil {
		log.Error("failed to look up vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, NewSubmitReviewError("failed to look up vocabulary item", err)
	}
	if len(items) == 0 {
		log.Warn("review submitted for unknown item",
			slog.String("learner_id", learnerID.String()),
			slog.String("item_id", itemID.String()))
		return nil, ErrItemNotFound
	}

	var updated *domain.MasteryRecord
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		updated, err = s.applyReview(ctx, tx, learnerID, itemID, quality)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) || errors.Is(err, domain.ErrInvalidQuality) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("item_id", itemID.String()))
		return nil, NewSubmitReviewError("failed to submit review", err)
	}

	log.Debug("review processed",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("quality", quality),
		slog.String("status", string(updated.Status)),
		slog.Float64("ease_factor", updated.EaseFactor),
		slog.Int("interval_days", updated.Interval))

	return updated, nil
}

// CompleteDailyEntry implements ReviewService.CompleteDailyEntry.
func (s *reviewServiceImpl) CompleteDailyEntry(
	ctx context.Context,
	learnerID uuid.UUID,
	entryID uuid.UUID,
	quality int,
) (*domain.MasteryRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("completing daily entry",
		slog.String("learner_id", learnerID.String()),
		slog.String("entry_id", entryID.String()),
		slog.Int("quality", quality))

	if quality < 0 || quality > 5 {
		return nil, domain.ErrInvalidQuality
	}

	var updated *domain.MasteryRecord
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDaily := s.dailyStore.WithTx(tx)

		today := domain.DateOnly(s.now())
		entries, err := txDaily.GetForDay(ctx, learnerID, today)
		if err != nil {
			return fmt.Errorf("failed to load today's study set: %w", err)
		}

		var entry *domain.DailyWordEntry
		for _, e := range entries {
			if e.ID == entryID {
				entry = e
				break
			}
		}
		if entry == nil {
			return ErrEntryNotFound
		}
		if entry.Completed {
			return ErrEntryAlreadyCompleted
		}

		updated, err = s.applyReview(ctx, tx, learnerID, entry.ItemID, quality)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) || errors.Is(err, ErrEntryAlreadyCompleted) {
			return nil, err
		}
		log.Error("failed to complete daily entry",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("entry_id", entryID.String()))
		return nil, NewCompleteEntryError("failed to complete daily entry", err)
	}

	log.Debug("daily entry completed",
		slog.String("learner_id", learnerID.String()),
		slog.String("entry_id", entryID.String()),
		slog.String("status", string(updated.Status)))

	return updated, nil
}

// GetRecord implements ReviewService.GetRecord.
func (s *reviewServiceImpl) GetRecord(
	ctx context.Context,
	learnerID uuid.UUID,
	itemID uuid.UUID,
) (*domain.MasteryRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record, err := s.masteryStore.Get(ctx, learnerID, itemID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrRecordNotFound
		}
		log.Error("failed to retrieve mastery record",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("item_id", itemID.String()))
		return nil, NewGetRecordError("failed to retrieve mastery record", err)
	}

	return record, nil
}

// applyReview loads the learner's record for the item, runs the scheduling
// algorithm, persists the result and marks any matching uncompleted entry in
// today's study set. It must be called inside a transaction.
func (s *reviewServiceImpl) applyReview(
	ctx context.Context,
	tx *sql.Tx,
	learnerID uuid.UUID,
	itemID uuid.UUID,
	quality int,
) (*domain.MasteryRecord, error) {
	txMastery := s.masteryStore.WithTx(tx)
	txDaily := s.dailyStore.WithTx(tx)

	now := s.now()

	record, err := txMastery.Get(ctx, learnerID, itemID)
	if err != nil {
		if !store.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to get mastery record: %w", err)
		}
		// First review of this item: the algorithm starts from defaults.
		record = nil
	}

	updated, err := s.srsService.ComputeReview(record, quality, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute review: %w", err)
	}
	if record == nil {
		updated.LearnerID = learnerID
		updated.ItemID = itemID
	}

	if err := txMastery.Upsert(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save mastery record: %w", err)
	}

	// Keep today's study set in sync: reviewing an item that is part of the
	// set completes its entry, regardless of which endpoint the review came
	// through.
	today := domain.DateOnly(now)
	entries, err := txDaily.GetForDay(ctx, learnerID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to load today's study set: %w", err)
	}
	for _, entry := range entries {
		if entry.ItemID == itemID && !entry.Completed {
			if err := txDaily.MarkCompleted(ctx, entry.ID, quality); err != nil {
				return nil, fmt.Errorf("failed to mark daily entry completed: %w", err)
			}
			break
		}
	}

	return updated, nil
}
