package daily_words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/config"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

const (
	// minReviewWords is the review quota floor. Even a tiny daily goal
	// reserves this many slots for due reviews, so a learner cannot starve
	// the review queue by shrinking the goal.
	minReviewWords = 5

	// defaultStatsWindow is the statistics window used when the caller does
	// not specify one.
	defaultStatsWindow = 30
)

// Verify interface compliance at compile time
var _ DailyWordsService = (*dailyWordsServiceImpl)(nil)

// dailyWordsServiceImpl implements the DailyWordsService interface.
type dailyWordsServiceImpl struct {
	db            *sql.DB
	masteryStore  store.MasteryStore
	catalogStore  store.CatalogStore
	dailyStore    store.DailyEntryStore
	srsService    srs.Service
	defaultGoal   int
	newWordsRatio float64
	now           func() time.Time
	rng           *rand.Rand
	logger        *slog.Logger
}

// NewDailyWordsService creates a new DailyWordsService implementation.
func NewDailyWordsService(
	db *sql.DB,
	masteryStore store.MasteryStore,
	catalogStore store.CatalogStore,
	dailyStore store.DailyEntryStore,
	srsService srs.Service,
	studyCfg config.StudyConfig,
	logger *slog.Logger,
) DailyWordsService {
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

	return &dailyWordsServiceImpl{
		db:            db,
		masteryStore:  masteryStore,
		catalogStore:  catalogStore,
		dailyStore:    dailyStore,
		srsService:    srsService,
		defaultGoal:   studyCfg.DailyGoal,
		newWordsRatio: studyCfg.NewWordsRatio,
		now:           func() time.Time { return time.Now().UTC() },
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:        logger.With(slog.String("component", "daily_words_service")),
	}
}

// ComposeToday implements DailyWordsService.ComposeToday.
func (s *dailyWordsServiceImpl) ComposeToday(
	ctx context.Context,
	learnerID uuid.UUID,
	level domain.Level,
	opts ComposeOptions,
) ([]*DailyWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}
	if !level.IsValid() {
		return nil, ErrInvalidLevel
	}

	now := s.now()
	today := domain.DateOnly(now)

	// Idempotence check: a set composed earlier today is returned as-is.
	existing, err := s.dailyStore.GetForDay(ctx, learnerID, today)
	if err != nil {
		log.Error("failed to load today's study set",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewComposeError("failed to load today's study set", err)
	}
	if len(existing) > 0 {
		log.Debug("study set already composed for today",
			slog.String("learner_id", learnerID.String()),
			slog.Int("entry_count", len(existing)))
		return s.attachItems(ctx, existing)
	}

	goal := opts.DailyGoal
	if goal <= 0 {
		goal = s.defaultGoal
	}

	var reviewItems []*domain.VocabularyItem
	if !opts.SkipReviews {
		reviewItems, err = s.selectReviewWords(ctx, learnerID, goal, now)
		if err != nil {
			log.Error("failed to select review words",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()))
			return nil, NewComposeError("failed to select review words", err)
		}
	}

	var newItems []*domain.VocabularyItem
	if needed := goal - len(reviewItems); needed > 0 {
		newItems, err = s.selectNewWords(ctx, learnerID, level, needed)
		if err != nil {
			log.Error("failed to select new words",
				slog.String("error", err.Error()),
				slog.String("learner_id", learnerID.String()),
				slog.String("level", string(level)))
			return nil, NewComposeError("failed to select new words", err)
		}
	}

	items := make([]*domain.VocabularyItem, 0, len(reviewItems)+len(newItems))
	items = append(items, reviewItems...)
	items = append(items, newItems...)

	if len(items) == 0 {
		log.Info("nothing to study today",
			slog.String("learner_id", learnerID.String()),
			slog.String("level", string(level)))
		return []*DailyWord{}, nil
	}

	words := make([]*DailyWord, 0, len(items))
	entries := make([]*domain.DailyWordEntry, 0, len(items))
	for _, item := range items {
		entry, err := domain.NewDailyWordEntry(learnerID, item.ID, now)
		if err != nil {
			return nil, NewComposeError("failed to create daily entry", err)
		}
		entries = append(entries, entry)
		words = append(words, &DailyWord{Entry: entry, Item: item})
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.dailyStore.WithTx(tx).CreateBatch(ctx, entries)
	})
	if err != nil {
		// Another request composed the set concurrently; the unique
		// constraint makes exactly one batch win. Return the winner's set.
		if errors.Is(err, store.ErrDailyEntryExists) {
			log.Debug("concurrent composition detected, returning existing set",
				slog.String("learner_id", learnerID.String()))
			winner, getErr := s.dailyStore.GetForDay(ctx, learnerID, today)
			if getErr != nil {
				return nil, NewComposeError("failed to load concurrently composed set", getErr)
			}
			return s.attachItems(ctx, winner)
		}
		log.Error("failed to persist study set",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewComposeError("failed to persist study set", err)
	}

	log.Info("composed today's study set",
		slog.String("learner_id", learnerID.String()),
		slog.String("level", string(level)),
		slog.Int("review_count", len(reviewItems)),
		slog.Int("new_count", len(newItems)))

	return words, nil
}

// selectReviewWords picks the most urgent due items up to the review quota.
// The quota is a share of the goal but never below minReviewWords; it is the
// available due records that limit it in practice.
func (s *dailyWordsServiceImpl) selectReviewWords(
	ctx context.Context,
	learnerID uuid.UUID,
	goal int,
	now time.Time,
) ([]*domain.VocabularyItem, error) {
	due, err := s.masteryStore.GetDue(ctx, learnerID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get due records: %w", err)
	}
	if len(due) == 0 {
		return nil, nil
	}

	ordered := s.srsService.Prioritize(due, now)

	quota := int(math.Ceil(float64(goal) * (1 - s.newWordsRatio)))
	if quota < minReviewWords {
		quota = minReviewWords
	}

	ids := make([]uuid.UUID, len(ordered))
	for i, record := range ordered {
		ids[i] = record.ItemID
	}
	items, err := s.catalogStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve due items: %w", err)
	}
	byID := make(map[uuid.UUID]*domain.VocabularyItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	// Walk the priority order, skipping records whose item was removed from
	// the catalog, until the quota is filled.
	selected := make([]*domain.VocabularyItem, 0, quota)
	for _, record := range ordered {
		if len(selected) == quota {
			break
		}
		item, ok := byID[record.ItemID]
		if !ok {
			continue
		}
		selected = append(selected, item)
	}

	return selected, nil
}

// selectNewWords picks count random unseen items from the learner's level.
// When the level cannot fill the count on its own, unseen items from the next
// level top up the pool before shuffling; a learner at the top level simply
// gets fewer words.
func (s *dailyWordsServiceImpl) selectNewWords(
	ctx context.Context,
	learnerID uuid.UUID,
	level domain.Level,
	count int,
) ([]*domain.VocabularyItem, error) {
	records, err := s.masteryStore.GetAll(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery records: %w", err)
	}
	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, record := range records {
		seen[record.ItemID] = struct{}{}
	}

	candidates, err := s.unseenAtLevel(ctx, level, seen)
	if err != nil {
		return nil, err
	}
	if len(candidates) < count {
		if next, ok := level.Next(); ok {
			extra, err := s.unseenAtLevel(ctx, next, seen)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, extra...)
		}
	}

	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if count > len(candidates) {
		count = len(candidates)
	}

	return candidates[:count], nil
}

func (s *dailyWordsServiceImpl) unseenAtLevel(
	ctx context.Context,
	level domain.Level,
	seen map[uuid.UUID]struct{},
) ([]*domain.VocabularyItem, error) {
	items, err := s.catalogStore.GetByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("failed to get items at level %s: %w", level, err)
	}

	unseen := make([]*domain.VocabularyItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; !ok {
			unseen = append(unseen, item)
		}
	}
	return unseen, nil
}

// attachItems resolves entries to their vocabulary items. Entries whose item
// has been removed from the catalog are dropped with a warning rather than
// failing the whole set.
func (s *dailyWordsServiceImpl) attachItems(
	ctx context.Context,
	entries []*domain.DailyWordEntry,
) ([]*DailyWord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids := make([]uuid.UUID, len(entries))
	for i, entry := range entries {
		ids[i] = entry.ItemID
	}
	items, err := s.catalogStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, NewComposeError("failed to resolve study set items", err)
	}
	byID := make(map[uuid.UUID]*domain.VocabularyItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	words := make([]*DailyWord, 0, len(entries))
	for _, entry := range entries {
		item, ok := byID[entry.ItemID]
		if !ok {
			log.Warn("study set entry references missing item",
				slog.String("entry_id", entry.ID.String()),
				slog.String("item_id", entry.ItemID.String()))
			continue
		}
		words = append(words, &DailyWord{Entry: entry, Item: item})
	}
	return words, nil
}
