package daily_words

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
)

// masteryRateThreshold is the share of a level's scheduled items that must be
// familiar or mastered before the learner is ready for the next level.
const masteryRateThreshold = 0.8

// ShouldAdvance implements DailyWordsService.ShouldAdvance.
func (s *dailyWordsServiceImpl) ShouldAdvance(
	ctx context.Context,
	learnerID uuid.UUID,
	level domain.Level,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return false, ErrInvalidLearner
	}
	if !level.IsValid() {
		return false, ErrInvalidLevel
	}

	records, err := s.masteryStore.GetAll(ctx, learnerID)
	if err != nil {
		log.Error("failed to get mastery records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return false, NewProgressionError("failed to get mastery records", err)
	}

	items, err := s.catalogStore.GetByLevel(ctx, level)
	if err != nil {
		log.Error("failed to get level items",
			slog.String("error", err.Error()),
			slog.String("level", string(level)))
		return false, NewProgressionError("failed to get level items", err)
	}
	atLevel := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		atLevel[item.ID] = struct{}{}
	}

	// Only records for items at the current level count toward the rate;
	// fallback words from the next level must not inflate it.
	var total, advanced int
	for _, record := range records {
		if _, ok := atLevel[record.ItemID]; !ok {
			continue
		}
		total++
		if record.Status == domain.MasteryStatusFamiliar ||
			record.Status == domain.MasteryStatusMastered {
			advanced++
		}
	}

	if total == 0 {
		return false, nil
	}

	rate := float64(advanced) / float64(total)
	ready := rate >= masteryRateThreshold

	log.Debug("evaluated level progression",
		slog.String("learner_id", learnerID.String()),
		slog.String("level", string(level)),
		slog.Int("scheduled", total),
		slog.Int("advanced", advanced),
		slog.Float64("mastery_rate", rate),
		slog.Bool("ready", ready))

	return ready, nil
}
