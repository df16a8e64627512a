package daily_words

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
)

// TodayCompletionRate implements DailyWordsService.TodayCompletionRate.
func (s *dailyWordsServiceImpl) TodayCompletionRate(
	ctx context.Context,
	learnerID uuid.UUID,
) (float64, error) {
	if learnerID == uuid.Nil {
		return 0, ErrInvalidLearner
	}

	today := domain.DateOnly(s.now())
	entries, err := s.dailyStore.GetForDay(ctx, learnerID, today)
	if err != nil {
		return 0, NewStatisticsError("failed to load today's study set", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	completed := 0
	for _, entry := range entries {
		if entry.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(entries)), nil
}

// Statistics implements DailyWordsService.Statistics.
func (s *dailyWordsServiceImpl) Statistics(
	ctx context.Context,
	learnerID uuid.UUID,
	days int,
) (*StudyStatistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if learnerID == uuid.Nil {
		return nil, ErrInvalidLearner
	}
	if days <= 0 {
		days = defaultStatsWindow
	}

	now := s.now()

	records, err := s.masteryStore.GetAll(ctx, learnerID)
	if err != nil {
		log.Error("failed to get mastery records",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewStatisticsError("failed to get mastery records", err)
	}

	stats := &StudyStatistics{
		TotalWords: len(records),
		StatusCounts: map[domain.MasteryStatus]int{
			domain.MasteryStatusNew:      0,
			domain.MasteryStatusLearning: 0,
			domain.MasteryStatusFamiliar: 0,
			domain.MasteryStatusMastered: 0,
		},
		DaysAnalyzed: days,
	}
	for _, record := range records {
		stats.StatusCounts[record.Status]++
		if s.srsService.IsDue(record, now) {
			stats.DueCount++
		}
	}

	history, err := s.dailyStore.GetHistory(ctx, learnerID, days)
	if err != nil {
		log.Error("failed to get study history",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewStatisticsError("failed to get study history", err)
	}

	var completed int
	var qualities []int
	for _, entry := range history {
		if !entry.Completed {
			continue
		}
		completed++
		if entry.Rating != nil {
			qualities = append(qualities, *entry.Rating)
		}
	}
	if len(history) > 0 {
		stats.CompletionRate = float64(completed) / float64(len(history))
	}
	stats.RetentionRate = s.srsService.RetentionRate(qualities)
	stats.StreakDays = streakDays(history, domain.DateOnly(now))
	stats.RecommendedGoal = srs.OptimalDailyGoal(
		s.defaultGoal, stats.RetentionRate, stats.CompletionRate*100)

	return stats, nil
}

// streakDays counts consecutive calendar days with at least one completed
// entry, walking backwards from today. A streak is still alive if today has
// no completed entry yet, as long as yesterday has one.
func streakDays(history []*domain.DailyWordEntry, today time.Time) int {
	studied := make(map[time.Time]bool)
	for _, entry := range history {
		if entry.Completed {
			studied[entry.Date] = true
		}
	}

	day := today
	if !studied[day] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for studied[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
