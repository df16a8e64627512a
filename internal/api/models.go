package api

import (
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/service/daily_words"
)

// ExampleResponse represents a usage example for a vocabulary item.
type ExampleResponse struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation,omitempty"`
}

// VocabularyItemResponse represents the response data for a vocabulary item.
type VocabularyItemResponse struct {
	ID          string            `json:"id"`
	Word        string            `json:"word"`
	Type        string            `json:"type"`
	TypeColor   string            `json:"type_color,omitempty"`
	Phonetic    string            `json:"phonetic,omitempty"`
	Definition  string            `json:"definition"`
	Translation string            `json:"translation,omitempty"`
	Examples    []ExampleResponse `json:"examples,omitempty"`
	Level       string            `json:"level"`
}

// MasteryRecordResponse represents the response data for a mastery record.
type MasteryRecordResponse struct {
	LearnerID      string     `json:"learner_id"`
	ItemID         string     `json:"item_id"`
	Status         string     `json:"status"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
}

// DailyWordResponse represents a single word in a learner's daily study set.
type DailyWordResponse struct {
	EntryID   string                 `json:"entry_id"`
	Completed bool                   `json:"completed"`
	Rating    *int                   `json:"rating,omitempty"`
	Item      VocabularyItemResponse `json:"item"`
}

// DailySetResponse represents the response for a daily study set.
type DailySetResponse struct {
	Date  string              `json:"date"`
	Words []DailyWordResponse `json:"words"`
}

// ProgressionResponse represents the response for a level progression check.
type ProgressionResponse struct {
	Level         string `json:"level"`
	ShouldAdvance bool   `json:"should_advance"`
	NextLevel     string `json:"next_level,omitempty"`
}

// StatisticsResponse represents the response for study statistics.
type StatisticsResponse struct {
	TotalWords      int     `json:"total_words"`
	NewCount        int     `json:"new_count"`
	LearningCount   int     `json:"learning_count"`
	FamiliarCount   int     `json:"familiar_count"`
	MasteredCount   int     `json:"mastered_count"`
	DueCount        int     `json:"due_count"`
	CompletionRate  float64 `json:"completion_rate"`
	RetentionRate   float64 `json:"retention_rate"`
	StreakDays      int     `json:"streak_days"`
	DaysAnalyzed    int     `json:"days_analyzed"`
	RecommendedGoal int     `json:"recommended_goal"`

	// TodayCompletionRate is how much of today's study set is done, in [0,1].
	TodayCompletionRate float64 `json:"today_completion_rate"`
}

func itemToResponse(item *domain.VocabularyItem) VocabularyItemResponse {
	resp := VocabularyItemResponse{
		ID:          item.ID.String(),
		Word:        item.Word,
		Type:        string(item.Type),
		TypeColor:   item.Type.Color(),
		Phonetic:    item.Phonetic,
		Definition:  item.Definition,
		Translation: item.Translation,
		Level:       string(item.Level),
	}
	for _, example := range item.Examples {
		resp.Examples = append(resp.Examples, ExampleResponse{
			Sentence:    example.Sentence,
			Translation: example.Translation,
		})
	}
	return resp
}

func recordToResponse(record *domain.MasteryRecord) MasteryRecordResponse {
	return MasteryRecordResponse{
		LearnerID:      record.LearnerID.String(),
		ItemID:         record.ItemID.String(),
		Status:         string(record.Status),
		EaseFactor:     record.EaseFactor,
		IntervalDays:   record.Interval,
		Repetitions:    record.Repetitions,
		LastReviewedAt: record.LastReviewedAt,
		NextReviewAt:   record.NextReviewAt,
	}
}

func dailySetToResponse(words []*daily_words.DailyWord, date time.Time) DailySetResponse {
	resp := DailySetResponse{
		Date:  date.Format("2006-01-02"),
		Words: make([]DailyWordResponse, 0, len(words)),
	}
	for _, word := range words {
		resp.Words = append(resp.Words, DailyWordResponse{
			EntryID:   word.Entry.ID.String(),
			Completed: word.Entry.Completed,
			Rating:    word.Entry.Rating,
			Item:      itemToResponse(word.Item),
		})
	}
	return resp
}

func statisticsToResponse(stats *daily_words.StudyStatistics) StatisticsResponse {
	return StatisticsResponse{
		TotalWords:      stats.TotalWords,
		NewCount:        stats.StatusCounts[domain.MasteryStatusNew],
		LearningCount:   stats.StatusCounts[domain.MasteryStatusLearning],
		FamiliarCount:   stats.StatusCounts[domain.MasteryStatusFamiliar],
		MasteredCount:   stats.StatusCounts[domain.MasteryStatusMastered],
		DueCount:        stats.DueCount,
		CompletionRate:  stats.CompletionRate,
		RetentionRate:   stats.RetentionRate,
		StreakDays:      stats.StreakDays,
		DaysAnalyzed:    stats.DaysAnalyzed,
		RecommendedGoal: stats.RecommendedGoal,
	}
}
