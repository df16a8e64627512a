// Package srs implements the SM-2 spaced repetition algorithm that decides
// when a vocabulary item should next be shown to a learner and how its ease
// factor evolves over repeated reviews. All functions are pure: they take the
// current mastery state plus the clock and return updated copies.
package srs

import (
	"math"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor after a qualifying
// review.
//
// The ease factor represents how easy the item is for the learner - higher
// values make intervals grow faster. The adjustment is looked up by quality
// rating and the result is clamped at params.MinEaseFactor so an item can
// never become impossibly hard.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	newEF := currentEF + params.EaseFactorAdjustment[quality]

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the interval in days until the next review
// of an item that was just answered successfully.
//
// The repetition count is the count *before* this review is applied:
//   - first qualifying review: the initial interval (1 day)
//   - second qualifying review: the second interval (6 days)
//   - later reviews: the previous interval multiplied by the new ease factor,
//     rounded to the nearest whole day
func calculateNewInterval(currentInterval, repetitions int, easeFactor float64, params *Params) int {
	switch repetitions {
	case 0:
		return params.InitialInterval
	case 1:
		return params.SecondInterval
	default:
		return int(math.Round(float64(currentInterval) * easeFactor))
	}
}

// calculateNextRecord computes the full post-review state of a mastery record.
//
// A nil record is treated as "never reviewed": default ease factor, zero
// interval and zero repetitions, with identity fields left for the caller to
// assign. The input record is never modified; a new copy is returned.
//
// Quality ratings below the threshold reset the repetition streak and
// schedule the item for tomorrow, leaving the ease factor unchanged. This
// diverges from textbook SM-2, which adjusts the ease factor on every review;
// the app deliberately keeps failed reviews ease-neutral so a bad day does
// not permanently sink an item.
func calculateNextRecord(
	record *domain.MasteryRecord,
	quality int,
	now time.Time,
	params *Params,
) *domain.MasteryRecord {
	var next *domain.MasteryRecord
	if record == nil {
		next = &domain.MasteryRecord{
			EaseFactor:  params.InitialEaseFactor,
			Interval:    0,
			Repetitions: 0,
			CreatedAt:   now,
		}
	} else {
		next = record.Clone()
	}

	if quality < params.QualityThreshold {
		// Failed recall: start the streak over and review again tomorrow.
		next.Repetitions = 0
		next.Interval = params.InitialInterval
	} else {
		next.EaseFactor = calculateNewEaseFactor(next.EaseFactor, quality, params)
		next.Interval = calculateNewInterval(next.Interval, next.Repetitions, next.EaseFactor, params)
		next.Repetitions++
	}

	// Calendar-day arithmetic rather than elapsed milliseconds, so the due
	// date does not drift with the time of day the review happened.
	reviewedAt := now
	nextReview := now.AddDate(0, 0, next.Interval)
	next.LastReviewedAt = &reviewedAt
	next.NextReviewAt = &nextReview

	next.Status = domain.DeriveStatus(next.Repetitions, next.Interval)
	next.UpdatedAt = now

	return next
}

// dueAt returns the moment a record becomes due. A record with no scheduled
// next review is due immediately, which the zero time encodes as "maximally
// overdue" for every comparison.
func dueAt(record *domain.MasteryRecord) time.Time {
	if record.NextReviewAt == nil {
		return time.Time{}
	}
	return *record.NextReviewAt
}

// IsDue reports whether the record should be reviewed at time now.
func IsDue(record *domain.MasteryRecord, now time.Time) bool {
	if record.NextReviewAt == nil {
		return true
	}
	return !record.NextReviewAt.After(now)
}

// DaysUntilReview returns the number of whole days until the record's next
// review, rounding partial days up. Due and overdue records return 0.
func DaysUntilReview(record *domain.MasteryRecord, now time.Time) int {
	if record.NextReviewAt == nil {
		return 0
	}

	diff := record.NextReviewAt.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// SuggestedQuality recommends a quality rating from the learner's response
// time, for callers that want an automatic rating instead of self-assessment.
func SuggestedQuality(responseTime time.Duration, wasCorrect bool) int {
	if !wasCorrect {
		if responseTime < 3*time.Second {
			return 2 // Quick wrong answer: the right one probably felt close
		}
		return 1
	}

	switch {
	case responseTime < 2*time.Second:
		return 5
	case responseTime < 5*time.Second:
		return 4
	default:
		return 3
	}
}

// Daily goal adjustment bounds.
const (
	minDailyGoal   = 10
	maxDailyGoal   = 50
	goalStep       = 5
	maxSessionSize = 50
)

// OptimalDailyGoal nudges the learner's daily goal from recent performance.
// Rates are percentages. Strong retention and completion raise the goal one
// step; weak retention or completion lowers it; anything in between keeps it.
func OptimalDailyGoal(currentGoal int, retentionRate, completionRate float64) int {
	if retentionRate > 80 && completionRate > 90 {
		return min(currentGoal+goalStep, maxDailyGoal)
	}
	if retentionRate < 60 || completionRate < 70 {
		return max(currentGoal-goalStep, minDailyGoal)
	}
	return currentGoal
}

// RecommendedSessionSize caps a review session by the due count, the minutes
// the learner has (budgeting one item per minute), and a hard per-session
// ceiling so a long backlog does not overwhelm a single sitting.
func RecommendedSessionSize(dueCount, availableMinutes int) int {
	return min(dueCount, availableMinutes, maxSessionSize)
}
