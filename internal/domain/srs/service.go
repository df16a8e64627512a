package srs

import (
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Service defines the interface for SRS scheduling operations.
type Service interface {
	// ComputeReview computes the updated mastery record for a review with the
	// given quality rating (0-5). A nil record means the item has never been
	// reviewed. Returns domain.ErrInvalidQuality for a rating outside [0,5].
	ComputeReview(
		record *domain.MasteryRecord,
		quality int,
		now time.Time,
	) (*domain.MasteryRecord, error)

	// Prioritize orders records by review urgency, most urgent first.
	Prioritize(records []*domain.MasteryRecord, now time.Time) []*domain.MasteryRecord

	// IsDue reports whether the record should be reviewed at time now.
	IsDue(record *domain.MasteryRecord, now time.Time) bool

	// DaysUntilReview returns whole days until the next review, minimum 0.
	DaysUntilReview(record *domain.MasteryRecord, now time.Time) int

	// RetentionRate returns the share of the given quality ratings that count
	// as successful recalls, as a percentage. Empty input yields 0.
	RetentionRate(qualities []int) float64
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ComputeReview implements the Service interface.
func (s *defaultService) ComputeReview(
	record *domain.MasteryRecord,
	quality int,
	now time.Time,
) (*domain.MasteryRecord, error) {
	if quality < 0 || quality > 5 {
		return nil, domain.ErrInvalidQuality
	}

	return calculateNextRecord(record, quality, now, s.params), nil
}

// Prioritize implements the Service interface.
func (s *defaultService) Prioritize(
	records []*domain.MasteryRecord,
	now time.Time,
) []*domain.MasteryRecord {
	return Prioritize(records, now)
}

// IsDue implements the Service interface.
func (s *defaultService) IsDue(record *domain.MasteryRecord, now time.Time) bool {
	return IsDue(record, now)
}

// DaysUntilReview implements the Service interface.
func (s *defaultService) DaysUntilReview(record *domain.MasteryRecord, now time.Time) int {
	return DaysUntilReview(record, now)
}

// RetentionRate implements the Service interface.
func (s *defaultService) RetentionRate(qualities []int) float64 {
	if len(qualities) == 0 {
		return 0
	}

	successful := 0
	for _, q := range qualities {
		if q >= s.params.QualityThreshold {
			successful++
		}
	}

	return float64(successful) / float64(len(qualities)) * 100
}
