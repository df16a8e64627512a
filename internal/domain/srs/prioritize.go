package srs

import (
	"sort"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Prioritize orders mastery records by review urgency, most urgent first:
//
//  1. Overdue records before records not yet due.
//  2. Earlier next-review date first.
//  3. Status "new" before any other status.
//
// Records without a next-review date count as maximally overdue. The sort is
// stable, so records that compare equal keep their original relative order.
// The input slice is not modified.
func Prioritize(records []*domain.MasteryRecord, now time.Time) []*domain.MasteryRecord {
	ordered := make([]*domain.MasteryRecord, len(records))
	copy(ordered, records)

	sort.SliceStable(ordered, func(i, j int) bool {
		return moreUrgent(ordered[i], ordered[j], now)
	})

	return ordered
}

// moreUrgent reports whether a should be reviewed before b at time now.
func moreUrgent(a, b *domain.MasteryRecord, now time.Time) bool {
	aDue, bDue := dueAt(a), dueAt(b)

	aOverdue := aDue.Before(now)
	bOverdue := bDue.Before(now)
	if aOverdue != bOverdue {
		return aOverdue
	}

	if !aDue.Equal(bDue) {
		return aDue.Before(bDue)
	}

	aNew := a.Status == domain.MasteryStatusNew
	bNew := b.Status == domain.MasteryStatusNew
	return aNew && !bNew
}
