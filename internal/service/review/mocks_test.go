package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// fakeMasteryStore is an in-memory store.MasteryStore for service tests.
type fakeMasteryStore struct {
	records map[string]*domain.MasteryRecord
	err     error
}

func newFakeMasteryStore() *fakeMasteryStore {
	return &fakeMasteryStore{records: make(map[string]*domain.MasteryRecord)}
}

func masteryKey(learnerID, itemID uuid.UUID) string {
	return learnerID.String() + "/" + itemID.String()
}

func (f *fakeMasteryStore) put(record *domain.MasteryRecord) {
	f.records[masteryKey(record.LearnerID, record.ItemID)] = record
}

func (f *fakeMasteryStore) Get(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.MasteryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.records[masteryKey(learnerID, itemID)]
	if !ok {
		return nil, store.ErrMasteryRecordNotFound
	}
	return record.Clone(), nil
}

func (f *fakeMasteryStore) GetAll(ctx context.Context, learnerID uuid.UUID) ([]*domain.MasteryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.MasteryRecord
	for _, record := range f.records {
		if record.LearnerID == learnerID {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

func (f *fakeMasteryStore) GetDue(ctx context.Context, learnerID uuid.UUID, now time.Time) ([]*domain.MasteryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.MasteryRecord
	for _, record := range f.records {
		if record.LearnerID != learnerID {
			continue
		}
		if record.NextReviewAt == nil || !record.NextReviewAt.After(now) {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

func (f *fakeMasteryStore) Upsert(ctx context.Context, record *domain.MasteryRecord) error {
	if f.err != nil {
		return f.err
	}
	if err := record.Validate(); err != nil {
		return store.NewStoreError("mastery_record", "upsert", "invalid record", store.ErrInvalidEntity)
	}
	f.put(record.Clone())
	return nil
}

func (f *fakeMasteryStore) WithTx(tx *sql.Tx) store.MasteryStore { return f }

// fakeCatalogStore is an in-memory store.CatalogStore.
type fakeCatalogStore struct {
	items map[uuid.UUID]*domain.VocabularyItem
	err   error
}

func newFakeCatalogStore() *fakeCatalogStore {
	return &fakeCatalogStore{items: make(map[uuid.UUID]*domain.VocabularyItem)}
}

func (f *fakeCatalogStore) add(item *domain.VocabularyItem) {
	f.items[item.ID] = item
}

func (f *fakeCatalogStore) GetByLevel(ctx context.Context, level domain.Level) ([]*domain.VocabularyItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.VocabularyItem
	for _, item := range f.items {
		if item.Level == level {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeCatalogStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.VocabularyItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.VocabularyItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// fakeDailyStore is an in-memory store.DailyEntryStore.
type fakeDailyStore struct {
	entries []*domain.DailyWordEntry
	err     error
}

func newFakeDailyStore() *fakeDailyStore {
	return &fakeDailyStore{}
}

func (f *fakeDailyStore) GetForDay(ctx context.Context, learnerID uuid.UUID, day time.Time) ([]*domain.DailyWordEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	day = domain.DateOnly(day)
	var out []*domain.DailyWordEntry
	for _, entry := range f.entries {
		if entry.LearnerID == learnerID && entry.Date.Equal(day) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeDailyStore) GetHistory(ctx context.Context, learnerID uuid.UUID, days int) ([]*domain.DailyWordEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.DailyWordEntry
	for _, entry := range f.entries {
		if entry.LearnerID == learnerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeDailyStore) CreateBatch(ctx context.Context, entries []*domain.DailyWordEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeDailyStore) MarkCompleted(ctx context.Context, entryID uuid.UUID, rating int) error {
	if f.err != nil {
		return f.err
	}
	for _, entry := range f.entries {
		if entry.ID == entryID {
			entry.Completed = true
			r := rating
			entry.Rating = &r
			return nil
		}
	}
	return store.ErrDailyEntryNotFound
}

func (f *fakeDailyStore) WithTx(tx *sql.Tx) store.DailyEntryStore { return f }
