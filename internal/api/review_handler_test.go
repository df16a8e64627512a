package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordtrail/wordtrail-api/internal/api"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
)

// stubReviewService implements review.ReviewService with overridable funcs.
type stubReviewService struct {
	submitFn   func(ctx context.Context, learnerID, itemID uuid.UUID, quality int) (*domain.MasteryRecord, error)
	completeFn func(ctx context.Context, learnerID, entryID uuid.UUID, quality int) (*domain.MasteryRecord, error)
	getFn      func(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.MasteryRecord, error)
}

func (s *stubReviewService) SubmitReview(ctx context.Context, learnerID, itemID uuid.UUID, quality int) (*domain.MasteryRecord, error) {
	return s.submitFn(ctx, learnerID, itemID, quality)
}

func (s *stubReviewService) CompleteDailyEntry(ctx context.Context, learnerID, entryID uuid.UUID, quality int) (*domain.MasteryRecord, error) {
	return s.completeFn(ctx, learnerID, entryID, quality)
}

func (s *stubReviewService) GetRecord(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.MasteryRecord, error) {
	return s.getFn(ctx, learnerID, itemID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newReviewRouter(svc review.ReviewService) http.Handler {
	handler := api.NewReviewHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/learners/{learnerID}/items/{itemID}/review", handler.SubmitReview)
	r.Post("/learners/{learnerID}/daily/{entryID}/complete", handler.CompleteEntry)
	r.Get("/learners/{learnerID}/items/{itemID}/mastery", handler.GetMastery)
	return r
}

func sampleRecord(learnerID, itemID uuid.UUID) *domain.MasteryRecord {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	next := now.AddDate(0, 0, 6)
	return &domain.MasteryRecord{
		LearnerID:      learnerID,
		ItemID:         itemID,
		Status:         domain.MasteryStatusFamiliar,
		EaseFactor:     2.7,
		Interval:       6,
		Repetitions:    2,
		LastReviewedAt: &now,
		NextReviewAt:   &next,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitReview_Success(t *testing.T) {
	learnerID := uuid.New()
	itemID := uuid.New()

	svc := &stubReviewService{
		submitFn: func(ctx context.Context, gotLearner, gotItem uuid.UUID, quality int) (*domain.MasteryRecord, error) {
			assert.Equal(t, learnerID, gotLearner)
			assert.Equal(t, itemID, gotItem)
			assert.Equal(t, 4, quality)
			return sampleRecord(gotLearner, gotItem), nil
		},
	}
	router := newReviewRouter(svc)

	rec := postJSON(t, router,
		"/learners/"+learnerID.String()+"/items/"+itemID.String()+"/review",
		map[string]int{"quality": 4})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.MasteryRecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, itemID.String(), resp.ItemID)
	assert.Equal(t, "familiar", resp.Status)
	assert.Equal(t, 6, resp.IntervalDays)
	assert.InDelta(t, 2.7, resp.EaseFactor, 1e-9)
}

func TestSubmitReview_ValidationErrors(t *testing.T) {
	svc := &stubReviewService{
		submitFn: func(ctx context.Context, learnerID, itemID uuid.UUID, quality int) (*domain.MasteryRecord, error) {
			t.Fatal("service should not be reached for invalid requests")
			return nil, nil
		},
	}
	router := newReviewRouter(svc)

	learnerID := uuid.New().String()
	itemID := uuid.New().String()

	tests := []struct {
		name string
		path string
		body any
	}{
		{
			name: "BadLearnerID",
			path: "/learners/not-a-uuid/items/" + itemID + "/review",
			body: map[string]int{"quality": 4},
		},
		{
			name: "BadItemID",
			path: "/learners/" + learnerID + "/items/not-a-uuid/review",
			body: map[string]int{"quality": 4},
		},
		{
			name: "QualityTooHigh",
			path: "/learners/" + learnerID + "/items/" + itemID + "/review",
			body: map[string]int{"quality": 6},
		},
		{
			name: "QualityNegative",
			path: "/learners/" + learnerID + "/items/" + itemID + "/review",
			body: map[string]int{"quality": -1},
		},
		{
			name: "MissingQuality",
			path: "/learners/" + learnerID + "/items/" + itemID + "/review",
			body: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubmitReview_ItemNotFound(t *testing.T) {
	svc := &stubReviewService{
		submitFn: func(ctx context.Context, learnerID, itemID uuid.UUID, quality int) (*domain.MasteryRecord, error) {
			return nil, review.ErrItemNotFound
		},
	}
	router := newReviewRouter(svc)

	rec := postJSON(t, router,
		"/learners/"+uuid.New().String()+"/items/"+uuid.New().String()+"/review",
		map[string]int{"quality": 3})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vocabulary item not found")
}

func TestCompleteEntry_Success(t *testing.T) {
	learnerID := uuid.New()
	entryID := uuid.New()

	svc := &stubReviewService{
		completeFn: func(ctx context.Context, gotLearner, gotEntry uuid.UUID, quality int) (*domain.MasteryRecord, error) {
			assert.Equal(t, learnerID, gotLearner)
			assert.Equal(t, entryID, gotEntry)
			assert.Equal(t, 5, quality)
			return sampleRecord(gotLearner, uuid.New()), nil
		},
	}
	router := newReviewRouter(svc)

	rec := postJSON(t, router,
		"/learners/"+learnerID.String()+"/daily/"+entryID.String()+"/complete",
		map[string]int{"quality": 5})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCompleteEntry_AlreadyCompleted(t *testing.T) {
	svc := &stubReviewService{
		completeFn: func(ctx context.Context, learnerID, entryID uuid.UUID, quality int) (*domain.MasteryRecord, error) {
			return nil, review.ErrEntryAlreadyCompleted
		},
	}
	router := newReviewRouter(svc)

	rec := postJSON(t, router,
		"/learners/"+uuid.New().String()+"/daily/"+uuid.New().String()+"/complete",
		map[string]int{"quality": 5})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetMastery(t *testing.T) {
	learnerID := uuid.New()
	itemID := uuid.New()

	t.Run("Found", func(t *testing.T) {
		svc := &stubReviewService{
			getFn: func(ctx context.Context, gotLearner, gotItem uuid.UUID) (*domain.MasteryRecord, error) {
				return sampleRecord(gotLearner, gotItem), nil
			},
		}
		router := newReviewRouter(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/learners/"+learnerID.String()+"/items/"+itemID.String()+"/mastery", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.MasteryRecordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, learnerID.String(), resp.LearnerID)
	})

	t.Run("NeverReviewed", func(t *testing.T) {
		svc := &stubReviewService{
			getFn: func(ctx context.Context, gotLearner, gotItem uuid.UUID) (*domain.MasteryRecord, error) {
				return nil, review.ErrRecordNotFound
			},
		}
		router := newReviewRouter(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/learners/"+learnerID.String()+"/items/"+itemID.String()+"/mastery", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
