package api_test

import (
	"context"
	"encoding/json"
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
	"github.com/wordtrail/wordtrail-api/internal/service/daily_words"
)

// stubDailyWordsService implements daily_words.DailyWordsService with
// overridable funcs.
type stubDailyWordsService struct {
	composeFn       func(ctx context.Context, learnerID uuid.UUID, level domain.Level, opts daily_words.ComposeOptions) ([]*daily_words.DailyWord, error)
	shouldAdvanceFn func(ctx context.Context, learnerID uuid.UUID, level domain.Level) (bool, error)
	todayRateFn     func(ctx context.Context, learnerID uuid.UUID) (float64, error)
	statisticsFn    func(ctx context.Context, learnerID uuid.UUID, days int) (*daily_words.StudyStatistics, error)
}

func (s *stubDailyWordsService) ComposeToday(ctx context.Context, learnerID uuid.UUID, level domain.Level, opts daily_words.ComposeOptions) ([]*daily_words.DailyWord, error) {
	return s.composeFn(ctx, learnerID, level, opts)
}

func (s *stubDailyWordsService) ShouldAdvance(ctx context.Context, learnerID uuid.UUID, level domain.Level) (bool, error) {
	return s.shouldAdvanceFn(ctx, learnerID, level)
}

func (s *stubDailyWordsService) TodayCompletionRate(ctx context.Context, learnerID uuid.UUID) (float64, error) {
	return s.todayRateFn(ctx, learnerID)
}

func (s *stubDailyWordsService) Statistics(ctx context.Context, learnerID uuid.UUID, days int) (*daily_words.StudyStatistics, error) {
	return s.statisticsFn(ctx, learnerID, days)
}

func newDailyRouter(svc daily_words.DailyWordsService) http.Handler {
	handler := api.NewDailyWordsHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Get("/learners/{learnerID}/daily", handler.GetDailySet)
	r.Get("/learners/{learnerID}/progression", handler.GetProgression)
	r.Get("/learners/{learnerID}/stats", handler.GetStatistics)
	return r
}

func sampleDailyWord(learnerID uuid.UUID, completed bool) *daily_words.DailyWord {
	item, err := domain.NewVocabularyItem("apple", domain.WordTypeNoun, "a round fruit", domain.LevelA1)
	if err != nil {
		panic(err)
	}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	entry, err := domain.NewDailyWordEntry(learnerID, item.ID, day)
	if err != nil {
		panic(err)
	}
	if completed {
		rating := 4
		entry.Completed = true
		entry.Rating = &rating
	}
	return &daily_words.DailyWord{Entry: entry, Item: item}
}

func getPath(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetDailySet_Success(t *testing.T) {
	learnerID := uuid.New()

	svc := &stubDailyWordsService{
		composeFn: func(ctx context.Context, gotLearner uuid.UUID, level domain.Level, opts daily_words.ComposeOptions) ([]*daily_words.DailyWord, error) {
			assert.Equal(t, learnerID, gotLearner)
			assert.Equal(t, domain.LevelB1, level)
			assert.Equal(t, 10, opts.DailyGoal)
			assert.False(t, opts.SkipReviews)
			return []*daily_words.DailyWord{
				sampleDailyWord(gotLearner, true),
				sampleDailyWord(gotLearner, false),
			}, nil
		},
	}
	router := newDailyRouter(svc)

	rec := getPath(t, router, "/learners/"+learnerID.String()+"/daily?level=B1&goal=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DailySetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-10", resp.Date)
	require.Len(t, resp.Words, 2)
	assert.True(t, resp.Words[0].Completed)
	require.NotNil(t, resp.Words[0].Rating)
	assert.Equal(t, 4, *resp.Words[0].Rating)
	assert.Equal(t, "apple", resp.Words[0].Item.Word)
	assert.False(t, resp.Words[1].Completed)
	assert.Nil(t, resp.Words[1].Rating)
}

func TestGetDailySet_PassesSkipReviews(t *testing.T) {
	svc := &stubDailyWordsService{
		composeFn: func(ctx context.Context, learnerID uuid.UUID, level domain.Level, opts daily_words.ComposeOptions) ([]*daily_words.DailyWord, error) {
			assert.True(t, opts.SkipReviews)
			return nil, nil
		},
	}
	router := newDailyRouter(svc)

	rec := getPath(t, router, "/learners/"+uuid.New().String()+"/daily?level=A1&skip_reviews=true")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDailySet_ValidationErrors(t *testing.T) {
	svc := &stubDailyWordsService{
		composeFn: func(ctx context.Context, learnerID uuid.UUID, level domain.Level, opts daily_words.ComposeOptions) ([]*daily_words.DailyWord, error) {
			t.Fatal("service should not be reached for invalid requests")
			return nil, nil
		},
	}
	router := newDailyRouter(svc)

	learnerID := uuid.New().String()

	tests := []struct {
		name string
		path string
	}{
		{name: "BadLearnerID", path: "/learners/not-a-uuid/daily?level=A1"},
		{name: "MissingLevel", path: "/learners/" + learnerID + "/daily"},
		{name: "UnknownLevel", path: "/learners/" + learnerID + "/daily?level=Z9"},
		{name: "NonNumericGoal", path: "/learners/" + learnerID + "/daily?level=A1&goal=lots"},
		{name: "NegativeGoal", path: "/learners/" + learnerID + "/daily?level=A1&goal=-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := getPath(t, router, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProgression(t *testing.T) {
	t.Run("ReadyToAdvance", func(t *testing.T) {
		svc := &stubDailyWordsService{
			shouldAdvanceFn: func(ctx context.Context, learnerID uuid.UUID, level domain.Level) (bool, error) {
				return true, nil
			},
		}
		router := newDailyRouter(svc)

		rec := getPath(t, router, "/learners/"+uuid.New().String()+"/progression?level=A2")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.ProgressionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "A2", resp.Level)
		assert.True(t, resp.ShouldAdvance)
		assert.Equal(t, "B1", resp.NextLevel)
	})

	t.Run("NotReady", func(t *testing.T) {
		svc := &stubDailyWordsService{
			shouldAdvanceFn: func(ctx context.Context, learnerID uuid.UUID, level domain.Level) (bool, error) {
				return false, nil
			},
		}
		router := newDailyRouter(svc)

		rec := getPath(t, router, "/learners/"+uuid.New().String()+"/progression?level=A2")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.ProgressionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.ShouldAdvance)
		assert.Empty(t, resp.NextLevel)
	})
}

func TestGetStatistics(t *testing.T) {
	learnerID := uuid.New()

	svc := &stubDailyWordsService{
		statisticsFn: func(ctx context.Context, gotLearner uuid.UUID, days int) (*daily_words.StudyStatistics, error) {
			assert.Equal(t, learnerID, gotLearner)
			assert.Equal(t, 14, days)
			return &daily_words.StudyStatistics{
				TotalWords: 42,
				StatusCounts: map[domain.MasteryStatus]int{
					domain.MasteryStatusNew:      10,
					domain.MasteryStatusLearning: 12,
					domain.MasteryStatusFamiliar: 15,
					domain.MasteryStatusMastered: 5,
				},
				DueCount:        7,
				CompletionRate:  0.9,
				RetentionRate:   85,
				StreakDays:      6,
				DaysAnalyzed:    14,
				RecommendedGoal: 25,
			}, nil
		},
		todayRateFn: func(ctx context.Context, gotLearner uuid.UUID) (float64, error) {
			return 0.5, nil
		},
	}
	router := newDailyRouter(svc)

	rec := getPath(t, router, "/learners/"+learnerID.String()+"/stats?days=14")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 42, resp.TotalWords)
	assert.Equal(t, 15, resp.FamiliarCount)
	assert.Equal(t, 7, resp.DueCount)
	assert.InDelta(t, 0.9, resp.CompletionRate, 1e-9)
	assert.InDelta(t, 85, resp.RetentionRate, 1e-9)
	assert.Equal(t, 6, resp.StreakDays)
	assert.Equal(t, 25, resp.RecommendedGoal)
	assert.InDelta(t, 0.5, resp.TodayCompletionRate, 1e-9)
}

func TestGetStatistics_BadDays(t *testing.T) {
	svc := &stubDailyWordsService{
		statisticsFn: func(ctx context.Context, learnerID uuid.UUID, days int) (*daily_words.StudyStatistics, error) {
			t.Fatal("service should not be reached for invalid requests")
			return nil, nil
		},
	}
	router := newDailyRouter(svc)

	rec := getPath(t, router, "/learners/"+uuid.New().String()+"/stats?days=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
