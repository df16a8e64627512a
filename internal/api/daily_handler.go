package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/domain"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/service/daily_words"
)

// DailyWordsHandler handles daily study-set and progress HTTP requests.
type DailyWordsHandler struct {
	dailyWordsService daily_words.DailyWordsService
	logger            *slog.Logger
}

// NewDailyWordsHandler creates a new DailyWordsHandler.
func NewDailyWordsHandler(
	dailyWordsService daily_words.DailyWordsService,
	logger *slog.Logger,
) *DailyWordsHandler {
	if dailyWordsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("dailyWordsService cannot be nil for DailyWordsHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DailyWordsHandler")
	}

	return &DailyWordsHandler{
		dailyWordsService: dailyWordsService,
		logger:            logger.With(slog.String("component", "daily_words_handler")),
	}
}

// learnerIDFromRequest extracts and parses the learner ID path parameter.
func learnerIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	learnerID, err := uuid.Parse(chi.URLParam(r, "learnerID"))
	if err != nil || learnerID == uuid.Nil {
		return uuid.Nil, false
	}
	return learnerID, true
}

// GetDailySet handles GET /learners/{learnerID}/daily requests.
// It returns today's study set, composing one first if none exists yet.
//
// Query parameters:
//   - level (required): the learner's current CEFR level
//   - goal (optional): overrides the configured daily word count
//   - skip_reviews (optional): compose new words only
func (h *DailyWordsHandler) GetDailySet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := learnerIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	level := domain.Level(r.URL.Query().Get("level"))
	if !level.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing level")
		return
	}

	opts := daily_words.ComposeOptions{}
	if goalParam := r.URL.Query().Get("goal"); goalParam != "" {
		goal, err := strconv.Atoi(goalParam)
		if err != nil || goal <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Goal must be a positive integer")
			return
		}
		opts.DailyGoal = goal
	}
	if r.URL.Query().Get("skip_reviews") == "true" {
		opts.SkipReviews = true
	}

	log.Debug("getting daily study set",
		slog.String("learner_id", learnerID.String()),
		slog.String("level", string(level)))

	words, err := h.dailyWordsService.ComposeToday(r.Context(), learnerID, level, opts)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	date := domain.DateOnly(time.Now().UTC())
	if len(words) > 0 {
		date = words[0].Entry.Date
	}
	shared.RespondWithJSON(w, r, http.StatusOK, dailySetToResponse(words, date))
}

// GetProgression handles GET /learners/{learnerID}/progression requests.
// It reports whether the learner is ready for the next level.
//
// Query parameters:
//   - level (required): the learner's current CEFR level
func (h *DailyWordsHandler) GetProgression(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := learnerIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	level := domain.Level(r.URL.Query().Get("level"))
	if !level.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid or missing level")
		return
	}

	shouldAdvance, err := h.dailyWordsService.ShouldAdvance(r.Context(), learnerID, level)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := ProgressionResponse{
		Level:         string(level),
		ShouldAdvance: shouldAdvance,
	}
	if shouldAdvance {
		if next, ok := level.Next(); ok {
			resp.NextLevel = string(next)
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetStatistics handles GET /learners/{learnerID}/stats requests.
//
// Query parameters:
//   - days (optional): the analysis window in days, default 30
func (h *DailyWordsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := learnerIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	days := 0
	if daysParam := r.URL.Query().Get("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Days must be a positive integer")
			return
		}
		days = parsed
	}

	stats, err := h.dailyWordsService.Statistics(r.Context(), learnerID, days)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	todayRate, err := h.dailyWordsService.TodayCompletionRate(r.Context(), learnerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := statisticsToResponse(stats)
	resp.TodayCompletionRate = todayRate
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
