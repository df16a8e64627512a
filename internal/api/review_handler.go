package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/wordtrail/wordtrail-api/internal/api/shared"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
)

// SubmitReviewRequest represents the request body for submitting a review.
type SubmitReviewRequest struct {
	Quality *int `json:"quality" validate:"required,gte=0,lte=5"`
}

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	reviewService review.ReviewService,
	logger *slog.Logger,
) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /learners/{learnerID}/items/{itemID}/review
// requests. It records a review of the item and returns the updated mastery
// record.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := learnerIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil || itemID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Quality rating must be between 0 and 5")
		return
	}

	log.Debug("submitting review",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_id", itemID.String()),
		slog.Int("quality", *req.Quality))

	record, err := h.reviewService.SubmitReview(r.Context(), learnerID, itemID, *req.Quality)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(record))
}

// CompleteEntry handles POST /learners/{learnerID}/daily/{entryID}/complete
// requests. It marks one of today's study-set entries as completed and
// applies the review to the item's mastery record.
func (h *ReviewHandler) CompleteEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	learnerID, ok := learnerIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil || entryID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Quality rating must be between 0 and 5")
		return
	}

	log.Debug("completing daily entry",
		slog.String("learner_id", learnerID.String()),
		slog.String("entry_id", entryID.String()),
		slog.Int("quality", *req.Quality))

	record, err := h.reviewService.CompleteDailyEntry(r.Context(), learnerID, entryID, *req.Quality)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(record))
}

// GetMastery handles GET /learners/{learnerID}/items/{itemID}/mastery
// requests. It returns the learner's mastery record for the item.
func (h *ReviewHandler) GetMastery(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := learnerIDFromRequest(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid learner ID")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil || itemID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID")
		return
	}

	record, err := h.reviewService.GetRecord(r.Context(), learnerID, itemID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, recordToResponse(record))
}
