package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wordtrail/wordtrail-api/internal/api"
	apiMiddleware "github.com/wordtrail/wordtrail-api/internal/api/middleware"
	"github.com/wordtrail/wordtrail-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for error correlation

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	dailyHandler := api.NewDailyWordsHandler(app.dailyWordsService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.handleHealth)

		r.Route("/learners/{learnerID}", func(r chi.Router) {
			// Daily study set
			r.Get("/daily", dailyHandler.GetDailySet)
			r.Post("/daily/{entryID}/complete", reviewHandler.CompleteEntry)

			// Reviews and mastery
			r.Post("/items/{itemID}/review", reviewHandler.SubmitReview)
			r.Get("/items/{itemID}/mastery", reviewHandler.GetMastery)

			// Progress
			r.Get("/progression", dailyHandler.GetProgression)
			r.Get("/stats", dailyHandler.GetStatistics)
		})
	})

	return r
}

// handleHealth reports service liveness, including database reachability.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
