package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wordtrail/wordtrail-api/internal/config"
	"github.com/wordtrail/wordtrail-api/internal/domain/srs"
	"github.com/wordtrail/wordtrail-api/internal/platform/logger"
	"github.com/wordtrail/wordtrail-api/internal/platform/postgres"
	"github.com/wordtrail/wordtrail-api/internal/service/daily_words"
	"github.com/wordtrail/wordtrail-api/internal/service/review"
	"github.com/wordtrail/wordtrail-api/internal/store"
)

// application holds the long-lived dependencies of the server: configuration,
// logging, the database pool, stores and services. It is assembled once at
// startup and torn down by cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	masteryStore store.MasteryStore
	catalogStore store.CatalogStore
	dailyStore   store.DailyEntryStore

	srsService        srs.Service
	reviewService     review.ReviewService
	dailyWordsService daily_words.DailyWordsService
}

// newApplication loads configuration, sets up logging and the database
// connection, and wires the stores and services together.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("daily_goal", cfg.Study.DailyGoal))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	masteryStore := postgres.NewPostgresMasteryStore(db, appLogger)
	catalogStore := postgres.NewPostgresCatalogStore(db, appLogger)
	dailyStore := postgres.NewPostgresDailyEntryStore(db, appLogger)

	srsService := srs.NewDefaultService()
	reviewService := review.NewReviewService(
		db, masteryStore, catalogStore, dailyStore, srsService, appLogger)
	dailyWordsService := daily_words.NewDailyWordsService(
		db, masteryStore, catalogStore, dailyStore, srsService, cfg.Study, appLogger)

	return &application{
		config:            cfg,
		logger:            appLogger,
		db:                db,
		masteryStore:      masteryStore,
		catalogStore:      catalogStore,
		dailyStore:        dailyStore,
		srsService:        srsService,
		reviewService:     reviewService,
		dailyWordsService: dailyWordsService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection",
				slog.String("error", err.Error()))
		}
	}
}
