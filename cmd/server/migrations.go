package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/wordtrail/wordtrail-api/migrations"
)

// runMigrations applies database migrations using the embedded SQL files.
// Supported commands: up, down, status.
func (app *application) runMigrations(ctx context.Context, command string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	app.logger.Info("Running migrations", slog.String("command", command))

	switch command {
	case "up":
		if err := goose.UpContext(ctx, app.db, "."); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	case "down":
		if err := goose.DownContext(ctx, app.db, "."); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case "status":
		if err := goose.StatusContext(ctx, app.db, "."); err != nil {
			return fmt.Errorf("failed to report migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}

	app.logger.Info("Migrations completed", slog.String("command", command))
	return nil
}
