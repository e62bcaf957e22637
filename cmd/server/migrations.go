package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/sqlstore"
)

// runMigrations opens the configured database, runs one goose command and
// closes the connection again.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	db, dialect, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	logger.Info("running migrations",
		slog.String("command", command),
		slog.String("driver", dialect.Name))

	if err := sqlstore.Migrate(ctx, db, dialect, command, logger); err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}
	return nil
}
