package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/sqlstore"
)

// setupAppDatabase establishes a connection to the configured database and
// configures its connection pool.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	db, dialect, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, sqlstore.Dialect{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, dialect, nil
}
