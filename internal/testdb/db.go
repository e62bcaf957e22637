package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if the DATABASE_URL environment
// variable is set, indicating that tests should use PostgreSQL.
func IsIntegrationTestEnvironment() bool {
	return len(os.Getenv("DATABASE_URL")) > 0
}

// Config returns the database configuration tests connect with.
func Config() config.DatabaseConfig {
	cfg := config.DatabaseConfig{
		Driver:       sqlstore.SQLite.Name,
		URL:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	if IsIntegrationTestEnvironment() {
		cfg.Driver = sqlstore.Postgres.Name
		cfg.URL = os.Getenv("DATABASE_URL")
		cfg.MaxOpenConns = 5
		cfg.MaxIdleConns = 5
	}
	return cfg
}

// Open returns a migrated database and its dialect. The database is closed
// when the test finishes.
func Open(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	logger := slog.New(slog.DiscardHandler)

	db, dialect, err := sqlstore.Open(ctx, Config(), logger)
	require.NoError(t, err, "Failed to open test database")

	require.NoError(t, sqlstore.Migrate(ctx, db, dialect, sqlstore.MigrateUp, logger),
		"Failed to run migrations")

	t.Cleanup(func() {
		if dialect == sqlstore.Postgres {
			if _, err := db.Exec("TRUNCATE books, authors RESTART IDENTITY CASCADE"); err != nil {
				t.Logf("Warning: failed to truncate tables: %v", err)
			}
		}
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database: %v", err)
		}
	})

	return db, dialect
}
