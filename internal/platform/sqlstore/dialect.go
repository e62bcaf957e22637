package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	_ "github.com/mattn/go-sqlite3"    // sqlite3 driver
	"github.com/phrazzld/library-api/internal/config"
)

// Dialect describes how to talk to one SQL engine.
type Dialect struct {
	// Name is the configuration value selecting the dialect and the
	// migrations subdirectory.
	Name string
	// DriverName is the database/sql driver registered for the engine.
	DriverName string
	// GooseDialect is the dialect name understood by goose.
	GooseDialect string

	placeholder sq.PlaceholderFormat
	// singleWriter limits the pool to one connection. SQLite allows one
	// writer per file, and a deferred transaction that reads before it
	// writes fails with SQLITE_BUSY when another connection holds the lock.
	singleWriter bool
}

// Supported dialects.
var (
	Postgres = Dialect{Name: "postgres", DriverName: "pgx", GooseDialect: "postgres", placeholder: sq.Dollar}
	SQLite   = Dialect{Name: "sqlite", DriverName: "sqlite3", GooseDialect: "sqlite3", placeholder: sq.Question, singleWriter: true}
)

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case Postgres.Name:
		return Postgres, nil
	case SQLite.Name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}
}

// Builder returns a squirrel statement builder using the dialect's placeholders.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.placeholder)
}

// Open establishes a connection pool for cfg and verifies it with a ping.
// The returned dialect matches cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(dialect.DriverName, cfg.URL)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if dialect.singleWriter {
		maxOpen, maxIdle = 1, 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info("database connection established",
			slog.String("driver", dialect.Name),
			slog.Int("max_open_conns", maxOpen))
	}
	return db, dialect, nil
}
