package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/library-api/internal/config"
	"github.com/phrazzld/library-api/internal/platform/sqlstore"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	authorStore store.AuthorStore
	bookStore   store.BookStore

	authorService service.AuthorService
	bookService   service.BookService
}

// newApplication wires stores and services on top of an open database.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect sqlstore.Dialect,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.authorStore = sqlstore.NewAuthorStore(db, dialect, logger)
	app.bookStore = sqlstore.NewBookStore(db, dialect, logger)

	var err error
	app.authorService, err = service.NewAuthorService(db, app.authorStore, app.bookStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create author service: %w", err)
	}

	app.bookService, err = service.NewBookService(db, app.bookStore, app.authorStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create book service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
