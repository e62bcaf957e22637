package service_test

import (
	"log/slog"
	"testing"

	"github.com/phrazzld/library-api/internal/platform/sqlstore"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/phrazzld/library-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	authors   store.AuthorStore
	books     store.BookStore
	authorSvc service.AuthorService
	bookSvc   service.BookService
}

// newFixture wires both services to a freshly migrated database.
func newFixture(t *testing.T) fixture {
	t.Helper()

	db, dialect := testdb.Open(t)
	logger := slog.New(slog.DiscardHandler)

	authors := sqlstore.NewAuthorStore(db, dialect, logger)
	books := sqlstore.NewBookStore(db, dialect, logger)

	authorSvc, err := service.NewAuthorService(db, authors, books, logger)
	require.NoError(t, err)
	bookSvc, err := service.NewBookService(db, books, authors, logger)
	require.NoError(t, err)

	return fixture{
		authors:   authors,
		books:     books,
		authorSvc: authorSvc,
		bookSvc:   bookSvc,
	}
}
