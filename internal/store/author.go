package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/library-api/internal/domain"
)

// AuthorFilter narrows AuthorStore.List. The zero value matches every author.
type AuthorFilter struct {
	// NameContains keeps authors whose name contains the value, ignoring case.
	NameContains string
}

// AuthorStore defines the interface for author data persistence.
// Authors own their books: every read returns the author with Books populated.
type AuthorStore interface {
	// List returns all authors matching filter, ordered by ID.
	// Returns an empty slice if no authors match.
	List(ctx context.Context, filter AuthorFilter) ([]*domain.Author, error)

	// GetByID retrieves an author and its books.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Author, error)

	// ExistsByID reports whether an author with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Create inserts a new author and assigns its store-generated ID.
	Create(ctx context.Context, author *domain.Author) error

	// Update overwrites the author's name.
	// Returns ErrAuthorNotFound if the author does not exist.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes the author and every book that references it.
	// Callers must run it inside a transaction (see WithTx) for the cascade to be atomic.
	// Returns ErrAuthorNotFound if the author does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new AuthorStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AuthorStore
}
