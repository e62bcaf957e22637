package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/library-api/internal/domain"
)

// BookFilter narrows BookStore.List. The zero value matches every book.
type BookFilter struct {
	// AuthorID keeps only books written by this author when non-zero.
	AuthorID int64
}

// BookStore defines the interface for book data persistence.
// Reads resolve each book's Author reference.
type BookStore interface {
	// List returns all books matching filter, ordered by ID.
	// Returns an empty slice if no books match.
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)

	// GetByID retrieves a book with its author resolved.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// ExistsByID reports whether a book with the given ID exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// CountByAuthor returns how many books reference the author.
	CountByAuthor(ctx context.Context, authorID int64) (int, error)

	// Create inserts a new book and assigns its store-generated ID.
	// Returns ErrInvalidEntity if the database rejects the author reference.
	Create(ctx context.Context, book *domain.Book) error

	// Update overwrites the book's title and author reference.
	// Returns ErrBookNotFound if the book does not exist.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes the book.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new BookStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BookStore
}
