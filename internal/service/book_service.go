package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/store"
)

// BookService provides book-related operations.
type BookService interface {
	// ListBooks returns every book matching filter with its author resolved.
	ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)

	// GetBook retrieves a book with its author resolved.
	GetBook(ctx context.Context, id int64) (*domain.Book, error)

	// CreateBook persists a new book written by an existing author.
	CreateBook(ctx context.Context, title string, authorID int64) (*domain.Book, error)

	// UpdateBook overwrites the title and the author reference of an existing book.
	UpdateBook(ctx context.Context, id int64, title string, authorID int64) (*domain.Book, error)

	// DeleteBook removes a book.
	DeleteBook(ctx context.Context, id int64) error
}

// bookServiceImpl implements the BookService interface
type bookServiceImpl struct {
	db          store.TxBeginner
	bookStore   store.BookStore
	authorStore store.AuthorStore
	logger      *slog.Logger
}

// NewBookService creates a new BookService.
// It returns an error if any of the required dependencies are nil.
func NewBookService(
	db store.TxBeginner,
	bookStore store.BookStore,
	authorStore store.AuthorStore,
	logger *slog.Logger,
) (BookService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if bookStore == nil {
		return nil, domain.NewValidationError("bookStore", "cannot be nil", domain.ErrValidation)
	}
	if authorStore == nil {
		return nil, domain.NewValidationError("authorStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &bookServiceImpl{
		db:          db,
		bookStore:   bookStore,
		authorStore: authorStore,
		logger:      logger.With(slog.String("component", "book_service")),
	}, nil
}

// unknownAuthor reports a write that references an author that does not exist.
// This is a client mistake, so it maps to ErrInvalidArgument rather than NotFound.
func unknownAuthor(operation string, authorID int64) *ServiceError {
	return NewServiceError("book", operation,
		fmt.Sprintf("Author not found with ID: %d", authorID), ErrInvalidArgument)
}

// ListBooks implements BookService.ListBooks
func (s *bookServiceImpl) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	books, err := s.bookStore.List(ctx, filter)
	if err != nil {
		log.Error("failed to list books", slog.String("error", err.Error()))
		return nil, NewServiceError("book", "list_books", "failed to list books", err)
	}

	return books, nil
}

// GetBook implements BookService.GetBook
func (s *bookServiceImpl) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("book not found", slog.Int64("book_id", id))
			return nil, bookNotFound("get_book", id, err)
		}
		log.Error("failed to retrieve book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, NewServiceError("book", "get_book", "failed to retrieve book", err)
	}

	return book, nil
}

// CreateBook implements BookService.CreateBook
// Nothing is persisted when the author does not exist.
func (s *bookServiceImpl) CreateBook(
	ctx context.Context,
	title string,
	authorID int64,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	book, err := domain.NewBook(title, authorID)
	if err != nil {
		log.Debug("invalid book", slog.String("error", err.Error()))
		return nil, NewServiceError("book", "create_book", "invalid book", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		author, err := s.resolveAuthor(ctx, s.authorStore.WithTx(tx), "create_book", authorID)
		if err != nil {
			return err
		}

		if err := s.bookStore.WithTx(tx).Create(ctx, book); err != nil {
			return NewServiceError("book", "create_book", "failed to save book", err)
		}

		book.Author = author
		return nil
	})
	if err != nil {
		logServiceError(log, "failed to create book", err, slog.Int64("author_id", authorID))
		return nil, err
	}

	log.Info("book created",
		slog.Int64("book_id", book.ID),
		slog.Int64("author_id", authorID))
	return book, nil
}

// UpdateBook implements BookService.UpdateBook
// A missing book is reported before an unknown author; on either failure the
// stored row is left unchanged.
func (s *bookServiceImpl) UpdateBook(
	ctx context.Context,
	id int64,
	title string,
	authorID int64,
) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Book
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txBooks := s.bookStore.WithTx(tx)

		book, err := txBooks.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return bookNotFound("update_book", id, err)
			}
			return NewServiceError("book", "update_book", "failed to retrieve book", err)
		}

		author, err := s.resolveAuthor(ctx, s.authorStore.WithTx(tx), "update_book", authorID)
		if err != nil {
			return err
		}

		if err := book.Reassign(title, author); err != nil {
			return NewServiceError("book", "update_book", "invalid book", err)
		}

		if err := txBooks.Update(ctx, book); err != nil {
			if store.IsNotFoundError(err) {
				return bookNotFound("update_book", id, err)
			}
			return NewServiceError("book", "update_book", "failed to save book", err)
		}

		updated = book
		return nil
	})
	if err != nil {
		logServiceError(log, "failed to update book", err,
			slog.Int64("book_id", id),
			slog.Int64("author_id", authorID))
		return nil, err
	}

	log.Info("book updated",
		slog.Int64("book_id", id),
		slog.Int64("author_id", authorID))
	return updated, nil
}

// DeleteBook implements BookService.DeleteBook
func (s *bookServiceImpl) DeleteBook(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.bookStore.WithTx(tx).Delete(ctx, id); err != nil {
			if store.IsNotFoundError(err) {
				return bookNotFound("delete_book", id, err)
			}
			return NewServiceError("book", "delete_book", "failed to delete book", err)
		}
		return nil
	})
	if err != nil {
		logServiceError(log, "failed to delete book", err, slog.Int64("book_id", id))
		return err
	}

	log.Info("book deleted", slog.Int64("book_id", id))
	return nil
}

// resolveAuthor loads the author a book should reference.
func (s *bookServiceImpl) resolveAuthor(
	ctx context.Context,
	authors store.AuthorStore,
	operation string,
	authorID int64,
) (*domain.Author, error) {
	author, err := authors.GetByID(ctx, authorID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, unknownAuthor(operation, authorID)
		}
		return nil, NewServiceError("book", operation, "failed to retrieve author", err)
	}
	return author, nil
}
