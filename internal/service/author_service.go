package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/store"
)

// AuthorService provides author-related operations.
type AuthorService interface {
	// ListAuthors returns every author matching filter, each with its books.
	ListAuthors(ctx context.Context, filter store.AuthorFilter) ([]*domain.Author, error)

	// GetAuthor retrieves an author with its books.
	GetAuthor(ctx context.Context, id int64) (*domain.Author, error)

	// CreateAuthor persists a new author with an empty book list.
	CreateAuthor(ctx context.Context, name string) (*domain.Author, error)

	// UpdateAuthor overwrites the author's name and returns the author with its books.
	UpdateAuthor(ctx context.Context, id int64, name string) (*domain.Author, error)

	// DeleteAuthor removes the author and all of its books in one transaction.
	DeleteAuthor(ctx context.Context, id int64) error
}

// authorServiceImpl implements the AuthorService interface
type authorServiceImpl struct {
	db          store.TxBeginner
	authorStore store.AuthorStore
	bookStore   store.BookStore
	logger      *slog.Logger
}

// NewAuthorService creates a new AuthorService.
// It returns an error if any of the required dependencies are nil.
func NewAuthorService(
	db store.TxBeginner,
	authorStore store.AuthorStore,
	bookStore store.BookStore,
	logger *slog.Logger,
) (AuthorService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if authorStore == nil {
		return nil, domain.NewValidationError("authorStore", "cannot be nil", domain.ErrValidation)
	}
	if bookStore == nil {
		return nil, domain.NewValidationError("bookStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &authorServiceImpl{
		db:          db,
		authorStore: authorStore,
		bookStore:   bookStore,
		logger:      logger.With(slog.String("component", "author_service")),
	}, nil
}

// ListAuthors implements AuthorService.ListAuthors
func (s *authorServiceImpl) ListAuthors(
	ctx context.Context,
	filter store.AuthorFilter,
) ([]*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	authors, err := s.authorStore.List(ctx, filter)
	if err != nil {
		log.Error("failed to list authors", slog.String("error", err.Error()))
		return nil, NewServiceError("author", "list_authors", "failed to list authors", err)
	}

	return authors, nil
}

// GetAuthor implements AuthorService.GetAuthor
func (s *authorServiceImpl) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	author, err := s.authorStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("author not found", slog.Int64("author_id", id))
			return nil, authorNotFound("get_author", id, err)
		}
		log.Error("failed to retrieve author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return nil, NewServiceError("author", "get_author", "failed to retrieve author", err)
	}

	return author, nil
}

// CreateAuthor implements AuthorService.CreateAuthor
func (s *authorServiceImpl) CreateAuthor(ctx context.Context, name string) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	author, err := domain.NewAuthor(name)
	if err != nil {
		log.Debug("invalid author", slog.String("error", err.Error()))
		return nil, NewServiceError("author", "create_author", "Name must not be blank", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.authorStore.WithTx(tx).Create(ctx, author)
	})
	if err != nil {
		log.Error("failed to create author", slog.String("error", err.Error()))
		return nil, NewServiceError("author", "create_author", "failed to save author", err)
	}

	log.Info("author created", slog.Int64("author_id", author.ID))
	return author, nil
}

// UpdateAuthor implements AuthorService.UpdateAuthor
// Only the name changes; the author's books are returned as stored.
func (s *authorServiceImpl) UpdateAuthor(
	ctx context.Context,
	id int64,
	name string,
) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Author
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txAuthors := s.authorStore.WithTx(tx)

		author, err := txAuthors.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return authorNotFound("update_author", id, err)
			}
			return NewServiceError("author", "update_author", "failed to retrieve author", err)
		}

		if err := author.Rename(name); err != nil {
			return NewServiceError("author", "update_author", "Name must not be blank", err)
		}

		if err := txAuthors.Update(ctx, author); err != nil {
			return NewServiceError("author", "update_author", "failed to save author", err)
		}

		updated = author
		return nil
	})
	if err != nil {
		logServiceError(log, "failed to update author", err, slog.Int64("author_id", id))
		return nil, err
	}

	log.Info("author updated", slog.Int64("author_id", id))
	return updated, nil
}

// DeleteAuthor implements AuthorService.DeleteAuthor
func (s *authorServiceImpl) DeleteAuthor(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txAuthors := s.authorStore.WithTx(tx)

		exists, err := txAuthors.ExistsByID(ctx, id)
		if err != nil {
			return NewServiceError("author", "delete_author", "failed to check author", err)
		}
		if !exists {
			return authorNotFound("delete_author", id, store.ErrAuthorNotFound)
		}

		removed, err = s.bookStore.WithTx(tx).CountByAuthor(ctx, id)
		if err != nil {
			return NewServiceError("author", "delete_author", "failed to count books", err)
		}

		if err := txAuthors.Delete(ctx, id); err != nil {
			if store.IsNotFoundError(err) {
				return authorNotFound("delete_author", id, err)
			}
			return NewServiceError("author", "delete_author", "failed to delete author", err)
		}
		return nil
	})
	if err != nil {
		logServiceError(log, "failed to delete author", err, slog.Int64("author_id", id))
		return err
	}

	log.Info("author deleted",
		slog.Int64("author_id", id),
		slog.Int("books_removed", removed))
	return nil
}
