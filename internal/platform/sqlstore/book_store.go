package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/store"
)

// BookStore implements the store.BookStore interface on top of database/sql.
type BookStore struct {
	db      store.DBTX
	dialect Dialect
	sb      sq.StatementBuilderType
	logger  *slog.Logger
}

// NewBookStore creates a new SQL implementation of the BookStore interface.
// If logger is nil, a default logger will be used.
func NewBookStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *BookStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &BookStore{
		db:      db,
		dialect: dialect,
		sb:      dialect.Builder(),
		logger:  logger.With(slog.String("component", "book_store")),
	}
}

// Ensure BookStore implements store.BookStore interface
var _ store.BookStore = (*BookStore)(nil)

// WithTx implements store.BookStore.WithTx
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{
		db:      tx,
		dialect: s.dialect,
		sb:      s.sb,
		logger:  s.logger,
	}
}

// selectBooks joins the author so each book's reference resolves in one query.
// LEFT JOIN keeps a book visible even if its author row is missing.
func (s *BookStore) selectBooks() sq.SelectBuilder {
	return s.sb.Select("b.id", "b.title", "b.author_id", "a.id", "a.name").
		From("books b").
		LeftJoin("authors a ON a.id = b.author_id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var (
		book       domain.Book
		authorID   sql.NullInt64
		authorName sql.NullString
	)
	if err := row.Scan(&book.ID, &book.Title, &book.AuthorID, &authorID, &authorName); err != nil {
		return nil, err
	}
	if authorID.Valid {
		book.Author = &domain.Author{ID: authorID.Int64, Name: authorName.String}
	}
	return &book, nil
}

// List implements store.BookStore.List
func (s *BookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := s.selectBooks().OrderBy("b.id")
	if filter.AuthorID != 0 {
		q = q.Where(sq.Eq{"b.author_id": filter.AuthorID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query books", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	books := []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("failed to scan book row", slog.String("error", err.Error()))
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed books", slog.Int("count", len(books)))
	return books, nil
}

// GetByID implements store.BookStore.GetByID
func (s *BookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.selectBooks().Where(sq.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	book, err := scanBook(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("book not found", slog.Int64("book_id", id))
			return nil, store.ErrBookNotFound
		}
		log.Error("failed to get book by ID",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return nil, MapError(err)
	}

	return book, nil
}

// ExistsByID implements store.BookStore.ExistsByID
func (s *BookStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return countByID(ctx, s.db, s.sb, "books", id)
}

// CountByAuthor implements store.BookStore.CountByAuthor
func (s *BookStore) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("books").Where(sq.Eq{"author_id": authorID}).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// Create implements store.BookStore.Create
// Returns store.ErrInvalidEntity if the author ID doesn't exist (foreign key violation).
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query, args, err := s.sb.Insert("books").
		Columns("title", "author_id").
		Values(book.Title, book.AuthorID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&book.ID); err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during book creation",
				slog.String("error", err.Error()),
				slog.Int64("author_id", book.AuthorID))
			return fmt.Errorf("%w: author with ID %d not found", store.ErrInvalidEntity, book.AuthorID)
		}
		log.Error("failed to create book",
			slog.String("error", err.Error()),
			slog.Int64("author_id", book.AuthorID))
		return MapError(err)
	}

	log.Info("book created successfully",
		slog.Int64("book_id", book.ID),
		slog.Int64("author_id", book.AuthorID))
	return nil
}

// Update implements store.BookStore.Update
func (s *BookStore) Update(ctx context.Context, book *domain.Book) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := book.Validate(); err != nil {
		log.Warn("book validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return err
	}

	query, args, err := s.sb.Update("books").
		Set("title", book.Title).
		Set("author_id", book.AuthorID).
		Where(sq.Eq{"id": book.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: author with ID %d not found", store.ErrInvalidEntity, book.AuthorID)
		}
		log.Error("failed to update book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", book.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBookNotFound); err != nil {
		log.Debug("book not found for update", slog.Int64("book_id", book.ID))
		return err
	}

	log.Info("book updated successfully",
		slog.Int64("book_id", book.ID),
		slog.Int64("author_id", book.AuthorID))
	return nil
}

// Delete implements store.BookStore.Delete
func (s *BookStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Delete("books").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete book",
			slog.String("error", err.Error()),
			slog.Int64("book_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrBookNotFound); err != nil {
		log.Debug("book not found for delete", slog.Int64("book_id", id))
		return err
	}

	log.Info("book deleted successfully", slog.Int64("book_id", id))
	return nil
}
