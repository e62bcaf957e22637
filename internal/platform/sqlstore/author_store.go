package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/samber/lo"
)

// AuthorStore implements the store.AuthorStore interface on top of database/sql.
type AuthorStore struct {
	db      store.DBTX
	dialect Dialect
	sb      sq.StatementBuilderType
	logger  *slog.Logger
}

// NewAuthorStore creates a new SQL implementation of the AuthorStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewAuthorStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *AuthorStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorStore{
		db:      db,
		dialect: dialect,
		sb:      dialect.Builder(),
		logger:  logger.With(slog.String("component", "author_store")),
	}
}

// Ensure AuthorStore implements store.AuthorStore interface
var _ store.AuthorStore = (*AuthorStore)(nil)

// WithTx implements store.AuthorStore.WithTx
func (s *AuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &AuthorStore{
		db:      tx,
		dialect: s.dialect,
		sb:      s.sb,
		logger:  s.logger,
	}
}

// List implements store.AuthorStore.List
func (s *AuthorStore) List(ctx context.Context, filter store.AuthorFilter) ([]*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := s.sb.Select("id", "name").From("authors").OrderBy("id")
	if name := strings.TrimSpace(filter.NameContains); name != "" {
		q = q.Where(sq.Like{"LOWER(name)": "%" + strings.ToLower(name) + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query authors", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	authors := []*domain.Author{}
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			log.Error("failed to scan author row", slog.String("error", err.Error()))
			return nil, err
		}
		authors = append(authors, &author)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.attachBooks(ctx, authors); err != nil {
		return nil, err
	}

	log.Debug("listed authors", slog.Int("count", len(authors)))
	return authors, nil
}

// GetByID implements store.AuthorStore.GetByID
func (s *AuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Select("id", "name").From("authors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var author domain.Author
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&author.ID, &author.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("author not found", slog.Int64("author_id", id))
			return nil, store.ErrAuthorNotFound
		}
		log.Error("failed to get author by ID",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return nil, MapError(err)
	}

	if err := s.attachBooks(ctx, []*domain.Author{&author}); err != nil {
		return nil, err
	}

	return &author, nil
}

// ExistsByID implements store.AuthorStore.ExistsByID
func (s *AuthorStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return countByID(ctx, s.db, s.sb, "authors", id)
}

// Create implements store.AuthorStore.Create
func (s *AuthorStore) Create(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query, args, err := s.sb.Insert("authors").
		Columns("name").
		Values(author.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&author.ID); err != nil {
		log.Error("failed to create author", slog.String("error", err.Error()))
		return MapError(err)
	}

	if author.Books == nil {
		author.Books = []domain.Book{}
	}

	log.Info("author created successfully", slog.Int64("author_id", author.ID))
	return nil
}

// Update implements store.AuthorStore.Update
func (s *AuthorStore) Update(ctx context.Context, author *domain.Author) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := author.Validate(); err != nil {
		log.Warn("author validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return err
	}

	query, args, err := s.sb.Update("authors").
		Set("name", author.Name).
		Where(sq.Eq{"id": author.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", author.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAuthorNotFound); err != nil {
		log.Debug("author not found for update", slog.Int64("author_id", author.ID))
		return err
	}

	log.Info("author updated successfully", slog.Int64("author_id", author.ID))
	return nil
}

// Delete implements store.AuthorStore.Delete
// Books are removed explicitly before the author row, so the cascade does not
// depend on the engine enforcing ON DELETE CASCADE.
func (s *AuthorStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := s.sb.Delete("books").Where(sq.Eq{"author_id": id}).ToSql()
	if err != nil {
		return err
	}
	booksResult, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete books of author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return MapError(err)
	}

	query, args, err = s.sb.Delete("authors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAuthorNotFound); err != nil {
		log.Debug("author not found for delete", slog.Int64("author_id", id))
		return err
	}

	removed, _ := booksResult.RowsAffected()
	log.Info("author deleted successfully",
		slog.Int64("author_id", id),
		slog.Int64("books_removed", removed))
	return nil
}

// attachBooks loads the books of every author with one query and binds them
// to their owner. Authors without books get an empty, non-nil slice.
func (s *AuthorStore) attachBooks(ctx context.Context, authors []*domain.Author) error {
	if len(authors) == 0 {
		return nil
	}

	ids := lo.Map(authors, func(a *domain.Author, _ int) int64 { return a.ID })

	query, args, err := s.sb.Select("id", "title", "author_id").
		From("books").
		Where(sq.Eq{"author_id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.AuthorID); err != nil {
			return err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	byAuthor := lo.GroupBy(books, func(b domain.Book) int64 { return b.AuthorID })
	for _, author := range authors {
		owned, ok := byAuthor[author.ID]
		if !ok {
			owned = []domain.Book{}
		}
		author.Books = owned
	}
	return nil
}

// countByID reports whether table has a row with the given primary key.
func countByID(ctx context.Context, db store.DBTX, sb sq.StatementBuilderType, table string, id int64) (bool, error) {
	query, args, err := sb.Select("COUNT(*)").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, MapError(err)
	}
	return count > 0, nil
}
