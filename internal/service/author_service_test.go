package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAuthorService_RequiresDependencies(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = service.NewAuthorService(nil, &MockAuthorStore{}, &MockBookStore{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewAuthorService(db, nil, &MockBookStore{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewAuthorService(db, &MockAuthorStore{}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	svc, err := service.NewAuthorService(db, &MockAuthorStore{}, &MockBookStore{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestAuthorService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.authorSvc.CreateAuthor(ctx, "Ada")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Ada", created.Name)
	assert.NotNil(t, created.Books)
	assert.Empty(t, created.Books)

	got, err := f.authorSvc.GetAuthor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
}

func TestAuthorService_CreateBlankName(t *testing.T) {
	f := newFixture(t)

	_, err := f.authorSvc.CreateAuthor(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := f.authorSvc.ListAuthors(context.Background(), store.AuthorFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAuthorService_GetNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.authorSvc.GetAuthor(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var svcErr *service.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "Author not found with ID: 404", svcErr.Message)
}

func TestAuthorService_ListWithFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.authorSvc.CreateAuthor(ctx, "Ada Lovelace")
	require.NoError(t, err)
	_, err = f.authorSvc.CreateAuthor(ctx, "Alan Turing")
	require.NoError(t, err)

	all, err := f.authorSvc.ListAuthors(ctx, store.AuthorFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.authorSvc.ListAuthors(ctx, store.AuthorFilter{NameContains: "ada"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Ada Lovelace", filtered[0].Name)
}

func TestAuthorService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author, err := f.authorSvc.CreateAuthor(ctx, "Ada")
	require.NoError(t, err)
	_, err = f.bookSvc.CreateBook(ctx, "Notes", author.ID)
	require.NoError(t, err)

	updated, err := f.authorSvc.UpdateAuthor(ctx, author.ID, "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, author.ID, updated.ID)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, []string{"Notes"}, updated.BookTitles())

	t.Run("absent author", func(t *testing.T) {
		_, err := f.authorSvc.UpdateAuthor(ctx, author.ID+10, "Ghost")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("blank name keeps the stored name", func(t *testing.T) {
		_, err := f.authorSvc.UpdateAuthor(ctx, author.ID, "")
		assert.ErrorIs(t, err, domain.ErrValidation)

		got, err := f.authorSvc.GetAuthor(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Name)
	})
}

func TestAuthorService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	author, err := f.authorSvc.CreateAuthor(ctx, "Ada")
	require.NoError(t, err)

	var bookIDs []int64
	for _, title := range []string{"One", "Two", "Three"} {
		book, err := f.bookSvc.CreateBook(ctx, title, author.ID)
		require.NoError(t, err)
		bookIDs = append(bookIDs, book.ID)
	}

	require.NoError(t, f.authorSvc.DeleteAuthor(ctx, author.ID))

	_, err = f.authorSvc.GetAuthor(ctx, author.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	for _, id := range bookIDs {
		_, err := f.bookSvc.GetBook(ctx, id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	}

	assert.ErrorIs(t, f.authorSvc.DeleteAuthor(ctx, author.ID), store.ErrNotFound)
}

func TestAuthorService_DeleteRollsBackOnStoreFailure(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	authors := &MockAuthorStore{}
	books := &MockBookStore{}
	svc, err := service.NewAuthorService(db, authors, books, nil)
	require.NoError(t, err)

	dbErr := errors.New("connection reset")
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	authors.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	books.On("CountByAuthor", mock.Anything, int64(1)).Return(2, nil)
	authors.On("Delete", mock.Anything, int64(1)).Return(dbErr)

	err = svc.DeleteAuthor(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	authors.AssertExpectations(t)
	books.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthorService_CreateCommits(t *testing.T) {
	ctx := context.Background()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	authors := &MockAuthorStore{}
	svc, err := service.NewAuthorService(db, authors, &MockBookStore{}, nil)
	require.NoError(t, err)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	authors.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Author) bool {
		return a.Name == "Ada"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Author).ID = 9
	}).Return(nil)

	author, err := svc.CreateAuthor(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, int64(9), author.ID)

	authors.AssertExpectations(t)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAuthorService_ListFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	authors := &MockAuthorStore{}
	svc, err := service.NewAuthorService(db, authors, &MockBookStore{}, nil)
	require.NoError(t, err)

	dbErr := errors.New("boom")
	authors.On("List", mock.Anything, store.AuthorFilter{}).Return(nil, dbErr)

	_, err = svc.ListAuthors(context.Background(), store.AuthorFilter{})
	assert.ErrorIs(t, err, dbErr)
}
