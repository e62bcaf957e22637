package service_test

import (
	"context"
	"database/sql"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockAuthorStore mocks the store.AuthorStore interface
type MockAuthorStore struct {
	mock.Mock
}

func (m *MockAuthorStore) List(ctx context.Context, filter store.AuthorFilter) ([]*domain.Author, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Author), args.Error(1)
}

func (m *MockAuthorStore) GetByID(ctx context.Context, id int64) (*domain.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Author), args.Error(1)
}

func (m *MockAuthorStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	args := m.Called(ctx, author)
	return args.Error(0)
}

func (m *MockAuthorStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations apply inside transactions.
func (m *MockAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return m
}

// MockBookStore mocks the store.BookStore interface
type MockBookStore struct {
	mock.Mock
}

func (m *MockBookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Book), args.Error(1)
}

func (m *MockBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookStore) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	args := m.Called(ctx, authorID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations apply inside transactions.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return m
}
