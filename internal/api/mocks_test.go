package api

import (
	"context"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockAuthorService mocks the service.AuthorService interface
type MockAuthorService struct {
	mock.Mock
}

func (m *MockAuthorService) ListAuthors(ctx context.Context, filter store.AuthorFilter) ([]*domain.Author, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Author), args.Error(1)
}

func (m *MockAuthorService) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Author), args.Error(1)
}

func (m *MockAuthorService) CreateAuthor(ctx context.Context, name string) (*domain.Author, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Author), args.Error(1)
}

func (m *MockAuthorService) UpdateAuthor(ctx context.Context, id int64, name string) (*domain.Author, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Author), args.Error(1)
}

func (m *MockAuthorService) DeleteAuthor(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBookService mocks the service.BookService interface
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Book), args.Error(1)
}

func (m *MockBookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) CreateBook(ctx context.Context, title string, authorID int64) (*domain.Book, error) {
	args := m.Called(ctx, title, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) UpdateBook(ctx context.Context, id int64, title string, authorID int64) (*domain.Book, error) {
	args := m.Called(ctx, id, title, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookService) DeleteBook(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
