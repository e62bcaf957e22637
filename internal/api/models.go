package api

import (
	"github.com/phrazzld/library-api/internal/domain"
	"github.com/samber/lo"
)

// AuthorRequest defines the payload for creating or replacing an author.
type AuthorRequest struct {
	Name string `json:"name" validate:"notblank"`
}

// BookRequest defines the payload for creating or replacing a book.
type BookRequest struct {
	Title string `json:"title" validate:"notblank"`

	// AuthorID is a pointer so a missing field can be told apart from zero.
	AuthorID *int64 `json:"authorId" validate:"required,gt=0"`
}

// AuthorResponse is the wire representation of an author.
type AuthorResponse struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	BookTitles []string `json:"bookTitles"`
}

// BookResponse is the wire representation of a book.
type BookResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	AuthorID   int64  `json:"authorId"`
	AuthorName string `json:"authorName"`
}

// fieldMessages holds the client-facing message for each validated field.
// A "field.tag" key overrides the field message for one failed rule.
var fieldMessages = map[string]string{
	"name":        "Name must not be blank",
	"title":       "Title must not be blank",
	"authorId":    "Author ID is required",
	"authorId.gt": "Author ID must be a positive number",
}

func authorToResponse(author *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:         author.ID,
		Name:       author.Name,
		BookTitles: author.BookTitles(),
	}
}

func authorsToResponse(authors []*domain.Author) []AuthorResponse {
	return lo.Map(authors, func(a *domain.Author, _ int) AuthorResponse {
		return authorToResponse(a)
	})
}

func bookToResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:         book.ID,
		Title:      book.Title,
		AuthorID:   book.AuthorID,
		AuthorName: book.AuthorName(),
	}
}

func booksToResponse(books []*domain.Book) []BookResponse {
	return lo.Map(books, func(b *domain.Book, _ int) BookResponse {
		return bookToResponse(b)
	})
}
