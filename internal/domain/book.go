package domain

import (
	"strings"
)

// UnknownAuthorName is reported for a book whose author reference does not
// resolve. Write-time checks make this unreachable for consistent data.
const UnknownAuthorName = "Unknown author"

// Book is a title written by exactly one author.
type Book struct {
	ID       int64
	Title    string
	AuthorID int64

	// Author is the resolved reference, populated by stores on reads.
	Author *Author
}

// NewBook creates a Book referencing authorID.
func NewBook(title string, authorID int64) (*Book, error) {
	book := &Book{
		Title:    title,
		AuthorID: authorID,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks that the book has a title and an author reference.
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return NewValidationError("title", "must not be blank", ErrEmptyContent)
	}
	if b.AuthorID <= 0 {
		return NewValidationError("authorId", "is required", ErrInvalidID)
	}
	return nil
}

// Reassign overwrites the title and the author reference. The caller is
// responsible for confirming that the author exists.
func (b *Book) Reassign(title string, author *Author) error {
	if author == nil {
		return NewValidationError("authorId", "is required", ErrInvalidID)
	}
	candidate := Book{Title: title, AuthorID: author.ID}
	if err := candidate.Validate(); err != nil {
		return err
	}
	b.Title = title
	b.AuthorID = author.ID
	b.Author = author
	return nil
}

// AuthorName returns the resolved author's name or UnknownAuthorName.
func (b *Book) AuthorName() string {
	if b.Author == nil {
		return UnknownAuthorName
	}
	return b.Author.Name
}
