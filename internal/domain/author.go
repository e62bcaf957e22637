package domain

import (
	"strings"
)

// Author is a writer who exclusively owns a collection of books.
// Deleting an author removes every book that references it.
type Author struct {
	ID    int64
	Name  string
	Books []Book
}

// NewAuthor creates an Author with the given name and an empty book list.
// The ID stays zero until the author is persisted.
func NewAuthor(name string) (*Author, error) {
	author := &Author{
		Name:  name,
		Books: []Book{},
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}

	return author, nil
}

// Validate checks that the author's mutable fields are acceptable.
func (a *Author) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return NewValidationError("name", "must not be blank", ErrEmptyContent)
	}
	return nil
}

// Rename overwrites the author's name after validating it.
func (a *Author) Rename(name string) error {
	candidate := Author{Name: name}
	if err := candidate.Validate(); err != nil {
		return err
	}
	a.Name = name
	return nil
}

// BookTitles returns the titles of the author's books in order.
// The result is never nil.
func (a *Author) BookTitles() []string {
	titles := make([]string, 0, len(a.Books))
	for _, b := range a.Books {
		titles = append(titles, b.Title)
	}
	return titles
}
