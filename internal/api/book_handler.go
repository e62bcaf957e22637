package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
)

// BookHandler handles book-related HTTP requests
type BookHandler struct {
	bookService service.BookService
	logger      *slog.Logger
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookService service.BookService, logger *slog.Logger) *BookHandler {
	if bookService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("bookService cannot be nil for BookHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BookHandler{
		bookService: bookService,
		logger:      logger.With(slog.String("component", "book_handler")),
	}
}

// ListBooks handles GET /books requests.
// The optional authorId query parameter restricts the list to one author.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	authorID, err := getQueryID(r, "authorId")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	books, err := h.bookService.ListBooks(r.Context(), store.BookFilter{AuthorID: authorID})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("listed books", slog.Int("count", len(books)))
	shared.RespondWithJSON(w, r, http.StatusOK, booksToResponse(books))
}

// GetBook handles GET /books/{id} requests
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	book, err := h.bookService.GetBook(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// decodeBookRequest decodes and validates a BookRequest body.
func decodeBookRequest(r *http.Request) (BookRequest, error) {
	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	if err := shared.ValidateRequest(req); err != nil {
		return req, err
	}
	return req, nil
}

// CreateBook handles POST /books requests.
// An unknown authorId is a 400 and nothing is stored.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := decodeBookRequest(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	book, err := h.bookService.CreateBook(r.Context(), req.Title, *req.AuthorID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("book created",
		slog.Int64("book_id", book.ID),
		slog.Int64("author_id", book.AuthorID))
	shared.RespondWithJSON(w, r, http.StatusCreated, bookToResponse(book))
}

// UpdateBook handles PUT /books/{id} requests.
// Title and author are both replaced.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	req, err := decodeBookRequest(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	book, err := h.bookService.UpdateBook(r.Context(), id, req.Title, *req.AuthorID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(book))
}

// DeleteBook handles DELETE /books/{id} requests
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.bookService.DeleteBook(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
