package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
)

// AuthorHandler handles author-related HTTP requests
type AuthorHandler struct {
	authorService service.AuthorService
	logger        *slog.Logger
}

// NewAuthorHandler creates a new AuthorHandler
func NewAuthorHandler(authorService service.AuthorService, logger *slog.Logger) *AuthorHandler {
	if authorService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("authorService cannot be nil for AuthorHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorHandler{
		authorService: authorService,
		logger:        logger.With(slog.String("component", "author_handler")),
	}
}

// ListAuthors handles GET /authors requests.
// The optional name query parameter filters by a case-insensitive substring.
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter := store.AuthorFilter{NameContains: strings.TrimSpace(r.URL.Query().Get("name"))}

	authors, err := h.authorService.ListAuthors(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("listed authors", slog.Int("count", len(authors)))
	shared.RespondWithJSON(w, r, http.StatusOK, authorsToResponse(authors))
}

// GetAuthor handles GET /authors/{id} requests
func (h *AuthorHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	author, err := h.authorService.GetAuthor(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorToResponse(author))
}

// CreateAuthor handles POST /authors requests
func (h *AuthorHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AuthorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	author, err := h.authorService.CreateAuthor(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("author created", slog.Int64("author_id", author.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, authorToResponse(author))
}

// UpdateAuthor handles PUT /authors/{id} requests.
// The request replaces the author's name; its books are untouched.
func (h *AuthorHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req AuthorRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	author, err := h.authorService.UpdateAuthor(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorToResponse(author))
}

// DeleteAuthor handles DELETE /authors/{id} requests.
// All of the author's books are deleted with it.
func (h *AuthorHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.authorService.DeleteAuthor(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("author deleted", slog.Int64("author_id", id))
	w.WriteHeader(http.StatusNoContent)
}
