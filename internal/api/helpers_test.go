package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.DiscardHandler)

func newTestRouter(authors *MockAuthorService, books *MockBookService) http.Handler {
	r := chi.NewRouter()
	if authors != nil {
		h := NewAuthorHandler(authors, discardLogger)
		r.Route("/authors", func(r chi.Router) {
			r.Get("/", h.ListAuthors)
			r.Post("/", h.CreateAuthor)
			r.Get("/{id}", h.GetAuthor)
			r.Put("/{id}", h.UpdateAuthor)
			r.Delete("/{id}", h.DeleteAuthor)
		})
	}
	if books != nil {
		h := NewBookHandler(books, discardLogger)
		r.Route("/books", func(r chi.Router) {
			r.Get("/", h.ListBooks)
			r.Post("/", h.CreateBook)
			r.Get("/{id}", h.GetBook)
			r.Put("/{id}", h.UpdateBook)
			r.Delete("/{id}", h.DeleteBook)
		})
	}
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}
