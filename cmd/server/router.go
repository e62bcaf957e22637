package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/library-api/internal/api"
	apiMiddleware "github.com/phrazzld/library-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewRecoverer(app.logger))

	authorHandler := api.NewAuthorHandler(app.authorService, app.logger)
	bookHandler := api.NewBookHandler(app.bookService, app.logger)

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", authorHandler.ListAuthors)
		r.Post("/", authorHandler.CreateAuthor)
		r.Get("/{id}", authorHandler.GetAuthor)
		r.Put("/{id}", authorHandler.UpdateAuthor)
		r.Delete("/{id}", authorHandler.DeleteAuthor)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.ListBooks)
		r.Post("/", bookHandler.CreateBook)
		r.Get("/{id}", bookHandler.GetBook)
		r.Put("/{id}", bookHandler.UpdateBook)
		r.Delete("/{id}", bookHandler.DeleteBook)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
