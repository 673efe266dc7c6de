package controllers

import (
	"net/http"
	"strings"

	"github.com/bookverse/bookverse-backend/api/responses"
	"github.com/bookverse/bookverse-backend/api/validators"
	"github.com/bookverse/bookverse-backend/internal/catalog"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// ListBooks serves the catalog, optionally narrowed by search and genre.
func ListBooks(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		books, err := svc.List(r.Context(), catalog.ListInput{
			Search: strings.TrimSpace(query.Get("search")),
			Genre:  strings.TrimSpace(query.Get("genre")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, books)
	}
}

// GetBook serves a single book by id.
func GetBook(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookID, err := validators.ParseUUIDParam(r, "bookId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		book, err := svc.Get(r.Context(), bookID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, book)
	}
}

// ListGenres serves the distinct genres available in the catalog.
func ListGenres(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := svc.Genres(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, genres)
	}
}
