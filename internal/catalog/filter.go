package catalog

import (
	"strings"

	"github.com/bookverse/bookverse-backend/pkg/db/models"
)

// GenreAll is the sentinel genre meaning "no genre constraint".
const GenreAll = "all"

// Filter narrows the catalog with a case-insensitive substring match on title
// or author, combined with an exact genre match. Both conditions must hold.
// An empty search term matches every book.
func Filter(books []models.Book, search, genre string) []models.Book {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Book, 0, len(books))
	for _, book := range books {
		if term != "" &&
			!strings.Contains(strings.ToLower(book.Title), term) &&
			!strings.Contains(strings.ToLower(book.Author), term) {
			continue
		}
		if genre != "" && genre != GenreAll && book.Genre != genre {
			continue
		}
		out = append(out, book)
	}
	return out
}

// Genres lists the distinct non-empty genres in first-seen order.
func Genres(books []models.Book) []string {
	seen := make(map[string]struct{}, len(books))
	out := []string{}
	for _, book := range books {
		if book.Genre == "" {
			continue
		}
		if _, ok := seen[book.Genre]; ok {
			continue
		}
		seen[book.Genre] = struct{}{}
		out = append(out, book.Genre)
	}
	return out
}
