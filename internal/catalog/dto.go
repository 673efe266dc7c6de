package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/db/models"
)

// BookDTO exposes catalog data in API responses. Price travels both as an
// integer cent amount and preformatted in Brazilian real.
type BookDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Description    string    `json:"description,omitempty"`
	PriceCents     int       `json:"price"`
	PriceFormatted string    `json:"price_formatted"`
	CoverImageURL  string    `json:"cover_image_url"`
	Genre          string    `json:"genre"`
	Stock          int       `json:"stock"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromModel maps a persisted book into a DTO.
func FromModel(m *models.Book) *BookDTO {
	if m == nil {
		return nil
	}
	return &BookDTO{
		ID:             m.ID,
		Title:          m.Title,
		Author:         m.Author,
		Description:    m.Description,
		PriceCents:     m.PriceCents,
		PriceFormatted: currency.FormatBRL(int64(m.PriceCents)),
		CoverImageURL:  m.CoverImageURL,
		Genre:          m.Genre,
		Stock:          m.Stock,
		CreatedAt:      m.CreatedAt,
	}
}

// FromModels maps a book slice into DTOs, never returning nil.
func FromModels(books []models.Book) []BookDTO {
	out := make([]BookDTO, 0, len(books))
	for i := range books {
		out = append(out, *FromModel(&books[i]))
	}
	return out
}
