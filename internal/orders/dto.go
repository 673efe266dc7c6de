package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/db/models"
)

// OrderItemDTO is one purchased line, priced as it was at checkout time.
type OrderItemDTO struct {
	BookID             uuid.UUID `json:"book_id"`
	Quantity           int       `json:"quantity"`
	UnitPriceCents     int       `json:"unit_price"`
	UnitPriceFormatted string    `json:"unit_price_formatted"`
}

// OrderDTO is the API shape of a completed order.
type OrderDTO struct {
	ID             uuid.UUID      `json:"id"`
	TotalCents     int64          `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
	Status         string         `json:"status"`
	Items          []OrderItemDTO `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
}

func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			BookID:             item.BookID,
			Quantity:           item.Quantity,
			UnitPriceCents:     item.UnitPriceCents,
			UnitPriceFormatted: currency.FormatBRL(int64(item.UnitPriceCents)),
		})
	}
	return &OrderDTO{
		ID:             order.ID,
		TotalCents:     order.TotalCents,
		TotalFormatted: currency.FormatBRL(order.TotalCents),
		Status:         order.Status.String(),
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}
