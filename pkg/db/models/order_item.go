package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one cart line at checkout time. UnitPriceCents is the
// price paid, decoupled from any later change to the book's price.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	BookID         uuid.UUID `gorm:"column:book_id;type:uuid;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
