package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/enums"
)

// Order records one successful checkout. Never mutated afterwards.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	TotalCents int64             `gorm:"column:total_cents;not null"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}
