package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookverse/bookverse-backend/pkg/enums"
)

// Transaction is an append-only audit record of a balance-affecting event.
// AmountCents is signed: purchases are negative, top-ups positive.
type Transaction struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID             `gorm:"column:user_id;type:uuid;not null"`
	AmountCents int64                 `gorm:"column:amount_cents;not null"`
	Type        enums.TransactionType `gorm:"column:type;not null"`
	Description string                `gorm:"column:description;not null;default:''"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
