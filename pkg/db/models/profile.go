package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the spendable balance for a user. The id matches the subject
// issued by the external identity provider. Checkout is the only writer here;
// credits arrive through an out-of-band top-up process.
type Profile struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BalanceCents int64     `gorm:"column:balance_cents;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
