package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog listing. Books are created out-of-band (seed utility or
// back office) and are immutable from the storefront's perspective.
type Book struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string    `gorm:"column:title;not null"`
	Author        string    `gorm:"column:author;not null"`
	Description   string    `gorm:"column:description;not null;default:''"`
	PriceCents    int       `gorm:"column:price_cents;not null"`
	CoverImageURL string    `gorm:"column:cover_image_url;not null;default:''"`
	Genre         string    `gorm:"column:genre;not null;default:''"`
	Stock         int       `gorm:"column:stock;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Book) TableName() string {
	return "books"
}
