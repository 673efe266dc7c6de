package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/pkg/db/models"
)

// Repository handles book persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to book operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBooks returns the full catalog ordered by insertion time. The catalog
// is small enough that filtering happens in memory downstream.
func (r *Repository) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindBookByID loads a single book by its UUID.
func (r *Repository) FindBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}
