package wallet

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/pkg/db/models"
)

// Repository manages persistence for user profiles and their balances.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	// DebitBalance subtracts amountCents from the profile balance only when
	// the balance covers it. It reports false when the conditional update
	// matched no row, which callers treat as insufficient funds.
	DebitBalance(ctx context.Context, id uuid.UUID, amountCents int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a profile repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) DebitBalance(ctx context.Context, id uuid.UUID, amountCents int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ? AND balance_cents >= ?", id, amountCents).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents - ?", amountCents))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
