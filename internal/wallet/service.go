package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/pkg/currency"
	"github.com/bookverse/bookverse-backend/pkg/db/models"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

// BalanceDTO carries a profile balance in integer centavos alongside its
// display form.
type BalanceDTO struct {
	UserID           uuid.UUID `json:"user_id"`
	BalanceCents     int64     `json:"balance"`
	BalanceFormatted string    `json:"balance_formatted"`
}

type profileReader interface {
	FindProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// Service exposes wallet reads.
type Service interface {
	Balance(ctx context.Context, userID uuid.UUID) (*BalanceDTO, error)
}

type service struct {
	repo profileReader
}

// NewService builds a wallet service over the profile repository.
func NewService(repo profileReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Balance(ctx context.Context, userID uuid.UUID) (*BalanceDTO, error) {
	profile, err := s.repo.FindProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "profile not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "loading profile")
	}
	return balanceDTO(profile.ID, profile.BalanceCents), nil
}

func balanceDTO(userID uuid.UUID, cents int64) *BalanceDTO {
	return &BalanceDTO{
		UserID:           userID,
		BalanceCents:     cents,
		BalanceFormatted: currency.FormatBRL(cents),
	}
}
