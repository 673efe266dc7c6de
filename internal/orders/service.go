package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

// Service exposes order reads for the storefront. Writes happen only inside
// the checkout transaction.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds an order service over the order repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "loading order")
	}
	// Another user's order is indistinguishable from a missing one.
	if order.UserID != userID {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	return FromModel(order), nil
}
