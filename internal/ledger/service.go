package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

// Service exposes ledger reads. Entries are only ever appended, and only by
// checkout.
type Service interface {
	History(ctx context.Context, userID uuid.UUID) ([]TransactionDTO, error)
}

type service struct {
	repo Repository
}

// NewService builds a ledger service over the transaction repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID) ([]TransactionDTO, error) {
	transactions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "listing transactions")
	}
	return FromModels(transactions), nil
}
