package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
	"github.com/bookverse/bookverse-backend/pkg/logger"
)

// Service owns the load/mutate/save cycle for per-user carts. A missing or
// unreadable payload degrades to an empty cart rather than an error, so a
// corrupted blob never locks a user out of shopping.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID uuid.UUID, item Item) (AddResult, *Cart, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, bookID uuid.UUID, quantity int) (*Cart, error)
	Remove(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	persister Persister
	logg      *logger.Logger
}

// NewService wires a cart service over the supplied persister.
func NewService(persister Persister, logg *logger.Logger) (Service, error) {
	if persister == nil {
		return nil, errors.New("cart service requires a persister")
	}
	if logg == nil {
		return nil, errors.New("cart service requires a logger")
	}
	return &service{persister: persister, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	return s.load(ctx, userID)
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, item Item) (AddResult, *Cart, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return AddResult{}, nil, err
	}
	result := current.Add(item)
	if err := s.save(ctx, userID, current); err != nil {
		return AddResult{}, nil, err
	}
	return result, current, nil
}

func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, bookID uuid.UUID, quantity int) (*Cart, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	current.SetQuantity(bookID, quantity)
	if err := s.save(ctx, userID, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, bookID uuid.UUID) (*Cart, error) {
	current, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	current.Remove(bookID)
	if err := s.save(ctx, userID, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.persister.Delete(ctx, userID); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "clearing cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	payload, err := s.persister.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotPersisted) {
			return NewCart(), nil
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "loading cart")
	}
	current, err := DecodeCart(payload)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "user_id", userID.String()),
			fmt.Sprintf("discarding unreadable cart payload: %v", err))
		return NewCart(), nil
	}
	return current, nil
}

func (s *service) save(ctx context.Context, userID uuid.UUID, current *Cart) error {
	payload, err := current.Encode()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "encoding cart")
	}
	if err := s.persister.Save(ctx, userID, payload); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "saving cart")
	}
	return nil
}
