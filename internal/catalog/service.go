package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookverse/bookverse-backend/pkg/db/models"
	apperrors "github.com/bookverse/bookverse-backend/pkg/errors"
)

type bookRepository interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	FindBookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
}

// ListInput narrows a catalog listing.
type ListInput struct {
	Search string
	Genre  string
}

// Service exposes catalog reads.
type Service interface {
	List(ctx context.Context, input ListInput) ([]BookDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*BookDTO, error)
	Genres(ctx context.Context) ([]string, error)
}

type service struct {
	repo bookRepository
}

// NewService builds a catalog service over the book repository.
func NewService(repo bookRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("book repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]BookDTO, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "listing books")
	}
	return FromModels(Filter(books, input.Search, input.Genre)), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*BookDTO, error) {
	book, err := s.repo.FindBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "book not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "loading book")
	}
	return FromModel(book), nil
}

func (s *service) Genres(ctx context.Context) ([]string, error) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "listing genres")
	}
	return Genres(books), nil
}
