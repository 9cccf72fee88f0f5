package concrete

import (
	"context"
	"fmt"

	"github.com/mogiel/konec/internal/domain"
)

type Service struct {
	repo domain.ConcreteRepository
}

func NewService(repo domain.ConcreteRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.ConcreteClass, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list concrete classes: %w", err)
	}
	return classes, nil
}

// Get looks a class up by any accepted spelling. Malformed names are reported as not found.
func (s *Service) Get(ctx context.Context, rawName string) (*domain.ConcreteClass, error) {
	name, err := NormalizeName(rawName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConcreteClassNotFound, err)
	}
	c, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get concrete class: %w", err)
	}
	return c, nil
}
