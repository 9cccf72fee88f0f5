package concrete

import (
	"context"
	"fmt"

	"github.com/mogiel/konec/internal/domain"
)

// MemoryRepository serves a fixed catalog.
type MemoryRepository struct {
	classes []domain.ConcreteClass
	byName  map[string]int
}

var _ domain.ConcreteRepository = (*MemoryRepository)(nil)

// NewMemoryRepository keeps the given classes, which must already be normalized and ordered.
func NewMemoryRepository(classes []domain.ConcreteClass) *MemoryRepository {
	byName := make(map[string]int, len(classes))
	for i, c := range classes {
		byName[c.Name] = i
	}
	return &MemoryRepository{classes: classes, byName: byName}
}

// NewEmbeddedRepository serves the built-in catalog.
func NewEmbeddedRepository() (*MemoryRepository, error) {
	classes, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(classes), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.ConcreteClass, error) {
	out := make([]domain.ConcreteClass, len(r.classes))
	copy(out, r.classes)
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, name string) (*domain.ConcreteClass, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, domain.ErrConcreteClassNotFound)
	}
	c := r.classes[i]
	return &c, nil
}
