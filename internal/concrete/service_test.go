package concrete

import (
	"context"
	"errors"
	"testing"

	"github.com/mogiel/konec/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{ err error }

func (f failingRepo) List(context.Context) ([]domain.ConcreteClass, error) { return nil, f.err }
func (f failingRepo) Get(context.Context, string) (*domain.ConcreteClass, error) {
	return nil, f.err
}

func newEmbeddedService(t *testing.T) *Service {
	t.Helper()
	repo, err := NewEmbeddedRepository()
	require.NoError(t, err)
	return NewService(repo)
}

func TestService_List(t *testing.T) {
	svc := newEmbeddedService(t)

	classes, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, classes, 14)

	// List hands out a copy.
	classes[0].Name = "mutated"
	again, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "C12/15", again[0].Name)
}

func TestService_Get(t *testing.T) {
	svc := newEmbeddedService(t)

	c, err := svc.Get(context.Background(), "c40-50")
	require.NoError(t, err)
	assert.Equal(t, "C40/50", c.Name)
	assert.Equal(t, 40, c.Fck)
}

func TestService_GetUnknown(t *testing.T) {
	svc := newEmbeddedService(t)

	_, err := svc.Get(context.Background(), "C99/110")
	assert.ErrorIs(t, err, domain.ErrConcreteClassNotFound)
}

func TestService_GetMalformedIsNotFound(t *testing.T) {
	svc := newEmbeddedService(t)

	_, err := svc.Get(context.Background(), "steel")
	assert.ErrorIs(t, err, domain.ErrConcreteClassNotFound)
}

func TestService_PropagatesRepositoryErrors(t *testing.T) {
	cause := errors.New("pool closed")
	svc := NewService(failingRepo{err: cause})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, cause)

	_, err = svc.Get(context.Background(), "C20/25")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrConcreteClassNotFound)
}
