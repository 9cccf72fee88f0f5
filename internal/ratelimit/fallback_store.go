package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/mogiel/konec/internal/domain"
)

// FallbackOptions tunes the breaker guarding the primary store.
type FallbackOptions struct {
	// FailureThreshold consecutive failures open the breaker.
	FailureThreshold uint
	// OpenDelay is how long the breaker stays open before probing the primary again.
	OpenDelay time.Duration
	// OnStateChange is called with the breaker's new state.
	OnStateChange func(state circuitbreaker.State)
}

func (o FallbackOptions) withDefaults() FallbackOptions {
	if o.FailureThreshold == 0 {
		o.FailureThreshold = 5
	}
	if o.OpenDelay == 0 {
		o.OpenDelay = 30 * time.Second
	}
	return o
}

// FallbackStore counts in the primary store and answers from the secondary while the
// primary is failing. Counts held by the secondary are local to this instance.
type FallbackStore struct {
	primary   domain.RateLimitStore
	secondary domain.RateLimitStore
	cb        circuitbreaker.CircuitBreaker[any]
}

var _ domain.RateLimitStore = (*FallbackStore)(nil)

func NewFallbackStore(primary, secondary domain.RateLimitStore, opts FallbackOptions) *FallbackStore {
	opts = opts.withDefaults()

	cb := circuitbreaker.Builder[any]().
		WithFailureThreshold(opts.FailureThreshold).
		WithDelay(opts.OpenDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Rate limit store breaker state changed",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			if opts.OnStateChange != nil {
				opts.OnStateChange(e.NewState)
			}
		}).
		Build()

	return &FallbackStore{primary: primary, secondary: secondary, cb: cb}
}

func (s *FallbackStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	if !s.cb.TryAcquirePermit() {
		return s.incrementSecondary(ctx, key, window)
	}

	count, resetAt, err := s.primary.Increment(ctx, key, window)
	if err == nil {
		s.cb.RecordSuccess()
		return count, resetAt, nil
	}

	// The caller giving up says nothing about the primary's health.
	if errors.Is(err, context.Canceled) {
		return 0, time.Time{}, err
	}

	s.cb.RecordError(err)
	slog.WarnContext(ctx, "Primary rate limit store failed, using fallback", "error", err)
	return s.incrementSecondary(ctx, key, window)
}

// Open reports whether the primary is currently bypassed.
func (s *FallbackStore) Open() bool {
	return s.cb.IsOpen()
}

func (s *FallbackStore) incrementSecondary(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	count, resetAt, err := s.secondary.Increment(ctx, key, window)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("fallback rate limit store failed: %w", err)
	}
	return count, resetAt, nil
}
