package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mogiel/konec/internal/domain"
)

// Result describes the client's budget after the current request was counted.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type Limiter struct {
	store  domain.RateLimitStore
	clock  clockwork.Clock
	max    int
	window time.Duration
}

func New(store domain.RateLimitStore, clock clockwork.Clock, limit int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("rate limiter needs a store")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit max must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	return &Limiter{store: store, clock: clock, max: limit, window: window}, nil
}

func (l *Limiter) Max() int { return l.max }

func (l *Limiter) Window() time.Duration { return l.window }

// Take counts one request for identifier. The request is allowed while the window's
// count stays within max, so request number max is the last one to pass.
func (l *Limiter) Take(ctx context.Context, identifier string) (Result, error) {
	count, resetAt, err := l.store.Increment(ctx, identifier, l.window)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit increment failed: %w", err)
	}

	res := Result{
		Allowed:   count <= l.max,
		Limit:     l.max,
		Remaining: max(0, l.max-count),
		ResetAt:   resetAt,
	}
	if !res.Allowed {
		res.RetryAfter = max(0, resetAt.Sub(l.clock.Now()))
	}
	return res, nil
}
