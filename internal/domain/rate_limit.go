package domain

import (
	"context"
	"time"
)

// RateLimitStore counts hits per client key inside fixed windows.
//
// Increment records one hit for key and returns the hit count of the window the hit
// fell into together with the instant that window ends. A key's first hit opens a
// window of the given length; once it ends the next hit opens a fresh one.
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}
