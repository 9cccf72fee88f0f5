// Package ratelimit enforces a fixed-window request budget per client.
//
// A client's first request opens a window; every request inside it, rejected ones
// included, counts against the budget. Counting is delegated to a domain.RateLimitStore
// so the window can live in process memory or in Redis shared by all instances.
package ratelimit
