package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mogiel/konec/internal/platform/retry"
)

// NewClient parses redisURL, installs hooks and pings the server, retrying while it comes up.
func NewClient(ctx context.Context, redisURL string, hooks ...goredis.Hook) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	for _, h := range hooks {
		rdb.AddHook(h)
	}

	err = retry.DoVoid(ctx, retry.Startup("redis"), retry.Transient, func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

// HealthCheck reports whether redis answers a ping.
type HealthCheck struct {
	rdb *goredis.Client
}

func NewHealthCheck(rdb *goredis.Client) *HealthCheck {
	return &HealthCheck{rdb: rdb}
}

func (h *HealthCheck) Name() string { return "redis" }

func (h *HealthCheck) Check(ctx context.Context) error {
	return h.rdb.Ping(ctx).Err()
}
