package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// incrementScript counts one hit and starts the window on the first one. A key whose TTL
// went missing gets the window again so it can never live forever.
// ARGV: [1]=window_ms
// Returns {count, pttl_ms}.
var incrementScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if count == 1 or ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RateLimitStore keeps fixed-window counters in redis so several instances share one budget.
type RateLimitStore struct {
	rdb *goredis.Client
	now func() time.Time
}

func NewRateLimitStore(rdb *goredis.Client) *RateLimitStore {
	return &RateLimitStore{rdb: rdb, now: time.Now}
}

func (s *RateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrementScript.Run(ctx, s.rdb, []string{rateLimitKey(key)},
		strconv.FormatInt(window.Milliseconds(), 10),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script returned %d values", len(res))
	}

	resetAt := s.now().Add(time.Duration(res[1]) * time.Millisecond)
	return int(res[0]), resetAt, nil
}

func rateLimitKey(identifier string) string {
	return rateLimitKeyPrefix + identifier
}
