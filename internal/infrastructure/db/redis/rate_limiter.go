package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript opens a new window when none exists or when strictly
// more than the window length has elapsed since it started; otherwise it
// increments the count. It returns the count after this call.
//
// KEYS[1] = window hash, ARGV[1] = now (ms), ARGV[2] = window (ms)
var fixedWindowScript = redis.NewScript(`
local start = redis.call('HGET', KEYS[1], 'start')
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
if (not start) or (now - tonumber(start) > window) then
  redis.call('HSET', KEYS[1], 'start', now, 'count', 1)
  redis.call('PEXPIRE', KEYS[1], window * 2)
  return 1
end
return redis.call('HINCRBY', KEYS[1], 'count', 1)
`)

// RateLimiter is the Redis-backed fixed-window limiter. Each call is a
// single atomic script execution, so replicas sharing a Redis see one
// window per (store, user).
// Key format: ratelimit:<store_id>:<user_id>
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, window time.Duration, max int, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{client: client, window: window, max: max, now: now}
}

func (l *RateLimiter) Allow(ctx context.Context, storeID, userID string) (bool, error) {
	count, err := fixedWindowScript.Run(ctx, l.client,
		[]string{l.key(storeID, userID)},
		l.now().UnixMilli(), l.window.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return count <= l.max, nil
}

func (l *RateLimiter) key(storeID, userID string) string {
	return fmt.Sprintf("ratelimit:%s:%s", storeID, userID)
}
