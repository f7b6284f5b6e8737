package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts hits per subject. Every hit pushes the window end forward,
// so a subject stays throttled until it has been quiet for a whole window.
type RateLimiter struct {
	c      *redis.Client
	prefix string
}

func NewRateLimiter(c *redis.Client, prefix string) *RateLimiter {
	return &RateLimiter{c: c, prefix: prefix}
}

func (rl *RateLimiter) key(subject string) string {
	return fmt.Sprintf("%s:%s", rl.prefix, subject)
}

// Allow counts a hit for subject and reports whether it is within limit.
// Returns (allowed, currentCount).
func (rl *RateLimiter) Allow(ctx context.Context, subject string, limit int64, window time.Duration) (bool, int64, error) {
	key := rl.key(subject)
	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, errors.Wrap(err, "redis ratelimit")
	}
	n := incr.Val()
	return n <= limit, n, nil
}
