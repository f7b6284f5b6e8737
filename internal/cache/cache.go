// Package cache declares the byte cache used for read-through caching of
// tracked orders. Implementations are best-effort.
package cache

import (
	"context"
	"time"
)

type BytesCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
