package cache

import (
	"context"
	"time"
)

// TTLOverride stores every entry with a fixed TTL, ignoring the TTL passed
// to Set. It lets operators shorten or extend retention without touching
// callers.
type TTLOverride struct {
	Cache
	TTL time.Duration
}

// Set implements Cache.
func (c TTLOverride) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.TTL)
}
