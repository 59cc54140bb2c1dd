package cache

import (
	"context"
	"time"

	"github.com/golang/snappy"
)

// Compressed wraps a Cache with snappy block compression. Layout JSON is
// highly repetitive, so this shrinks remote entries considerably.
type Compressed struct {
	inner Cache
}

// NewCompressed wraps inner.
func NewCompressed(inner Cache) *Compressed {
	return &Compressed{inner: inner}
}

// Get retrieves and decompresses a value. Entries that fail to decode are
// deleted and reported as misses.
func (c *Compressed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, hit, err := c.inner.Get(ctx, key)
	if err != nil || !hit {
		return nil, false, err
	}
	data, err := snappy.Decode(nil, raw)
	if err != nil {
		_ = c.inner.Delete(ctx, key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set compresses and stores a value.
func (c *Compressed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, key, snappy.Encode(nil, data), ttl)
}

// Delete removes a value.
func (c *Compressed) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the wrapped cache.
func (c *Compressed) Close() error {
	return c.inner.Close()
}

var _ Cache = (*Compressed)(nil)
