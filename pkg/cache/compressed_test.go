package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestCompressed(t *testing.T) {
	ctx := context.Background()
	inner := newFakeRedis()
	c := NewCompressed(&RedisCache{client: inner})

	payload := []byte(strings.Repeat(`{"positions":{"a":[0.1,0.2]}}`, 50))
	if err := c.Set(ctx, "k", payload, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if stored := inner.data["k"]; len(stored) >= len(payload) {
		t.Errorf("stored %d bytes, want fewer than %d", len(stored), len(payload))
	}

	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("Get returned different bytes than Set")
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) should miss")
	}
}

func TestCompressedCorruptEntry(t *testing.T) {
	ctx := context.Background()
	inner := newFakeRedis()
	inner.data["k"] = []byte{0xff, 0xff, 0xff, 0xff, 0xff}
	c := NewCompressed(&RedisCache{client: inner})

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v, want miss", hit, err)
	}
	if _, ok := inner.data["k"]; ok {
		t.Error("corrupt entry should be deleted")
	}
}
