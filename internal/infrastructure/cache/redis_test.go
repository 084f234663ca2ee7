package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCache(rdb, zerolog.Nop()), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "session:1", []byte(`{"role":"customer"}`), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(ctx, "session:1")
	if !ok || string(got) != `{"role":"customer"}` {
		t.Fatalf("get = %q, %v", got, ok)
	}
}

func TestRedisCache_MissReportedNotErrored(t *testing.T) {
	c, _ := newTestRedisCache(t)
	if _, ok := c.Get(context.Background(), "absent"); ok {
		t.Fatal("expected miss")
	}
}

func TestRedisCache_TTLApplied(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	mr.FastForward(61 * time.Second)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected expiry after ttl")
	}
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), time.Hour)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestRedisCache_BackendDownDegradesQuietly(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()
	mr.Close()

	// Get becomes a miss, Set and Delete return errors — nothing panics.
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("get against a dead backend must miss")
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err == nil {
		t.Fatal("set against a dead backend must error")
	}
	if err := c.Delete(ctx, "k"); err == nil {
		t.Fatal("delete against a dead backend must error")
	}
}
