package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*CategoryCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCategoryCache(client), srv
}

func TestCategoryCache_MissThenHit(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss on an empty cache")
	}

	want := []string{"gadgets", "tools"}
	if err := cache.Set(ctx, want); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit after Set")
	}
	if len(got) != 2 || got[0] != "gadgets" || got[1] != "tools" {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestCategoryCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, []string{"tools"}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate returned error: %v", err)
	}

	_, ok, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss after invalidation")
	}
}

func TestCategoryCache_CorruptEntryIsMiss(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	if err := srv.Set("catalog:categories", "not-json"); err != nil {
		t.Fatalf("seed corrupt entry: %v", err)
	}

	_, ok, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("corrupt entry must read as a miss")
	}
}

func TestCategoryCache_EntryExpires(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, []string{"tools"}); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	srv.FastForward(categoriesTTL + 1)

	_, ok, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss after TTL expiry")
	}
}
