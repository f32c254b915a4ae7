package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, opts ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, opts...), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "is_authenticated", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := store.Get(ctx, "is_authenticated")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get reported key as missing")
	}
	if v != "true" {
		t.Errorf("Get = %q, want %q", v, "true")
	}
}

func TestRedisStoreMissingKey(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, ok, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get reported a missing key as present")
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "access_token", "AT1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(ctx, "access_token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, _ := store.Get(ctx, "access_token")
	if ok {
		t.Error("key still present after Delete")
	}
}

func TestRedisStoreKeyPrefix(t *testing.T) {
	store, mr := newTestRedisStore(t, WithKeyPrefix("shell:v1:"))
	ctx := context.Background()

	if got := store.Prefix(); got != "shell:v1:" {
		t.Fatalf("Prefix = %q, want %q", got, "shell:v1:")
	}

	if err := store.Set(ctx, "access_token", "AT1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !mr.Exists("shell:v1:access_token") {
		t.Error("prefixed key not found in redis")
	}
}

func TestRedisStoreClosed(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := store.Set(ctx, "k", "v"); err == nil {
		t.Error("Set on closed store did not fail")
	}
}
