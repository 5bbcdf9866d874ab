//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Run with: PANGRAPH_REDIS_ADDR=localhost:6379 go test -tags integration ./pkg/cache
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("PANGRAPH_REDIS_ADDR")
	if addr == "" {
		t.Skip("PANGRAPH_REDIS_ADDR not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr, "pangraph-test:")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("after Delete: hit=%v err=%v", hit, err)
	}
}
