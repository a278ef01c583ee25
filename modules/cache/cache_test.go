package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const testRedisAddr = "localhost:6379"

// setupTestCache creates a cache instance for testing, skipping when
// no local Redis server is available.
func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "tasktest:" + time.Now().Format("150405.000") + ":"
	c := New(client, prefix, time.Minute)

	t.Cleanup(func() {
		keys, _, err := client.Scan(ctx, 0, prefix+"*", 100).Result()
		if err == nil && len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return c
}

func TestCache_SetGetDelete(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	type payload struct {
		Pending int64 `json:"pending"`
	}

	if err := c.Set(ctx, "stats:owner-1", payload{Pending: 3}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	found, err := c.Get(ctx, "stats:owner-1", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false after Set()")
	}
	if got.Pending != 3 {
		t.Errorf("got pending = %d, want 3", got.Pending)
	}

	if err := c.Delete(ctx, "stats:owner-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	found, err = c.Get(ctx, "stats:owner-1", &got)
	if err != nil {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if found {
		t.Error("Get() found = true after Delete()")
	}
}

func TestCache_MissDoesNotError(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	var dest map[string]int64
	found, err := c.Get(ctx, "never-set", &dest)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true for missing key")
	}

	stats := c.Snapshot()
	if stats.Misses == 0 {
		t.Error("miss not counted in stats")
	}
}
