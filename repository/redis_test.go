package repository

import (
	"context"
	"os"
	"testing"
	"time"
)

// getTestRedis returns a cache connected to REDIS_ADDR, skipping otherwise
func getTestRedis(t *testing.T) *RedisCache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping integration test")
	}

	cache := NewRedisCache(RedisConfig{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.Health(ctx); err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestRedisKey(t *testing.T) {
	got := redisKey("AAPL", "news:10")
	want := "chat-analyzer:provider:AAPL:news:10"
	if got != want {
		t.Errorf("redisKey() = %v, want %v", got, want)
	}
}

func TestRedisCache_Name(t *testing.T) {
	cache := NewRedisCache(RedisConfig{Addr: "localhost:6379"})
	defer cache.Close()
	if cache.Name() != "redis" {
		t.Errorf("Name() = %v, want redis", cache.Name())
	}
}

func TestRedisCache_SetGet(t *testing.T) {
	cache := getTestRedis(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "TEST001", "fundamentals", []byte(`{"pe_ratio":"21.4"}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := cache.Get(ctx, "TEST001", "fundamentals")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"pe_ratio":"21.4"}` {
		t.Errorf("Get = %s", data)
	}

}

func TestRedisCache_Expiration(t *testing.T) {
	cache := getTestRedis(t)
	ctx := context.Background()

	cache.Set(ctx, "TEST002", "news:10", []byte(`[]`), 50*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	data, err := cache.Get(ctx, "TEST002", "news:10")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if data != nil {
		t.Error("expected nil for expired entry")
	}
}
