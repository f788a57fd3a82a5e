package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Remote backends are exercised only when a server is available:
//
//	CASCADE_TEST_REDIS_URL=redis://localhost:6379/0
//	CASCADE_TEST_MONGO_URL=mongodb://localhost:27017

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get(new key) = %v, %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry survived Delete")
	}
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("CASCADE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CASCADE_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), url, "cascade-test:")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache(t *testing.T) {
	url := os.Getenv("CASCADE_TEST_MONGO_URL")
	if url == "" {
		t.Skip("CASCADE_TEST_MONGO_URL not set")
	}
	c, err := NewMongoCache(context.Background(), url, "cascade_test", "cache")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestRedisBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url", ""); err == nil {
		t.Error("expected parse error")
	}
}
