package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory redisClient.
type fakeRedis struct {
	data      map[string]string
	ttls      map[string]time.Duration
	pingFails int
	pings     int
	err       error
	closed    bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	f.pings++
	if f.pings <= f.pingFails {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c, err := newRedisCache(ctx, fake, "bd:")
	if err != nil {
		t.Fatalf("newRedisCache error: %v", err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("png"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if fake.data["bd:k"] != "png" {
		t.Errorf("stored under %v, want prefixed key", fake.data)
	}
	if fake.ttls["bd:k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttls["bd:k"])
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "png" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close() = %v, closed %v", err, fake.closed)
	}
}

func TestRedisCacheErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c, err := newRedisCache(ctx, fake, "")
	if err != nil {
		t.Fatalf("newRedisCache error: %v", err)
	}

	fake.err = errors.New("broken pipe")
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("Get should surface backend errors")
	}
	if err := c.Set(ctx, "k", []byte("x"), 0); err == nil {
		t.Error("Set should surface backend errors")
	}
}

func TestNewRedisCachePingRetry(t *testing.T) {
	shortBackoff(t)
	ctx := context.Background()

	fake := newFakeRedis()
	fake.pingFails = 2
	if _, err := newRedisCache(ctx, fake, ""); err != nil {
		t.Fatalf("should connect after retries: %v", err)
	}
	if fake.pings != 3 {
		t.Errorf("pings = %d, want 3", fake.pings)
	}

	fake = newFakeRedis()
	fake.pingFails = 10
	_, err := newRedisCache(ctx, fake, "")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
	if fake.pings != 3 {
		t.Errorf("pings = %d, want 3 attempts", fake.pings)
	}
}
