package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errPermanent = errors.New("permanent")

func shortBackoff(t *testing.T) {
	t.Helper()
	prev := backoffBase
	backoffBase = time.Millisecond
	t.Cleanup(func() { backoffBase = prev })
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// SceneKey is deterministic and seed-dependent
	if k.SceneKey(42) != k.SceneKey(42) {
		t.Error("SceneKey should be deterministic")
	}
	if k.SceneKey(42) == k.SceneKey(43) {
		t.Error("Different seeds should produce different scene keys")
	}
	if !strings.HasPrefix(k.SceneKey(1), "scene:") {
		t.Errorf("SceneKey missing prefix: %s", k.SceneKey(1))
	}

	// ArtifactKey should include options in hash
	base := ArtifactKeyOpts{Format: "svg", Theme: "light", Width: 1440, Height: 900, Animate: true}
	variants := []ArtifactKeyOpts{
		{Format: "png", Theme: "light", Width: 1440, Height: 900, Animate: true},
		{Format: "svg", Theme: "dark", Width: 1440, Height: 900, Animate: true},
		{Format: "svg", Theme: "light", Width: 800, Height: 900, Animate: true},
		{Format: "svg", Theme: "light", Width: 1440, Height: 900},
		{Format: "svg", Theme: "light", Width: 1440, Height: 900, Animate: true, Scale: 2},
	}
	ak := k.ArtifactKey(42, base)
	for _, v := range variants {
		if k.ArtifactKey(42, v) == ak {
			t.Errorf("ArtifactKeyOpts %+v should produce a different key", v)
		}
	}
	if k.ArtifactKey(43, base) == ak {
		t.Error("Different seeds should produce different artifact keys")
	}
	if k.SceneKey(42) == ak {
		t.Error("Scene and artifact keys should not collide")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "backdrop:v1:")

	// All keys should be prefixed
	if got, want := scoped.SceneKey(7), "backdrop:v1:"+inner.SceneKey(7); got != want {
		t.Errorf("ScopedKeyer SceneKey = %s, want %s", got, want)
	}

	opts := ArtifactKeyOpts{Format: "json"}
	if got, want := scoped.ArtifactKey(7, opts), "backdrop:v1:"+inner.ArtifactKey(7, opts); got != want {
		t.Errorf("ScopedKeyer ArtifactKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if got, want := scoped.SceneKey(1), "prefix:"+NewDefaultKeyer().SceneKey(1); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "key", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get(key) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "stale", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "stale"); hit {
		t.Error("expired entry should miss")
	}

	// Zero TTL never expires
	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry should hit")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	fc := c.(*FileCache)

	tests := []struct {
		name string
		raw  []byte
	}{
		{"foreign", []byte("{not json")},
		{"truncated", entryMagic},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fc.path(tt.name)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, tt.raw, 0644); err != nil {
				t.Fatal(err)
			}
			if _, hit, err := c.Get(ctx, tt.name); hit || err != nil {
				t.Errorf("corrupt entry: hit %v, err %v; want clean miss", hit, err)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("corrupt entry should be removed")
			}
		})
	}
}

func TestFileCacheBinaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	// PNG signature plus a NUL byte; stored verbatim after the header.
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00}
	if err := c.Set(ctx, "png", data, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	raw, err := os.ReadFile(c.(*FileCache).path("png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != entryHeaderSize+len(data) {
		t.Errorf("entry size = %d, want %d", len(raw), entryHeaderSize+len(data))
	}
	got, hit, err := c.Get(ctx, "png")
	if err != nil || !hit {
		t.Fatalf("Get: hit %v, err %v", hit, err)
	}
	if string(got) != string(data) {
		t.Errorf("Get = %x, want %x", got, data)
	}
}

func TestFileCacheCancelled(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Set(ctx, "k", []byte("v"), 0); err == nil {
		t.Error("Set with cancelled context should fail")
	}
	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("Get with cancelled context should fail")
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	shortBackoff(t)

	// Success on first try
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errPermanent
	})
	if err != errPermanent {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	// Retryable error triggers retries
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
