package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/backdrop/pkg/cache"
	"github.com/matzehuels/backdrop/pkg/pattern"
)

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	opts := Options{Seed: 42, Formats: []string{FormatSVG, FormatJSON}}
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.Seed != 42 || first.Scene.Seed != 42 {
		t.Errorf("seed = %d/%d, want 42", first.Seed, first.Scene.Seed)
	}
	if first.CacheInfo.SceneHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss, got %+v", first.CacheInfo)
	}
	if first.Stats.LineCount != pattern.VerticalCount+pattern.HorizontalCount {
		t.Errorf("LineCount = %d", first.Stats.LineCount)
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing")
	}
	if len(first.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact missing")
	}
	// scene + one entry per format
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want 3", c.sets)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !second.CacheInfo.SceneHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit, got %+v", second.CacheInfo)
	}
	if diff := cmp.Diff(first.Scene, second.Scene); diff != "" {
		t.Errorf("cached scene differs (-first +second):\n%s", diff)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	if _, err := r.Execute(ctx, Options{Seed: 1}); err != nil {
		t.Fatal(err)
	}
	gets := c.gets
	res, err := r.Execute(ctx, Options{Seed: 1, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if c.gets != gets {
		t.Errorf("Refresh read the cache %d times", c.gets-gets)
	}
	if res.CacheInfo.SceneHit || res.CacheInfo.RenderHit {
		t.Errorf("Refresh should not report hits, got %+v", res.CacheInfo)
	}
}

func TestRunnerOptionsChangeKey(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)

	if _, err := r.Execute(ctx, Options{Seed: 5, Theme: "light"}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Seed: 5, Theme: "dark"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.SceneHit {
		t.Error("scene should be shared across themes")
	}
	if res.CacheInfo.RenderHit {
		t.Error("a different theme must not reuse the light artifact")
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("#60a5fa")) {
		t.Error("dark artifact not rendered with the dark stroke")
	}
}

func TestRunnerRandomSeed(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{RandomSeed: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Scene.Seed != res.Seed {
		t.Errorf("scene seed %d != result seed %d", res.Scene.Seed, res.Seed)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Formats: []string{"pdf"}})
	if err == nil || !strings.Contains(err.Error(), "invalid options") {
		t.Errorf("Execute() error = %v, want invalid options", err)
	}
}

func TestRunnerLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	r := NewRunner(cache.NewNullCache(), nil, logger)

	if _, err := r.Execute(context.Background(), Options{Seed: 3}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"generated scene", "rendered outputs", "seed=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRender(t *testing.T) {
	scene := pattern.NewScene(11)
	opts := Options{Formats: []string{FormatSVG, FormatPNG, FormatJSON}}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(scene, opts)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(artifacts))
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact has no PNG signature")
	}
	if bytes.Contains(artifacts[FormatSVG], []byte("@keyframes")) {
		t.Error("svg should be static unless Animate is set")
	}
}
