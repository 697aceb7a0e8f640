package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/backdrop/pkg/cache"
	"github.com/matzehuels/backdrop/pkg/observability"
	"github.com/matzehuels/backdrop/pkg/pattern"
)

// Cache key types reported to observability hooks.
const (
	keyTypeScene    = "scene"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Entry lifetimes; NewRunner sets them to cache.TTLScene and
	// cache.TTLArtifact.
	SceneTTL    time.Duration
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		SceneTTL:    cache.TTLScene,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Seed: opts.Seed}

	// Stage 1: Generate
	genStart := time.Now()
	scene, sceneHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Scene = scene
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.LineCount = len(scene.Vertical) + len(scene.Horizontal)
	result.CacheInfo.SceneHit = sceneHit

	opts.Logger.Info("generated scene",
		"seed", opts.Seed,
		"lines", result.Stats.LineCount,
		"cached", sceneHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo returns the scene for opts.Seed, from cache when
// possible, and reports whether it was a cache hit.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (pattern.Scene, bool, error) {
	r.applyLogger(&opts)
	opts.SetGenerateDefaults()
	hooks := observability.Cache()

	cacheKey := r.Keyer.SceneKey(opts.Seed)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached pattern.Scene
			if err := json.Unmarshal(data, &cached); err == nil && cached.Seed == opts.Seed {
				hooks.OnCacheHit(ctx, keyTypeScene)
				return cached, true, nil
			}
			// If deserialization fails, fall through to regenerate
		} else if err != nil {
			opts.Logger.Warn("scene cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, keyTypeScene)
	}

	start := time.Now()
	scene := pattern.NewScene(opts.Seed)
	observability.Pipeline().OnGenerate(ctx, opts.Seed, len(scene.Vertical)+len(scene.Horizontal), time.Since(start))

	if data, err := json.Marshal(scene); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.SceneTTL); err != nil {
			opts.Logger.Warn("scene cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeScene, len(data))
		}
	}

	return scene, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (pattern.Scene, error) {
	s, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return s, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s pattern.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(s.Seed, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil // All artifacts from cache
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	// Render all formats
	pipeHooks := observability.Pipeline()
	pipeHooks.OnRenderStart(ctx, s.Seed, opts.Formats)
	start := time.Now()
	rendered, err := Render(s, opts)
	pipeHooks.OnRenderComplete(ctx, s.Seed, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(s.Seed, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ArtifactTTL); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", format, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s pattern.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
