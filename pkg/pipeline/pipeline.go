// Package pipeline provides the generate → render pipeline for backdrop.
//
// This package implements the complete pipeline that the CLI and the HTTP
// server share. By centralizing this logic, both entry points produce
// byte-identical artifacts for the same options and share one cache layout.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Draw a [pattern.Scene] from the seed
//  2. Render: Produce output in the requested formats (SVG, PNG, JSON)
//
// Both stages are cached. Scenes are keyed by seed alone; artifacts are keyed
// by seed and every render option that changes their bytes.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Seed:    42,
//	    Theme:   "dark",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	scene, hit, err := runner.GenerateWithCacheInfo(ctx, opts)
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, scene, opts)
//
// [pattern.Scene]: github.com/matzehuels/backdrop/pkg/pattern.Scene
package pipeline

import (
	"io"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/backdrop/pkg/cache"
	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/render/sink"
	"github.com/matzehuels/backdrop/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultTheme is the default color theme.
	DefaultTheme = styles.NameLight

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Seed       uint64 `json:"seed"`
	RandomSeed bool   `json:"random_seed,omitempty"` // Replace Seed with a fresh random seed
	Refresh    bool   `json:"refresh,omitempty"`     // Skip cache reads

	// Render options
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Theme   string   `json:"theme,omitempty"`
	Formats []string `json:"formats,omitempty"`
	Animate bool     `json:"animate,omitempty"` // Emit CSS drift animation in SVG
	Scale   float64  `json:"scale,omitempty"`   // PNG scale factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed is the seed the scene was generated from. It differs from the
	// requested seed only when Options.RandomSeed was set.
	Seed uint64

	// Scene is the generated scene.
	Scene pattern.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LineCount    int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme exists.
func ValidateTheme(theme string) error {
	_, err := styles.Lookup(theme)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetGenerateDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults resolves a random seed and sets the logger default.
func (o *Options) SetGenerateDefaults() {
	if o.RandomSeed {
		o.Seed = rand.Uint64()
		o.RandomSeed = false
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if math.IsNaN(o.Scale) || o.Scale < 0 || o.Scale > 4 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 4], got %v", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := ValidateCanvas(o.Width, o.Height, o.Scale); err != nil {
			return err
		}
	}
	return ValidateTheme(o.Theme)
}

// MaxDevicePixels bounds the raster a PNG render allocates (64 MP, 256 MiB
// of RGBA).
const MaxDevicePixels = 64 << 20

// ValidateCanvas checks that a width x height render at scale stays within
// [MaxDevicePixels].
func ValidateCanvas(width, height int, scale float64) error {
	if px := float64(width) * scale * float64(height) * scale; px > MaxDevicePixels {
		return errors.New(errors.ErrCodeInvalidInput,
			"canvas %dx%d at scale %v is %.0f device pixels (max %d)", width, height, scale, px, MaxDevicePixels)
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.Theme,
		Width:  o.Width,
		Height: o.Height,
	}
	switch format {
	case FormatSVG:
		opts.Animate = o.Animate
	case FormatPNG:
		opts.Scale = o.Scale
	}
	return opts
}
