// Package config loads backdrop settings from a TOML file.
//
// Every field has a default, so a file only needs the values it changes:
//
//	[render]
//	theme = "dark"
//
//	[physics.vertical]
//	friction = 0.9
//
// Load decodes on top of [Default], which keeps unset keys (including
// individual tuning constants) at their defaults.
package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/physics"
	"github.com/matzehuels/backdrop/pkg/pipeline"
)

// EnvPath names the environment variable consulted when no --config flag
// is given.
const EnvPath = "BACKDROP_CONFIG"

// Config is the root of the configuration file.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Physics PhysicsConfig `toml:"physics"`
	Server  ServerConfig  `toml:"server"`
}

// RenderConfig holds pipeline defaults for generate and render.
type RenderConfig struct {
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Theme   string   `toml:"theme"`
	Formats []string `toml:"formats"`
	Animate bool     `toml:"animate"`
	Scale   float64  `toml:"scale"`
}

// PhysicsConfig holds the per-axis tuning and the frame rate.
type PhysicsConfig struct {
	FrameRate  int            `toml:"frame_rate"`
	Vertical   physics.Tuning `toml:"vertical"`
	Horizontal physics.Tuning `toml:"horizontal"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string        `toml:"addr"`
	RedisAddr      string        `toml:"redis_addr"` // empty means file cache
	CacheTTL       time.Duration `toml:"cache_ttl"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Theme:   pipeline.DefaultTheme,
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Physics: PhysicsConfig{
			FrameRate:  physics.DefaultFrameRate,
			Vertical:   physics.Snappy,
			Horizontal: physics.Floaty,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			CacheTTL:       24 * time.Hour,
			RequestTimeout: 30 * time.Second,
		},
	}
}

// Path resolves the config file location: flag wins over $BACKDROP_CONFIG.
// An empty result means no file.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(EnvPath)
}

// Load reads the file at path on top of the defaults and validates the
// result. An empty path returns [Default].
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "stat %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks that every section is usable.
func (c Config) Validate() error {
	r := c.Render
	if err := errors.ValidateSize(r.Width, r.Height); err != nil {
		return err
	}
	if err := pipeline.ValidateTheme(r.Theme); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(r.Formats); err != nil {
		return err
	}
	if !(r.Scale > 0 && r.Scale <= 4) {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale must be in (0, 4], got %v", r.Scale)
	}
	if slices.Contains(r.Formats, pipeline.FormatPNG) {
		if err := pipeline.ValidateCanvas(r.Width, r.Height, r.Scale); err != nil {
			return err
		}
	}

	if fps := c.Physics.FrameRate; fps <= 0 || fps > physics.MaxFrameRate {
		return errors.New(errors.ErrCodeInvalidConfig, "physics.frame_rate must be in [1, %d], got %d", physics.MaxFrameRate, fps)
	}
	if err := c.Physics.Vertical.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTuning, err, "physics.vertical")
	}
	if err := c.Physics.Horizontal.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTuning, err, "physics.horizontal")
	}

	if c.Server.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.cache_ttl must not be negative")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.request_timeout must be positive")
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the render section.
// The caller still sets the seed.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Render.Width,
		Height:  c.Render.Height,
		Theme:   c.Render.Theme,
		Formats: append([]string(nil), c.Render.Formats...),
		Animate: c.Render.Animate,
		Scale:   c.Render.Scale,
	}
}
