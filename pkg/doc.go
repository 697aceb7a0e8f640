// Package pkg provides the core libraries for backdrop.
//
// # Overview
//
// Backdrop generates the decorative line pattern behind an art-gallery site
// and simulates the scroll parallax that moves it. The pkg directory is
// organized into these areas:
//
//  1. [pattern] - Seeded line descriptors and hand-broken dash patterns
//  2. [physics] - Spring-damper parallax engine, frame loop and drift easing
//  3. [glyph] - Deterministic per-character scales for headline text
//  4. [render] - SVG, PNG and JSON sinks plus color themes
//  5. [pipeline] - Orchestration (generate → render) with caching
//  6. [cache], [config], [errors], [observability] - Infrastructure
//  7. [server] - HTTP API
//
// # Architecture
//
// The typical data flow through backdrop:
//
//	Seed
//	  ↓
//	[pattern] package (scene: 12 vertical + 8 horizontal lines)
//	  ↓
//	[render/sink] package (SVG/PNG/JSON, optionally at a parallax frame)
//	  ↓
//	[cache] package (scene and artifact entries)
//
// Independently, [physics] turns a stream of scroll positions into layer
// offsets, one frame at a time.
//
// # Quick Start
//
//	scene := pattern.NewScene(42)
//	svg := sink.RenderSVG(scene, sink.WithTheme(styles.Dark))
//
//	engine := physics.NewEngine(0)
//	offsets := engine.Tick(120) // page is now scrolled to 120px
//
// [pattern]: github.com/matzehuels/backdrop/pkg/pattern
// [physics]: github.com/matzehuels/backdrop/pkg/physics
// [glyph]: github.com/matzehuels/backdrop/pkg/glyph
// [render]: github.com/matzehuels/backdrop/pkg/render
// [pipeline]: github.com/matzehuels/backdrop/pkg/pipeline
// [cache]: github.com/matzehuels/backdrop/pkg/cache
// [config]: github.com/matzehuels/backdrop/pkg/config
// [errors]: github.com/matzehuels/backdrop/pkg/errors
// [observability]: github.com/matzehuels/backdrop/pkg/observability
// [server]: github.com/matzehuels/backdrop/pkg/server
package pkg
