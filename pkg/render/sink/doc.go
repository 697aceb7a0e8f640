// Package sink provides output format renderers for backdrop scenes.
//
// # Overview
//
// A "sink" transforms a generated [pattern.Scene] into a final output
// format. This package provides renderers for:
//
//   - SVG: Two blended layers with CSS drift animation
//   - PNG: Native raster output via fogleman/gg
//   - JSON: Descriptor export for external renderers
//
// # SVG Output
//
// [RenderSVG] produces one group per layer, vertical first, each composited
// with the theme's blend mode. Every element carries pathLength="100" so
// its dash pattern spans the whole primitive regardless of its real length.
// Measured elements wrap the main stroke and its tick marks in a group that
// shares the drift animation.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithTheme(styles.Dark),
//	    sink.WithSize(1440, 900),
//	    sink.WithOffsets(engine.Offsets()),
//	)
//
// # SVG Options
//
//   - [WithTheme]: Color theme ([styles.Light] by default)
//   - [WithSize]: Viewport size in pixels (1440x900 by default)
//   - [WithOffsets]: Freeze the layers at a parallax offset
//   - [WithoutAnimation]: Omit the drift keyframes, for static snapshots
//
// # PNG Output
//
// [RenderPNG] rasterizes the same geometry without an SVG round-trip. Dash
// patterns are rescaled to each primitive's pixel length, which reproduces
// the pathLength normalization. Drift is sampled at a fixed instant set by
// [WithElapsed]. Blend modes are approximated by alpha compositing over the
// theme background.
//
//	png, err := sink.RenderPNG(scene, sink.WithScale(2), sink.WithElapsed(5*time.Second))
//
// # JSON Output
//
// [RenderJSON] exports the scene's descriptors together with the theme and
// size, so another renderer can reproduce the backdrop exactly.
//
// [pattern.Scene]: github.com/matzehuels/backdrop/pkg/pattern.Scene
// [styles.Light]: github.com/matzehuels/backdrop/pkg/render/styles.Light
package sink
