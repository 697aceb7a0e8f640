// Package render turns generated scenes into visual output.
//
// # Overview
//
// Rendering is split into two subpackages:
//
//   - [sink]: Output formats (SVG, PNG, JSON)
//   - [styles]: Color themes (light, dark)
//
// Sinks are pure functions of a [pattern.Scene] plus functional options:
//
//	svg := sink.RenderSVG(scene, sink.WithTheme(styles.Dark))
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//	data, err := sink.RenderJSON(scene)
//
// # Layers
//
// Every sink draws the vertical and horizontal lines as two layers. A layer
// can be translated along Y by a [physics.Offsets] value, which is how a
// single frame of the scroll parallax is captured. SVG output can also carry
// the drift animation as CSS keyframes; PNG output instead evaluates the
// drift at a fixed elapsed time.
//
// # Blend Modes
//
// The light theme multiplies strokes onto the page and the dark theme
// screens them. SVG expresses this with mix-blend-mode; PNG approximates it
// with plain alpha compositing.
//
// [pattern.Scene]: github.com/matzehuels/backdrop/pkg/pattern.Scene
// [physics.Offsets]: github.com/matzehuels/backdrop/pkg/physics.Offsets
package render
