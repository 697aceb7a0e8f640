// Package pattern generates the decorative line descriptors behind a backdrop.
//
// # Overview
//
// A backdrop is a set of faint architectural lines drawn across the page. Each
// line is "hand-broken": instead of a continuous stroke it is a sequence of
// drawn and hidden runs along its length. This package produces those lines:
//
//   - [GenerateDash]: a single draw/gap sequence normalized to a path length of 100
//   - [Generator]: the vertical (12) and horizontal (8) element sets
//   - [Scene]: an immutable pairing of both sets with the seed that produced them
//
// # Reproducible Randomness
//
// All randomness flows through a [Source]. Seeded sources make scenes
// reproducible, which is what lets the pipeline cache rendered artifacts:
//
//	scene := pattern.NewScene(42) // same seed = same lines
//
// Tests inject a [Sequence] to pin exact output. The order in which values are
// drawn from the source is part of the contract: a fixed sequence must yield
// the same dash pattern everywhere.
//
// # Dash Patterns
//
// A [DashPattern] alternates draw and gap lengths, always starting with a draw.
// When a line starts hidden the first value is 0. Consecutive runs never share
// visibility, so the pattern reads as strict alternation.
//
// # Geometry
//
// [Line.Segments] maps a descriptor to percent-space drawing primitives. The
// renderers in [sink] turn those into SVG or raster output.
//
// [sink]: github.com/matzehuels/backdrop/pkg/render/sink
package pattern
