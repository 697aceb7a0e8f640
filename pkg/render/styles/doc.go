// Package styles defines the color themes backdrops are rendered in.
//
// A [Theme] fixes the stroke color, the page background behind the layers
// and the CSS blend mode each layer composites with. Two themes exist:
//
//   - [Light]: neutral-900 strokes multiplied over a white page
//   - [Dark]: blue-400 strokes screened over a near-black page
//
// Sinks resolve themes by name with [Lookup]:
//
//	theme, err := styles.Lookup("dark")
//	svg := sink.RenderSVG(scene, sink.WithTheme(theme))
package styles
