package sink

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/physics"
	"github.com/matzehuels/backdrop/pkg/render/styles"
)

// quadSamples is the number of chords used to measure a quadratic curve.
const quadSamples = 64

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme   styles.Theme
	width   int
	height  int
	scale   float64
	offsets physics.Offsets
	elapsed time.Duration
}

func WithPNGTheme(t styles.Theme) PNGOption      { return func(r *pngRenderer) { r.theme = t } }
func WithPNGOffsets(o physics.Offsets) PNGOption { return func(r *pngRenderer) { r.offsets = o } }
func WithElapsed(d time.Duration) PNGOption      { return func(r *pngRenderer) { r.elapsed = d } }

// WithPNGSize sets the logical image size in pixels. Non-positive values are
// ignored.
func WithPNGSize(w, h int) PNGOption {
	return func(r *pngRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithScale sets the PNG scale factor (default 1). Non-positive values are
// ignored.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes the scene.
func RenderPNG(s pattern.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: styles.Light, width: DefaultWidth, height: DefaultHeight, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Round(float64(r.width) * r.scale))
	h := int(math.Round(float64(r.height) * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: invalid size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(r.theme.BackgroundRGBA())
	dc.Clear()
	dc.SetLineCap(gg.LineCapButt)

	r.drawLayer(dc, r.offsets.Vertical, s.Vertical)
	r.drawLayer(dc, r.offsets.Horizontal, s.Horizontal)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLayer works in device pixels: gg applies line widths and dash lengths
// after the transform, so the scale is folded into the coordinates instead.
func (r *pngRenderer) drawLayer(dc *gg.Context, offset float64, lines []pattern.Line) {
	for _, l := range lines {
		r.drawLine(dc, offset*r.scale, l)
	}
}

func (r *pngRenderer) drawLine(dc *gg.Context, dy float64, l pattern.Line) {
	c := r.theme.RGBA()
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, l.Opacity)
	dc.SetLineWidth(l.Width * r.scale)

	dx := l.DriftAt(r.elapsed) * r.scale
	for _, seg := range l.Segments() {
		x1, y1 := r.x(seg.X1)+dx, r.y(seg.Y1)+dy
		x2, y2 := r.x(seg.X2)+dx, r.y(seg.Y2)+dy

		var length float64
		if seg.Kind == pattern.QuadTo {
			cx, cy := r.x(seg.CX)+dx, r.y(seg.CY)+dy
			length = quadLength(x1, y1, cx, cy, x2, y2)
			dc.MoveTo(x1, y1)
			dc.QuadraticTo(cx, cy, x2, y2)
		} else {
			length = math.Hypot(x2-x1, y2-y1)
			dc.MoveTo(x1, y1)
			dc.LineTo(x2, y2)
		}
		if length == 0 {
			dc.ClearPath()
			continue
		}
		dc.SetDash(l.Dash.Scaled(length)...)
		dc.Stroke()
	}
}

func (r *pngRenderer) x(pct float64) float64 { return pct / 100 * float64(r.width) * r.scale }
func (r *pngRenderer) y(pct float64) float64 { return pct / 100 * float64(r.height) * r.scale }

// quadLength approximates the arc length of a quadratic Bézier by summing
// chords.
func quadLength(x0, y0, cx, cy, x1, y1 float64) float64 {
	var total float64
	px, py := x0, y0
	for i := 1; i <= quadSamples; i++ {
		t := float64(i) / quadSamples
		u := 1 - t
		x := u*u*x0 + 2*u*t*cx + t*t*x1
		y := u*u*y0 + 2*u*t*cy + t*t*y1
		total += math.Hypot(x-px, y-py)
		px, py = x, y
	}
	return total
}
