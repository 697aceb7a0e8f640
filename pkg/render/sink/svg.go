package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/physics"
	"github.com/matzehuels/backdrop/pkg/render/styles"
)

// Default viewport size in pixels.
const (
	DefaultWidth  = 1440
	DefaultHeight = 900
)

const driftCSS = `
    @keyframes drift {
      0% { transform: translateX(0); }
      50% { transform: translateX(var(--drift-offset)); }
      100% { transform: translateX(0); }
    }`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme   styles.Theme
	width   float64
	height  float64
	offsets *physics.Offsets
	animate bool
}

func WithTheme(t styles.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }
func WithoutAnimation() SVGOption         { return func(r *svgRenderer) { r.animate = false } }

// WithSize sets the viewport size in pixels. Non-positive values are ignored.
func WithSize(w, h int) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = float64(w), float64(h)
		}
	}
}

// WithOffsets translates each layer by its parallax offset.
func WithOffsets(o physics.Offsets) SVGOption {
	return func(r *svgRenderer) { r.offsets = &o }
}

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s pattern.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" data-seed="%d">`+"\n",
		r.width, r.height, r.width, r.height, s.Seed)

	r.renderStyle(&buf)
	fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", r.theme.Background)

	var v, h float64
	if r.offsets != nil {
		v, h = r.offsets.Vertical, r.offsets.Horizontal
	}
	r.renderLayer(&buf, "vertical", v, s.Vertical)
	r.renderLayer(&buf, "horizontal", h, s.Horizontal)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		theme:   styles.Light,
		width:   DefaultWidth,
		height:  DefaultHeight,
		animate: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderStyle(buf *bytes.Buffer) {
	buf.WriteString("  <style>")
	if r.animate {
		buf.WriteString(driftCSS)
	}
	fmt.Fprintf(buf, "\n    .layer { mix-blend-mode: %s; }\n  </style>\n", r.theme.Blend)
}

func (r *svgRenderer) renderLayer(buf *bytes.Buffer, name string, offset float64, lines []pattern.Line) {
	fmt.Fprintf(buf, `  <g class="layer layer-%s"`, name)
	if r.offsets != nil {
		fmt.Fprintf(buf, ` transform="translate(0 %.3f)"`, offset)
	}
	buf.WriteString(">\n")
	for _, l := range lines {
		r.renderLine(buf, l)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderLine(buf *bytes.Buffer, l pattern.Line) {
	segs := l.Segments()
	dash := l.Dash.String()

	if l.Kind == pattern.Measured {
		fmt.Fprintf(buf, `    <g id="line-%d" class="element %s" stroke="%s" stroke-width="%.3f" stroke-opacity="%.3f"%s>`+"\n",
			l.ID, l.Kind, r.theme.Stroke, l.Width, l.Opacity, r.driftStyle(l))
		for _, seg := range segs {
			buf.WriteString("      ")
			r.renderSegment(buf, seg, dash)
			buf.WriteString("/>\n")
		}
		buf.WriteString("    </g>\n")
		return
	}

	buf.WriteString("    ")
	r.renderSegment(buf, segs[0], dash)
	fmt.Fprintf(buf, ` id="line-%d" class="element %s" stroke="%s" stroke-width="%.3f" stroke-opacity="%.3f"%s/>`+"\n",
		l.ID, l.Kind, r.theme.Stroke, l.Width, l.Opacity, r.driftStyle(l))
}

// renderSegment writes an unterminated element so callers can append
// attributes.
func (r *svgRenderer) renderSegment(buf *bytes.Buffer, seg pattern.Segment, dash string) {
	switch seg.Kind {
	case pattern.QuadTo:
		fmt.Fprintf(buf, `<path d="M %.2f %.2f Q %.2f %.2f %.2f %.2f" fill="none"`,
			r.x(seg.X1), r.y(seg.Y1), r.x(seg.CX), r.y(seg.CY), r.x(seg.X2), r.y(seg.Y2))
	default:
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"`,
			r.x(seg.X1), r.y(seg.Y1), r.x(seg.X2), r.y(seg.Y2))
	}
	fmt.Fprintf(buf, ` pathLength="%g" stroke-dasharray="%s"`, pattern.PathLength, dash)
}

func (r *svgRenderer) driftStyle(l pattern.Line) string {
	if !r.animate {
		return ""
	}
	return fmt.Sprintf(` style="--drift-offset: %.3fpx; animation: drift %.3fs ease-in-out infinite"`,
		l.DriftOffset, l.DriftDuration)
}

func (r *svgRenderer) x(pct float64) float64 { return pct / 100 * r.width }
func (r *svgRenderer) y(pct float64) float64 { return pct / 100 * r.height }
