package pattern

// Extent bounds, in percent. Lines overshoot the viewport by 10% on each
// end so drift and parallax never expose their tips.
const (
	ExtentStart = -10.0
	ExtentEnd   = 110.0

	tickHalfWidth = 0.5
)

// SegmentKind distinguishes straight and quadratic primitives.
type SegmentKind int

const (
	LineTo SegmentKind = iota
	QuadTo
)

// Segment is a single drawing primitive in percent space. CX and CY are only
// meaningful for QuadTo. Every segment carries the full dash pattern over a
// normalized path length of [PathLength].
type Segment struct {
	Kind   SegmentKind
	X1, Y1 float64
	CX, CY float64
	X2, Y2 float64
}

// Segments maps the line onto its drawing primitives. The first segment is
// always the main stroke; measured lines append one segment per tick.
func (l Line) Segments() []Segment {
	if l.Horizontal {
		return []Segment{{
			Kind: LineTo,
			X1:   ExtentStart, Y1: l.Position,
			X2: ExtentEnd, Y2: l.Position + l.Angle,
		}}
	}

	x, skew := l.Position, l.Skew()
	main := Segment{
		Kind: LineTo,
		X1:   x, Y1: ExtentStart,
		X2: x + skew, Y2: ExtentEnd,
	}

	switch l.Kind {
	case Curved:
		var control float64
		if l.ControlOffset != nil {
			control = *l.ControlOffset
		}
		main.Kind = QuadTo
		main.CX, main.CY = x+control, 50
		return []Segment{main}

	case Measured:
		segs := make([]Segment, 0, 1+len(l.Ticks))
		segs = append(segs, main)
		for _, t := range l.Ticks {
			cx := x + skew*TickProgress(t)
			segs = append(segs, Segment{
				Kind: LineTo,
				X1:   cx - tickHalfWidth, Y1: t,
				X2: cx + tickHalfWidth, Y2: t,
			})
		}
		return segs
	}
	return []Segment{main}
}

// TickProgress returns how far along the main stroke a tick at height t
// sits, as a fraction of the stroke's vertical extent.
func TickProgress(t float64) float64 {
	return (t - ExtentStart) / (ExtentEnd - ExtentStart)
}
