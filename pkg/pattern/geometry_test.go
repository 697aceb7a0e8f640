package pattern

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLine_Segments(t *testing.T) {
	control := 20.0
	tests := []struct {
		name string
		line Line
		want []Segment
	}{
		{
			name: "straight vertical",
			line: Line{Kind: Straight, Position: 40, Angle: 2},
			want: []Segment{{Kind: LineTo, X1: 40, Y1: -10, X2: 43, Y2: 110}},
		},
		{
			name: "curved",
			line: Line{Kind: Curved, Position: 40, Angle: -2, ControlOffset: &control},
			want: []Segment{{Kind: QuadTo, X1: 40, Y1: -10, CX: 60, CY: 50, X2: 37, Y2: 110}},
		},
		{
			name: "measured",
			line: Line{Kind: Measured, Position: 10, Angle: 2, Ticks: []float64{20, 50}},
			want: []Segment{
				{Kind: LineTo, X1: 10, Y1: -10, X2: 13, Y2: 110},
				{Kind: LineTo, X1: 10.25, Y1: 20, X2: 11.25, Y2: 20},
				{Kind: LineTo, X1: 11, Y1: 50, X2: 12, Y2: 50},
			},
		},
		{
			name: "horizontal",
			line: Line{Kind: Straight, Horizontal: true, Position: 30, Angle: 0.5},
			want: []Segment{{Kind: LineTo, X1: -10, Y1: 30, X2: 110, Y2: 30.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.line.Segments()
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTickProgress(t *testing.T) {
	if got := TickProgress(-10); got != 0 {
		t.Errorf("TickProgress(-10) = %v, want 0", got)
	}
	if got := TickProgress(110); got != 1 {
		t.Errorf("TickProgress(110) = %v, want 1", got)
	}
	if got := TickProgress(50); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("TickProgress(50) = %v, want 0.5", got)
	}
}

func TestLine_DriftAt(t *testing.T) {
	l := Line{DriftOffset: 12, DriftDuration: 40}
	if got := l.DriftAt(0); got != 0 {
		t.Errorf("DriftAt(0) = %v, want 0", got)
	}
}
