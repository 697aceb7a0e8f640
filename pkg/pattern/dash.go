package pattern

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// PathLength is the normalized length every dash pattern spans.
const PathLength = 100.0

const (
	minCuts = 3
	maxCuts = 6
)

// DashPattern holds alternating draw/gap lengths, starting with a draw.
type DashPattern []float64

// Block is one run of uniform visibility along a path.
type Block struct {
	Length  float64
	Visible bool
}

// GenerateDash produces a hand-broken dash pattern from src.
//
// Values are drawn in a fixed order: the cut count, the cut points, the
// visibility of the first segment, then the visibility of each following
// segment. Adjacent segments with matching visibility are merged, so the
// result strictly alternates. A pattern that starts hidden begins with a
// zero-length draw.
func GenerateDash(src Source) DashPattern {
	cuts := minCuts + int(math.Floor(src.Float64()*(maxCuts-minCuts+1)))

	points := make([]float64, 0, cuts+2)
	points = append(points, 0)
	for range cuts {
		points = append(points, src.Float64()*PathLength)
	}
	points = append(points, PathLength)
	slices.Sort(points)

	segments := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		if l := points[i] - points[i-1]; l > 0 {
			segments = append(segments, l)
		}
	}

	visible := src.Float64() > 0.5
	blocks := []Block{{Length: segments[0], Visible: visible}}
	for _, l := range segments[1:] {
		v := src.Float64() > 0.5
		if v == visible {
			blocks[len(blocks)-1].Length += l
			continue
		}
		blocks = append(blocks, Block{Length: l, Visible: v})
		visible = v
	}

	return fromBlocks(blocks)
}

func fromBlocks(blocks []Block) DashPattern {
	d := make(DashPattern, 0, len(blocks)+1)
	if !blocks[0].Visible {
		d = append(d, 0)
	}
	for _, b := range blocks {
		d = append(d, b.Length)
	}
	return d
}

// Sum returns the total length covered by the pattern.
func (d DashPattern) Sum() float64 {
	var total float64
	for _, v := range d {
		total += v
	}
	return total
}

// Visible returns the total drawn length.
func (d DashPattern) Visible() float64 {
	var total float64
	for i := 0; i < len(d); i += 2 {
		total += d[i]
	}
	return total
}

// Blocks returns the semantic visibility runs of the pattern. Zero-length
// entries are skipped, so a pattern that starts hidden yields a hidden
// block first.
func (d DashPattern) Blocks() []Block {
	blocks := make([]Block, 0, len(d))
	for i, v := range d {
		if v == 0 {
			continue
		}
		blocks = append(blocks, Block{Length: v, Visible: i%2 == 0})
	}
	return blocks
}

// Scaled returns the pattern stretched so it spans length instead of
// [PathLength]. Renderers without a pathLength attribute use it to map the
// normalized pattern onto a primitive's real length.
func (d DashPattern) Scaled(length float64) []float64 {
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = v * length / PathLength
	}
	return out
}

// String formats the pattern as an SVG stroke-dasharray value.
func (d DashPattern) String() string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
