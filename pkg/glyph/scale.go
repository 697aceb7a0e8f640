package glyph

import (
	"math"
	"unicode"
)

const (
	// BandHeight is the scroll distance, in pixels, covered by one seed.
	BandHeight = 100.0

	threshold = 0.1
	minScale  = 0.7
	scaleSpan = 0.8
)

// SeedFor returns the seed for a scroll position.
func SeedFor(scrollY float64) int {
	return int(math.Floor(scrollY / BandHeight))
}

// Scale returns the scale of the character at index for seed. Most
// characters get exactly 1.
func Scale(index, seed int) float64 {
	h := math.Sin(float64(index)*1337+float64(seed)*9999) * 10000
	n := math.Abs(h - math.Floor(h))
	if n > threshold {
		return 1
	}
	return minScale + n*10*scaleSpan
}

// Animated reports whether a scale differs from the identity.
func Animated(scale float64) bool { return scale != 1 }

// Scales returns one scale per rune of text. Whitespace always gets 1 but
// still consumes an index.
func Scales(text string, seed int) []float64 {
	out := make([]float64, 0, len(text))
	i := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			out = append(out, 1)
		} else {
			out = append(out, Scale(i, seed))
		}
		i++
	}
	return out
}

// Glyph is one rune with its scale.
type Glyph struct {
	Rune  rune    `json:"rune"`
	Scale float64 `json:"scale"`
}

// Layout pairs each rune of text with its scale for seed.
func Layout(text string, seed int) []Glyph {
	scales := Scales(text, seed)
	out := make([]Glyph, 0, len(scales))
	i := 0
	for _, r := range text {
		out = append(out, Glyph{Rune: r, Scale: scales[i]})
		i++
	}
	return out
}
