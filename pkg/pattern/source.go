package pattern

import "math/rand/v2"

// Source supplies uniform random values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic PCG-backed source for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewRandomSource returns a non-deterministic source.
func NewRandomSource() Source {
	return NewSource(rand.Uint64())
}

// Sequence is a Source that replays fixed values, wrapping around at the end.
// An empty Sequence always yields 0.
type Sequence struct {
	Values []float64
	next   int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

// Float64 returns the next value in the sequence.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int { return s.next }
