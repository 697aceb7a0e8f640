// Package glyph computes the scroll-seeded per-character scale flourish
// used for running copy next to the backdrop.
//
// As the page scrolls, roughly one character in ten is scaled between 0.7x
// and 1.5x. The choice is a pure hash of the character index and a seed
// derived from the scroll position, so the same scroll band always picks
// the same characters and a page reload reproduces it exactly.
//
// # Usage
//
//	seed := glyph.SeedFor(scrollY)
//	for i, s := range glyph.Scales(text, seed) {
//	    if glyph.Animated(s) {
//	        // draw rune i at scale s, anchored at its baseline
//	    }
//	}
//
// Indices count runes, and whitespace advances the index like any other
// character, so inserting a space shifts which characters animate.
package glyph
