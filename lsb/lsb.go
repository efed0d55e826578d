/*
Package lsb implements the bit-level packing of a 6-bit value across the two
least significant bits of three 8-bit color channels.

A value is split into three 2-bit pairs, least significant pair first, so
that the first pair is stored in red, the second in green and the third in
blue. The upper six bits of each channel are never modified.
*/
package lsb

const (
	pairBits = 2
	pairMask = 1<<pairBits - 1

	// MaxValue is the largest value that fits in a Triple
	MaxValue = 1<<(3*pairBits) - 1
)

// Triple holds three 2-bit pairs, least significant first.
type Triple [3]uint8

// Split breaks v into its three 2-bit pairs. It panics if v is greater than
// MaxValue.
func Split(v uint8) Triple {
	if v > MaxValue {
		panic("lsb: value out of range")
	}
	var t Triple
	for i := range t {
		t[i] = v & pairMask
		v >>= pairBits
	}
	return t
}

// Join is the inverse of Split.
func Join(t Triple) uint8 {
	return t[2]<<(2*pairBits) | t[1]<<pairBits | t[0]
}

// Embed replaces the two least significant bits of c with p. It panics if p
// is greater than 3.
func Embed(c, p uint8) uint8 {
	if p > pairMask {
		panic("lsb: pair out of range")
	}
	return c&^pairMask | p
}

// Extract returns the two least significant bits of c.
func Extract(c uint8) uint8 {
	return c & pairMask
}

// EmbedRGB stores t in the red, green and blue channels respectively.
func EmbedRGB(r, g, b uint8, t Triple) (uint8, uint8, uint8) {
	return Embed(r, t[0]), Embed(g, t[1]), Embed(b, t[2])
}

// ExtractRGB is the inverse of EmbedRGB.
func ExtractRGB(r, g, b uint8) Triple {
	return Triple{Extract(r), Extract(g), Extract(b)}
}
