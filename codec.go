package stegtext

import (
	"errors"
	"fmt"

	"github.com/bodgit/stegtext/alphabet"
	"github.com/bodgit/stegtext/lsb"
)

// ErrCapacityExceeded is returned when a message does not fit in a carrier.
var ErrCapacityExceeded = errors.New("stegtext: message exceeds carrier capacity")

// Capacity returns the number of symbols, including the terminator, that c
// can hold using layout l.
func Capacity(c Carrier, l Layout) int {
	return l.pixels(c.Bounds())
}

// MaxMessageLength returns the length of the longest message c can hold
// using layout l.
func MaxMessageLength(c Carrier, l Layout) int {
	if n := Capacity(c, l); n > 0 {
		return n - 1
	}
	return 0
}

// Hide writes text into c using layout l, one pixel per symbol. Nothing is
// written if text contains a character outside of the alphabet or if the
// encoded message does not fit.
func Hide(c Carrier, text string, l Layout) error {
	symbols, err := alphabet.Encode(text)
	if err != nil {
		return err
	}

	r := c.Bounds()
	if n := l.pixels(r); len(symbols) > n {
		return fmt.Errorf("%w: %d symbols, %d pixels", ErrCapacityExceeded, len(symbols), n)
	}

	for i, s := range symbols {
		p := l.point(r, i)
		red, green, blue := c.RGB(p.X, p.Y)
		red, green, blue = lsb.EmbedRGB(red, green, blue, lsb.Split(uint8(s)))
		c.SetRGB(p.X, p.Y, red, green, blue)
	}

	return nil
}

// Reveal reads a message from c using layout l. Scanning stops at the
// first terminator; if the carrier is exhausted first alphabet.ErrNoTerminator
// is returned.
func Reveal(c Carrier, l Layout) (string, error) {
	r := c.Bounds()
	n := l.pixels(r)

	symbols := make([]alphabet.Symbol, 0, 64)
	for i := 0; i < n; i++ {
		p := l.point(r, i)
		s := alphabet.Symbol(lsb.Join(lsb.ExtractRGB(c.RGB(p.X, p.Y))))
		switch {
		case s == alphabet.Terminator:
			return alphabet.Decode(append(symbols, alphabet.Terminator))
		case s > alphabet.Max:
			return "", &alphabet.InvalidSymbolError{Symbol: s, Index: i}
		}
		symbols = append(symbols, s)
	}

	return "", alphabet.ErrNoTerminator
}
