/*
Package alphabet implements the mapping between message text and the small
integers, or symbols, that are hidden in a carrier image.

The alphabet is fixed at the 26 letters of the Latin alphabet plus space.
Letters are case-insensitive and always decode as uppercase. Every encoded
message ends with a single terminator symbol of value zero.
*/
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol is the integer encoding of one character.
type Symbol uint8

const (
	// Terminator marks the end of a message
	Terminator Symbol = 0
	// Space encodes the space character
	Space Symbol = 27
	// Max is the largest valid symbol
	Max = Space
)

// ErrNoTerminator is returned when a symbol sequence ends without a
// Terminator.
var ErrNoTerminator = errors.New("alphabet: missing terminator")

// InvalidCharacterError records a character that has no symbol.
type InvalidCharacterError struct {
	Char   rune
	Offset int
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("alphabet: invalid character %q at offset %d", e.Char, e.Offset)
}

// InvalidSymbolError records a symbol outside of the alphabet.
type InvalidSymbolError struct {
	Symbol Symbol
	Index  int
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("alphabet: invalid symbol %d at index %d", e.Symbol, e.Index)
}

func symbolFor(r rune) (Symbol, bool) {
	switch {
	case r == ' ':
		return Space, true
	case r >= 'A' && r <= 'Z':
		return Symbol(r-'A') + 1, true
	case r >= 'a' && r <= 'z':
		return Symbol(r-'a') + 1, true
	}
	return 0, false
}

// Valid returns an *InvalidCharacterError for the first character in text
// that cannot be encoded, or nil.
func Valid(text string) error {
	for i, r := range text {
		if _, ok := symbolFor(r); !ok {
			return &InvalidCharacterError{Char: r, Offset: i}
		}
	}
	return nil
}

// Encode converts text to a terminated symbol sequence. The result always
// has len(text)+1 symbols for valid input.
func Encode(text string) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(text)+1)
	for i, r := range text {
		s, ok := symbolFor(r)
		if !ok {
			return nil, &InvalidCharacterError{Char: r, Offset: i}
		}
		symbols = append(symbols, s)
	}
	return append(symbols, Terminator), nil
}

// Decode converts symbols up to, but not including, the first Terminator
// back to text.
func Decode(symbols []Symbol) (string, error) {
	var b strings.Builder
	for i, s := range symbols {
		switch {
		case s == Terminator:
			return b.String(), nil
		case s == Space:
			b.WriteByte(' ')
		case s < Space:
			b.WriteByte(byte('A' + s - 1))
		default:
			return "", &InvalidSymbolError{Symbol: s, Index: i}
		}
	}
	return "", ErrNoTerminator
}
