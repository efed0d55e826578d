/*
Package preview renders the least significant bits of an image so that any
data hidden in them becomes visible.

Each channel is masked to its lowest bits which are then stretched to the
full 0-255 range. The result is written as a GIF using a palette computed
with a median cut quantizer.
*/
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxColors = 256

var errBadBits = errors.New("preview: bits must be between 1 and 8")

func stretch(c uint8, mask uint8) uint8 {
	return uint8(uint(c&mask) * 0xff / uint(mask))
}

// ValidBits returns an error if bits is not a usable number of low bits.
func ValidBits(bits int) error {
	if bits < 1 || bits > 8 {
		return errBadBits
	}
	return nil
}

// Plane returns a copy of m where each channel has been reduced to its
// lowest bits and then stretched to full range.
func Plane(m image.Image, bits int) (*image.NRGBA, error) {
	if err := ValidBits(bits); err != nil {
		return nil, err
	}
	mask := uint8(1<<uint(bits) - 1)

	b := m.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, m, b.Min, draw.Src)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := dst.NRGBAAt(x, y)
			dst.SetNRGBA(x, y, color.NRGBA{
				stretch(c.R, mask),
				stretch(c.G, mask),
				stretch(c.B, mask),
				0xff,
			})
		}
	}

	return dst, nil
}

// Encode writes the lowest bits of m to w as a GIF.
func Encode(w io.Writer, m image.Image, bits int) error {
	plane, err := Plane(m, bits)
	if err != nil {
		return err
	}

	// There are never more distinct colors than three channels' worth of
	// bits can produce
	n := maxColors
	if bits < 3 {
		n = 1 << uint(3*bits)
	}

	b := plane.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), plane))
	draw.Draw(pm, b, plane, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return gif.Encode(w, pm, &gif.Options{NumColors: len(pm.Palette)})
}
