package stegtext

import (
	"image"
	"image/draw"
)

// Carrier is a pixel surface whose red, green and blue channels can be read
// and written individually.
type Carrier interface {
	Bounds() image.Rectangle
	RGB(x, y int) (r, g, b uint8)
	SetRGB(x, y int, r, g, b uint8)
}

// Image is a Carrier backed by an *image.NRGBA so that channel values are
// stored without alpha premultiplication.
type Image struct {
	*image.NRGBA
}

// NewCarrier copies m into a new Image. Sources with more than 8 bits per
// channel are reduced to 8 bits.
func NewCarrier(m image.Image) *Image {
	b := m.Bounds()
	dup := image.NewNRGBA(b)
	draw.Draw(dup, b, m, b.Min, draw.Src)
	return &Image{dup}
}

// RGB returns the channel values of the pixel at (x, y).
func (m *Image) RGB(x, y int) (uint8, uint8, uint8) {
	i := m.PixOffset(x, y)
	return m.Pix[i+0], m.Pix[i+1], m.Pix[i+2]
}

// SetRGB sets the channel values of the pixel at (x, y), leaving alpha
// alone.
func (m *Image) SetRGB(x, y int, r, g, b uint8) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	i := m.PixOffset(x, y)
	m.Pix[i+0], m.Pix[i+1], m.Pix[i+2] = r, g, b
}
