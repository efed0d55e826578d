package stegtext

import (
	"fmt"
	"image"
)

// Layout selects the order in which carrier pixels hold symbols. The same
// Layout must be used to hide and reveal a message.
type Layout int

const (
	// Row uses the first row only, left to right
	Row Layout = iota
	// Raster uses every row, top to bottom, each left to right
	Raster
)

var layoutNames = map[Layout]string{
	Row:    "row",
	Raster: "raster",
}

func (l Layout) String() string {
	if s, ok := layoutNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout returns the Layout with the given name.
func ParseLayout(s string) (Layout, error) {
	for l, name := range layoutNames {
		if name == s {
			return l, nil
		}
	}
	return Row, fmt.Errorf("unknown layout %q", s)
}

// pixels returns the number of pixels of r the layout visits.
func (l Layout) pixels(r image.Rectangle) int {
	if r.Empty() {
		return 0
	}
	switch l {
	case Raster:
		return r.Dx() * r.Dy()
	default:
		return r.Dx()
	}
}

// point returns the coordinates of the i-th visited pixel of r.
func (l Layout) point(r image.Rectangle, i int) image.Point {
	w := r.Dx()
	return image.Point{r.Min.X + i%w, r.Min.Y + i/w}
}
