package stegtext

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLayout(t *testing.T) {
	for _, l := range []Layout{Row, Raster} {
		parsed, err := ParseLayout(l.String())
		assert.Nil(t, err)
		assert.Equal(t, l, parsed)
	}

	_, err := ParseLayout("spiral")
	assert.NotNil(t, err)
	assert.Equal(t, "Layout(7)", Layout(7).String())
}

func TestLayoutPoints(t *testing.T) {
	r := image.Rect(1, 1, 4, 3)

	assert.Equal(t, 3, Row.pixels(r))
	assert.Equal(t, 6, Raster.pixels(r))
	assert.Equal(t, 0, Raster.pixels(image.Rectangle{}))

	var points []image.Point
	for i := 0; i < Raster.pixels(r); i++ {
		points = append(points, Raster.point(r, i))
	}
	assert.Equal(t, []image.Point{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {2, 2}, {3, 2}}, points)

	for i := 0; i < Row.pixels(r); i++ {
		assert.Equal(t, image.Point{1 + i, 1}, Row.point(r, i))
	}
}
