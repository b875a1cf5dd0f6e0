package colorwheel

import (
	"image"
	"math"
	"testing"

	"github.com/esimov/colorwheel/imop"
	"github.com/stretchr/testify/assert"
)

func TestPaint_Disc(t *testing.T) {
	img := newRaster(100, 100, grey)
	Paint(img, Point{X: 50, Y: 50}, solidBrush(red, 10))

	assert.Equal(t, red, img.NRGBAAt(50, 50))
	assert.Equal(t, red, img.NRGBAAt(49, 49))
	assert.Equal(t, red, img.NRGBAAt(59, 50))
	assert.Equal(t, grey, img.NRGBAAt(60, 50), "pixel center 10.5 away is outside the disc")
	assert.Equal(t, grey, img.NRGBAAt(58, 58), "corner of the bounding square is outside the disc")
	assert.Equal(t, grey, img.NRGBAAt(0, 0))

	painted := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xff {
			painted++
		}
	}
	assert.InDelta(t, 314, painted, 12, "disc area should be close to πr²")
}

func TestPaint_Clipping(t *testing.T) {
	img := newRaster(20, 20, grey)

	assert.NotPanics(t, func() {
		Paint(img, Point{X: 0, Y: 0}, solidBrush(red, 5))
		Paint(img, Point{X: 19.5, Y: 19.5}, solidBrush(red, 5))
		Paint(img, Point{X: -100, Y: 300}, solidBrush(red, 5))
		Paint(img, Point{X: 10, Y: 10}, solidBrush(red, 0))
		Paint(img, Point{X: 10, Y: 10}, solidBrush(red, -3))
	})
	assert.Equal(t, red, img.NRGBAAt(0, 0))
	assert.Equal(t, red, img.NRGBAAt(19, 19))
	assert.Equal(t, grey, img.NRGBAAt(10, 10))
}

func TestPaint_OpacityAndModes(t *testing.T) {
	img := newRaster(10, 10, grey)

	Paint(img, Point{X: 5, Y: 5}, Brush{Color: red, Radius: 2, Mode: imop.Normal, Opacity: 0})
	assert.Equal(t, grey, img.NRGBAAt(5, 5), "zero opacity leaves the raster untouched")

	Paint(img, Point{X: 5, Y: 5}, Brush{Color: red, Radius: 2, Mode: imop.Multiply, Opacity: 1})
	assert.Equal(t, imop.Combine(red, grey, imop.Multiply, 1), img.NRGBAAt(5, 5))
}

func TestPaint_Feather(t *testing.T) {
	hard := newRaster(60, 60, grey)
	soft := newRaster(60, 60, grey)

	b := solidBrush(red, 10)
	Paint(hard, Point{X: 30, Y: 30}, b)
	b.Feather = 4
	Paint(soft, Point{X: 30, Y: 30}, b)

	c := soft.NRGBAAt(30, 30)
	assert.InDelta(t, 255, float64(c.R), 1, "disc interior is fully covered")
	assert.InDelta(t, 0, float64(c.G), 1)

	edge := soft.NRGBAAt(40, 30)
	assert.Equal(t, grey, hard.NRGBAAt(40, 30))
	assert.Greater(t, edge.R, grey.R, "feather bleeds outside the hard edge")
	assert.Less(t, edge.R, uint8(0xff))

	inner := soft.NRGBAAt(38, 30)
	assert.Less(t, inner.R, uint8(0xff), "feather softens just inside the edge")

	assert.Equal(t, grey, soft.NRGBAAt(46, 30), "nothing beyond radius plus feather")
}

func TestBlurMask(t *testing.T) {
	mask := make([]float64, 9*9)
	mask[4*9+4] = 1
	blurMask(mask, 9, 9, 2)

	var sum float64
	for _, v := range mask {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-9, "blur preserves the mass away from the borders")
	assert.Greater(t, mask[4*9+4], mask[4*9+5])
	assert.Greater(t, mask[4*9+5], mask[4*9+6])
	assert.Zero(t, mask[4*9+7])
}

func TestPaint_HugeRadiusCoversRaster(t *testing.T) {
	for _, feather := range []int{0, 3} {
		img := newRaster(8, 8, grey)
		b := solidBrush(red, 1e19)
		b.Feather = feather
		Paint(img, Point{X: 4, Y: 4}, b)
		assert.Equal(t, red, img.NRGBAAt(4, 4), "feather %d", feather)
	}

	img := newRaster(8, 8, grey)
	Paint(img, Point{X: 4, Y: 4}, solidBrush(red, math.NaN()))
	Paint(img, Point{X: math.NaN(), Y: 4}, solidBrush(red, 3))
	assert.Equal(t, newRaster(8, 8, grey).Pix, img.Pix)
}

func TestDiscBounds(t *testing.T) {
	r := discBounds(Point{X: 10.5, Y: 10.5}, 2)
	assert.Equal(t, image.Rect(8, 8, 14, 14), r)
	assert.True(t, r.Eq(r.Intersect(image.Rect(0, 0, 100, 100))))

	huge := discBounds(Point{X: 4, Y: 4}, 1e19)
	assert.True(t, huge.In(image.Rect(-maxPixel, -maxPixel, maxPixel+1, maxPixel+1)))
	assert.False(t, huge.Empty())
}
