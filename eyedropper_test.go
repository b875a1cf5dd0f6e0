package colorwheel

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/esimov/colorwheel/utils"
	"github.com/stretchr/testify/assert"
)

func TestEyedropper_Sample(t *testing.T) {
	img := gradient(30, 20)

	hex, ok := Sample(img, Point{X: 3.9, Y: 7.2})
	assert.True(t, ok)
	assert.Equal(t, utils.RGBToHex(img.NRGBAAt(3, 7)), hex)

	for _, p := range []Point{
		{X: -0.1, Y: 0},
		{X: 0, Y: -0.5},
		{X: 30, Y: 5},
		{X: 5, Y: 20},
		{X: math.NaN(), Y: 1},
	} {
		_, ok := Sample(img, p)
		assert.False(t, ok, p.String())
	}
}

func TestEyedropper_IgnoresAlpha(t *testing.T) {
	img := newRaster(2, 2, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0x10})
	hex, ok := Sample(img, Point{X: 1, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, "#123456", hex)
}

func TestEyedropper_AfterStroke(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		img := gradient(64, 64)
		c := color.NRGBA{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256)), A: 0xff}
		p := Point{X: rnd.Float64() * 64, Y: rnd.Float64() * 64}

		Paint(img, p, solidBrush(c, 1+rnd.Float64()*10))

		hex, ok := Sample(img, p)
		assert.True(t, ok)
		assert.Equal(t, utils.RGBToHex(c), hex)
	}
}
