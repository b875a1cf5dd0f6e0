package colorwheel

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/esimov/colorwheel/imop"
	"github.com/stretchr/testify/require"
)

var (
	grey = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	red  = color.NRGBA{R: 0xff, A: 0xff}
)

func newRaster(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// gradient returns a raster where every pixel is different enough to catch misplaced copies.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: uint8(x ^ y), A: 0xff})
		}
	}
	return img
}

func pngDataURL(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return FormatDataURL("image/png", buf.Bytes())
}

func solidBrush(c color.NRGBA, radius float64) Brush {
	return Brush{Color: c, Radius: radius, Mode: imop.Normal, Opacity: 1}
}
