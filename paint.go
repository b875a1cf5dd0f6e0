package colorwheel

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/colorwheel/imop"
	"github.com/esimov/colorwheel/utils"
)

// Paint stamps a filled disc of the brush radius centered at c onto the raster,
// mixing the brush color with the existing pixels through the brush blend mode and opacity.
// A pixel belongs to the disc when its center lies within the radius.
// Pixels falling outside the raster are clipped.
func Paint(dst *image.NRGBA, c Point, b Brush) {
	if !(b.Radius > 0) || math.IsNaN(c.X) || math.IsNaN(c.Y) || dst.Bounds().Empty() {
		return
	}
	if b.Feather > 0 {
		paintFeathered(dst, c, b)
		return
	}

	r2 := b.Radius * b.Radius
	area := discBounds(c, b.Radius).Intersect(dst.Bounds())

	for y := area.Min.Y; y < area.Max.Y; y++ {
		dy := float64(y) + 0.5 - c.Y
		for x := area.Min.X; x < area.Max.X; x++ {
			dx := float64(x) + 0.5 - c.X
			if dx*dx+dy*dy > r2 {
				continue
			}
			blendAt(dst, x, y, b.Color, b.Mode, b.Opacity)
		}
	}
}

// paintFeathered builds the coverage mask of the disc, blurs it
// and uses the coverage to scale the opacity of every pixel.
func paintFeathered(dst *image.NRGBA, c Point, b Brush) {
	// The mask beyond the blur reach of the raster never contributes to it.
	box := discBounds(c, b.Radius+float64(b.Feather)).Intersect(dst.Bounds().Inset(-b.Feather - 1))
	if box.Empty() {
		return
	}
	w, h := box.Dx(), box.Dy()

	r2 := b.Radius * b.Radius
	mask := make([]float64, w*h)
	for y := 0; y < h; y++ {
		dy := float64(box.Min.Y+y) + 0.5 - c.Y
		for x := 0; x < w; x++ {
			dx := float64(box.Min.X+x) + 0.5 - c.X
			if dx*dx+dy*dy <= r2 {
				mask[y*w+x] = 1
			}
		}
	}
	blurMask(mask, w, h, b.Feather)

	area := box.Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			cov := mask[(y-box.Min.Y)*w+(x-box.Min.X)]
			if cov <= 0 {
				continue
			}
			blendAt(dst, x, y, b.Color, b.Mode, b.Opacity*cov)
		}
	}
}

// discBounds returns the smallest pixel rectangle containing the disc.
func discBounds(c Point, r float64) image.Rectangle {
	return image.Rect(
		pixel(math.Floor(c.X-r)), pixel(math.Floor(c.Y-r)),
		pixel(math.Ceil(c.X+r))+1, pixel(math.Ceil(c.Y+r))+1,
	)
}

// maxPixel bounds pixel coordinates far outside any raster.
const maxPixel = 1 << 30

// pixel converts a coordinate to a pixel index, saturating instead of overflowing.
func pixel(v float64) int {
	return int(utils.Clamp(v, -maxPixel, maxPixel))
}

func blendAt(dst *image.NRGBA, x, y int, src color.NRGBA, mode imop.BlendMode, opacity float64) {
	i := dst.PixOffset(x, y)
	s := dst.Pix[i : i+4 : i+4]

	out := imop.Combine(src, color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}, mode, opacity)
	s[0], s[1], s[2], s[3] = out.R, out.G, out.B, out.A
}
