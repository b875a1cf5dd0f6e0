package colorwheel

import (
	"image"
	"math"

	"github.com/esimov/colorwheel/utils"
)

// Sample returns the #RRGGBB color of the raster pixel containing p. The alpha channel is ignored.
// It returns false when p lies outside the raster.
func Sample(img *image.NRGBA, p Point) (string, bool) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return "", false
	}
	fx, fy := math.Floor(p.X), math.Floor(p.Y)
	b := img.Bounds()
	if fx < float64(b.Min.X) || fy < float64(b.Min.Y) || fx >= float64(b.Max.X) || fy >= float64(b.Max.Y) {
		return "", false
	}
	return utils.RGBToHex(img.NRGBAAt(int(fx), int(fy))), true
}
