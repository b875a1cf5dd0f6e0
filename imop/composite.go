package imop

import (
	"image/color"
	"math"
)

// Combine mixes the src paint color into the dst backdrop pixel with the given
// blend mode and opacity and returns the resulting pixel.
//
// The source alpha is scaled by opacity (clamped to [0, 1]); the blended color
// is then composited over the backdrop with the Porter-Duff source-over operator:
//
//	Cs' = (1 - ab)*Cs + ab*B(Cb, Cs)
//	ao  = as + ab*(1 - as)
//	co  = as*Cs' + ab*Cb*(1 - as)
func Combine(src, dst color.NRGBA, mode BlendMode, opacity float64) color.NRGBA {
	opacity = math.Max(0, math.Min(1, opacity))

	as := opacity * float64(src.A) / 255
	if as == 0 {
		return dst
	}
	ab := float64(dst.A) / 255

	cs := toUnit(src)
	cb := toUnit(dst)
	mixed := mode.mix(cs, cb)

	ao := as + ab*(1-as)

	var out rgb
	for i := range out {
		c := (1-ab)*cs[i] + ab*mixed[i]
		out[i] = (as*c + ab*cb[i]*(1-as)) / ao
	}

	return color.NRGBA{
		R: fromUnit(out[0]),
		G: fromUnit(out[1]),
		B: fromUnit(out[2]),
		A: fromUnit(ao),
	}
}

func toUnit(c color.NRGBA) rgb {
	return rgb{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func fromUnit(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
