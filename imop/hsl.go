package imop

// rgb holds normalized color components in the [0, 1] range.
type rgb [3]float64

// Lum returns the luminosity of a normalized color using the BT.601 weights.
func Lum(r, g, b float64) float64 {
	return lum(rgb{r, g, b})
}

// Sat returns the saturation (max - min) of a normalized color.
func Sat(r, g, b float64) float64 {
	return sat(rgb{r, g, b})
}

func lum(c rgb) float64 {
	return 0.3*c[0] + 0.59*c[1] + 0.11*c[2]
}

func sat(c rgb) float64 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

// clipColor brings the components back into [0, 1] moving them towards the luminosity.
func clipColor(c rgb) rgb {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])

	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

// setLum shifts the color to luminosity l, keeping hue and saturation as far as possible.
func setLum(c rgb, l float64) rgb {
	d := l - lum(c)
	return clipColor(rgb{c[0] + d, c[1] + d, c[2] + d})
}

// setSat rescales the color to saturation s. Grey inputs collapse to black.
func setSat(c rgb, s float64) rgb {
	lo, mid, hi := order(c)
	var out rgb
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}

// order returns the component indexes sorted by value.
func order(c rgb) (lo, mid, hi int) {
	lo, mid, hi = 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	return
}
