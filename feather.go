package colorwheel

import "github.com/esimov/colorwheel/utils"

// blurMask blurs a single channel coverage mask in place with the stack blur weight profile:
// a triangular kernel whose weights grow linearly towards the center pixel.
// The horizontal and vertical passes are applied separately. Samples outside the mask count as zero.
func blurMask(mask []float64, w, h, radius int) {
	if radius <= 0 || w == 0 || h == 0 {
		return
	}
	kernel := make([]float64, 2*radius+1)
	div := float64((radius + 1) * (radius + 1))
	for i := range kernel {
		kernel[i] = float64(radius+1-utils.Abs(i-radius)) / div
	}

	line := make([]float64, max(w, h))

	// Horizontal pass.
	for y := 0; y < h; y++ {
		row := mask[y*w : (y+1)*w]
		copy(line, row)
		for x := 0; x < w; x++ {
			row[x] = convolve(line[:w], x, kernel, radius)
		}
	}

	// Vertical pass.
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			line[y] = mask[y*w+x]
		}
		for y := 0; y < h; y++ {
			mask[y*w+x] = convolve(line[:h], y, kernel, radius)
		}
	}
}

func convolve(line []float64, at int, kernel []float64, radius int) float64 {
	var sum float64
	for k, weight := range kernel {
		i := at + k - radius
		if i < 0 || i >= len(line) {
			continue
		}
		sum += line[i] * weight
	}
	return sum
}
