// Package imop implements the blend modes used for mixing a paint color with its backdrop.
// The mixing formulas follow the W3C Compositing and Blending Level 1 recommendation,
// the same model a browser canvas applies through globalCompositeOperation.
//
// Separable modes (multiply, screen, overlay) operate on each color channel independently,
// while the non-separable ones (color, hue) work on the whole RGB triplet,
// trading hue and saturation between source and backdrop but keeping the backdrop luminosity.
// This is what makes the color and hue modes useful for recoloring a photo
// without losing its shading and highlights.
package imop

import (
	"fmt"
	"strings"
)

// BlendMode defines how the paint color is mixed with the backdrop.
type BlendMode uint8

const (
	Normal BlendMode = iota
	Multiply
	Screen
	Overlay
	Color
	Hue
)

var modeNames = [...]string{
	Normal:   "normal",
	Multiply: "multiply",
	Screen:   "screen",
	Overlay:  "overlay",
	Color:    "color",
	Hue:      "hue",
}

// aliases maps the canvas operation names onto the supported blend modes.
var aliases = map[string]BlendMode{
	"source-over": Normal,
	"src_over":    Normal,
	"color-only":  Color,
	"hue-only":    Hue,
}

// Modes returns every supported blend mode in declaration order.
func Modes() []BlendMode {
	return []BlendMode{Normal, Multiply, Screen, Overlay, Color, Hue}
}

// String returns the canonical name of the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", uint8(m))
}

// Valid reports whether m is one of the supported blend modes.
func (m BlendMode) Valid() bool {
	return int(m) < len(modeNames)
}

// MarshalText implements encoding.TextMarshaler.
func (m BlendMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("blend mode %d not supported", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BlendMode) UnmarshalText(text []byte) error {
	mode, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseBlendMode activates one of the supported blend modes by its name.
func ParseBlendMode(name string) (BlendMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	if m, ok := aliases[name]; ok {
		return m, nil
	}
	return Normal, fmt.Errorf("blend mode %q not supported", name)
}

// mix computes the blend function B(Cb, Cs) for unmultiplied, normalized channels.
func (m BlendMode) mix(cs, cb rgb) rgb {
	switch m {
	case Multiply:
		return rgb{cs[0] * cb[0], cs[1] * cb[1], cs[2] * cb[2]}
	case Screen:
		return rgb{screen(cs[0], cb[0]), screen(cs[1], cb[1]), screen(cs[2], cb[2])}
	case Overlay:
		return rgb{overlay(cs[0], cb[0]), overlay(cs[1], cb[1]), overlay(cs[2], cb[2])}
	case Color:
		return setLum(cs, lum(cb))
	case Hue:
		return setLum(setSat(cs, sat(cb)), lum(cb))
	default:
		return cs
	}
}

func screen(s, b float64) float64 {
	return s + b - s*b
}

// overlay is a hard light with swapped layers: the backdrop decides
// between multiplying and screening.
func overlay(s, b float64) float64 {
	if b <= 0.5 {
		return 2 * s * b
	}
	return screen(s, 2*b-1)
}
