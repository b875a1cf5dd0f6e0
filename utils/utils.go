package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Contains returns true if the value is present in the collection.
func Contains[T comparable](collection []T, value T) bool {
	for _, v := range collection {
		if v == value {
			return true
		}
	}
	return false
}

// ParseHex converts a CSS like hex color string into a color.NRGBA.
// It accepts the #RGB, #RRGGBB and #RRGGBBAA forms; the leading hash is optional.
func ParseHex(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
		fallthrough
	case 6:
		s += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexToRGBA converts a hex color string to color.NRGBA.
// Invalid input resolves to opaque black.
func HexToRGBA(hex string) color.NRGBA {
	c, err := ParseHex(hex)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// RGBToHex returns the #RRGGBB representation of the color. The alpha channel is ignored.
func RGBToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
