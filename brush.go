package colorwheel

import (
	"fmt"
	"image/color"

	"github.com/esimov/colorwheel/imop"
	"github.com/esimov/colorwheel/utils"
)

// Defaults of a freshly opened editor.
const (
	DefaultColor   = "#FF6B35"
	DefaultRadius  = 20
	DefaultOpacity = 0.6

	MinRadius = 1
	MaxRadius = 200
)

// Brush holds the stroke parameters used by Paint.
type Brush struct {
	Color   color.NRGBA
	Radius  float64
	Mode    imop.BlendMode
	Opacity float64
	// Feather softens the edge of the disc by the given number of pixels.
	Feather int
}

// DefaultBrush returns the brush an editor session starts with.
func DefaultBrush() Brush {
	return Brush{
		Color:   utils.HexToRGBA(DefaultColor),
		Radius:  DefaultRadius,
		Mode:    imop.Normal,
		Opacity: DefaultOpacity,
	}
}

// Hex returns the brush color as a #RRGGBB string.
func (b Brush) Hex() string {
	return utils.RGBToHex(b.Color)
}

// SetHex changes the brush color. The alpha component, if present, is dropped.
func (b *Brush) SetHex(hex string) error {
	c, err := utils.ParseHex(hex)
	if err != nil {
		return err
	}
	c.A = 0xff
	b.Color = c
	return nil
}

// Validate checks the stroke parameters.
func (b Brush) Validate() error {
	if !(b.Radius > 0 && b.Radius <= MaxRadius) {
		return fmt.Errorf("brush radius must be within (0, %d], got %v", MaxRadius, b.Radius)
	}
	if !(b.Opacity >= 0 && b.Opacity <= 1) {
		return fmt.Errorf("brush opacity must be within [0, 1], got %v", b.Opacity)
	}
	if b.Feather < 0 || b.Feather > MaxRadius {
		return fmt.Errorf("brush feather must be within [0, %d], got %d", MaxRadius, b.Feather)
	}
	if !b.Mode.Valid() {
		return fmt.Errorf("blend mode %v not supported", b.Mode)
	}
	return nil
}

func (b Brush) String() string {
	return fmt.Sprintf("%s r=%.0f %s %.0f%%", b.Hex(), b.Radius, b.Mode, b.Opacity*100)
}
