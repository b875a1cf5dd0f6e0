package colorwheel

import (
	"math"
	"testing"

	"github.com/esimov/colorwheel/imop"
	"github.com/stretchr/testify/assert"
)

func TestBrush_Validate(t *testing.T) {
	assert.NoError(t, DefaultBrush().Validate())
	assert.NoError(t, solidBrush(red, MaxRadius).Validate())
	assert.NoError(t, solidBrush(red, 0.5).Validate())

	for name, b := range map[string]Brush{
		"zero radius":      solidBrush(red, 0),
		"negative radius":  solidBrush(red, -3),
		"huge radius":      solidBrush(red, 1e19),
		"radius above max": solidBrush(red, MaxRadius+1),
		"infinite radius":  solidBrush(red, math.Inf(1)),
		"NaN radius":       solidBrush(red, math.NaN()),
		"NaN opacity":      {Color: red, Radius: 5, Opacity: math.NaN()},
		"opacity above 1":  {Color: red, Radius: 5, Opacity: 1.5},
		"negative feather": {Color: red, Radius: 5, Opacity: 1, Feather: -1},
		"huge feather":     {Color: red, Radius: 5, Opacity: 1, Feather: MaxRadius + 1},
		"unknown mode":     {Color: red, Radius: 5, Opacity: 1, Mode: imop.BlendMode(42)},
	} {
		assert.Error(t, b.Validate(), name)
	}
}

func TestBrush_SessionRejectsHugeRadius(t *testing.T) {
	s, _ := newTestSession(t, newRaster(10, 10, grey))
	before := s.Brush()
	assert.Error(t, s.SetBrush(solidBrush(red, 1e19)))
	assert.Equal(t, before, s.Brush())
}
