package colorwheel

import (
	"fmt"
	"image"
)

// Point is a position in client or raster space.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Size is the on-screen size of the rendered raster.
type Size struct {
	W, H float64
}

// Viewport describes where and how large the raster is drawn on screen.
// Raster holds the native pixel dimensions of the backing image.
type Viewport struct {
	Origin   Point
	Rendered Size
	Raster   image.Point
}

// NewViewport returns a viewport drawing the raster at its native size at the origin.
func NewViewport(raster image.Point) Viewport {
	return Viewport{
		Rendered: Size{W: float64(raster.X), H: float64(raster.Y)},
		Raster:   raster,
	}
}

// Fit returns the viewport of a raster drawn with contain-fit inside a box of the given size,
// centered on both axes.
func Fit(raster image.Point, box Size) Viewport {
	if raster.X <= 0 || raster.Y <= 0 || box.W <= 0 || box.H <= 0 {
		return NewViewport(raster)
	}
	r := min(box.W/float64(raster.X), box.H/float64(raster.Y))
	w, h := float64(raster.X)*r, float64(raster.Y)*r

	return Viewport{
		Origin:   Point{X: (box.W - w) / 2, Y: (box.H - h) / 2},
		Rendered: Size{W: w, H: h},
		Raster:   raster,
	}
}

// scale returns the raster-per-client ratio on each axis.
func (v Viewport) scale() (sx, sy float64) {
	sx, sy = 1, 1
	if v.Rendered.W > 0 {
		sx = float64(v.Raster.X) / v.Rendered.W
	}
	if v.Rendered.H > 0 {
		sy = float64(v.Raster.Y) / v.Rendered.H
	}
	return sx, sy
}

// ToRaster converts a client space point into raster space.
func (v Viewport) ToRaster(p Point) Point {
	sx, sy := v.scale()
	return Point{
		X: (p.X - v.Origin.X) * sx,
		Y: (p.Y - v.Origin.Y) * sy,
	}
}

// ToClient is the inverse of ToRaster.
func (v Viewport) ToClient(p Point) Point {
	sx, sy := v.scale()
	return Point{
		X: p.X/sx + v.Origin.X,
		Y: p.Y/sy + v.Origin.Y,
	}
}

// Map returns the raster coordinate of the event. Touch events use the first active touch;
// the boolean is false when the event carries no coordinate (a touch without active touches),
// which callers treat as a no-op.
func Map(ev Event, v Viewport) (Point, bool) {
	p := ev.Position
	if ev.Source == Touch {
		if len(ev.Touches) == 0 {
			return Point{}, false
		}
		p = ev.Touches[0]
	}
	return v.ToRaster(p), true
}

// Unmap converts a raster coordinate back into client space.
func Unmap(p Point, v Viewport) Point {
	return v.ToClient(p)
}
