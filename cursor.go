package colorwheel

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/esimov/colorwheel/utils"
)

var cursorShadowColor = color.NRGBA{A: 0xaa}

// drawCursor outlines the brush disc under the pointer, at the on-screen scale of the raster.
func (g *Gui) drawCursor(gtx C, v Viewport) {
	if !g.cursor.visible || g.session.Eyedropper() || v.Raster.X == 0 {
		return
	}
	b := g.session.Brush()
	r := float32(b.Radius * v.Rendered.W / float64(v.Raster.X))
	x, y := g.cursor.pos.X, g.cursor.pos.Y

	drawCircle(gtx.Ops, x, y, r, 3, cursorShadowColor)
	outline := b.Color
	outline.A = 0xff
	drawCircle(gtx.Ops, x, y, r, 1.5, outline)
}

// drawCircle strokes a circle centered at (x,y) with the provided radius and line width.
func drawCircle(ops *op.Ops, x, y, radius, width float32, c color.NRGBA) {
	if radius <= 0 {
		return
	}
	var (
		orig  = f32.Pt(x-radius, y)
		focus = f32.Pt(radius, 0)
		path  clip.Path
	)

	path.Begin(ops)
	path.Move(orig)
	path.Arc(focus, focus, 2*math.Pi)
	path.Close()

	defer clip.Stroke{Path: path.End(), Width: width}.Op().Push(ops).Pop()
	paint.ColorOp{Color: c}.Add(ops)
	paint.PaintOp{}.Add(ops)
}

// getRatio returns the scale needed to fit an image of the given size on the screen.
func getRatio(w, h float32) float32 {
	var r float32 = 1
	if w > maxScreenX || h > maxScreenY {
		wr := maxScreenX / w // width ratio
		hr := maxScreenY / h // height ratio

		r = utils.Min(wr, hr)
	}
	return r
}

// getWindowSize returns the window size showing the image, keeping its aspect ratio.
func getWindowSize(w, h float32) (float32, float32) {
	r := getRatio(w, h)
	return w * r, h * r
}
