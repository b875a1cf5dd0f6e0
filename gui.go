package colorwheel

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/esimov/colorwheel/imop"
	"github.com/sirupsen/logrus"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	maxScreenX = 1366
	maxScreenY = 768

	statusBarHeight = 28

	radiusStep  = 2
	opacityStep = 0.1
)

var (
	defaultBkgColor  = color.NRGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff}
	defaultTextColor = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	errorTextColor   = color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff}
)

// decoded is the outcome of the background decoding of the source image.
type decoded struct {
	src Source
	err error
}

// Gui is the interactive editor window of a session.
// The source image is decoded on a separate goroutine and attached on the window goroutine.
type Gui struct {
	session *Session
	log     logrus.FieldLogger
	theme   *material.Theme
	window  *app.Window
	title   string

	result chan decoded
	fatal  error
	status string

	imgOp paint.ImageOp
	dirty bool

	cursor struct {
		pos     f32.Point
		visible bool
	}
	touch struct {
		id     pointer.ID
		active bool
	}
}

// NewGUI initializes the editor window of the session.
func NewGUI(s *Session) *Gui {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Palette.Fg = defaultTextColor
	th.Palette.Bg = defaultBkgColor

	return &Gui{
		session: s,
		log:     s.log,
		theme:   th,
		title:   "Colorwheel - " + s.project.Name,
		result:  make(chan decoded, 1),
	}
}

// Run opens the window and processes its events until it is closed or ctx is cancelled.
// It must be called on a separate goroutine while app.Main runs on the main one.
func (g *Gui) Run(ctx context.Context) error {
	w := new(app.Window)
	w.Option(
		app.Title(g.title),
		app.Size(unit.Dp(maxScreenX/2), unit.Dp(maxScreenY/2)),
	)
	g.window = w

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go g.decode(ctx)
	go func() {
		<-ctx.Done()
		w.Perform(system.ActionClose)
	}()

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			g.attach()

			if quit := g.handleKeys(ctx, gtx); quit {
				w.Perform(system.ActionClose)
			}
			g.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// Err returns the error which stopped the editor from loading the image, if any.
func (g *Gui) Err() error {
	return g.fatal
}

func (g *Gui) decode(ctx context.Context) {
	src, err := DecodeSource(g.session.Source())
	select {
	case g.result <- decoded{src: src, err: err}:
		g.window.Invalidate()
	case <-ctx.Done():
	}
}

// attach installs the decoded source image, if it became available.
func (g *Gui) attach() {
	select {
	case r := <-g.result:
		if r.err == nil {
			r.err = g.session.Attach(r.src)
		}
		if r.err != nil {
			g.fatal = r.err
			g.log.WithError(r.err).Error("unable to decode the source image")
			return
		}
		g.dirty = true
		size := r.src.Image.Bounds().Size()
		w, h := getWindowSize(float32(size.X), float32(size.Y))
		g.window.Option(app.Size(unit.Dp(w), unit.Dp(h+statusBarHeight)))
	default:
	}
}

// handleKeys processes the keyboard shortcuts. It returns true when the window should close.
func (g *Gui) handleKeys(ctx context.Context, gtx C) bool {
	filters := []event.Filter{
		key.Filter{Name: key.NameEscape},
		key.Filter{Name: "Z", Required: key.ModShortcut, Optional: key.ModShift},
		key.Filter{Name: "Y", Required: key.ModShortcut},
		key.Filter{Name: "S", Required: key.ModShortcut},
		key.Filter{Name: "I"},
		key.Filter{Name: "R"},
		key.Filter{Name: "["},
		key.Filter{Name: "]"},
		key.Filter{Name: "-"},
		key.Filter{Name: "="},
	}
	for i := range imop.Modes() {
		filters = append(filters, key.Filter{Name: key.Name(fmt.Sprint(i + 1))})
	}

	quit := false
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		if g.command(ctx, e.Name, e.Modifiers) {
			quit = true
		}
	}
	return quit
}

// command runs the action bound to a key. It returns true for the close shortcut.
func (g *Gui) command(ctx context.Context, name key.Name, mods key.Modifiers) bool {
	if name == key.NameEscape {
		return true
	}
	if !g.session.Ready() {
		return false
	}
	s := g.session
	b := s.Brush()

	switch name {
	case "Z":
		if mods.Contain(key.ModShift) {
			g.report(s.Redo())
		} else {
			g.report(s.Undo())
		}
	case "Y":
		g.report(s.Redo())
	case "S":
		if _, err := s.Save(ctx); err != nil {
			g.status = "save failed: " + err.Error()
			g.log.WithError(err).Error("unable to save project")
		} else {
			g.status = "saved"
		}
	case "I":
		s.SetEyedropper(!s.Eyedropper())
	case "R":
		if err := s.Reset(); err != nil {
			g.status = err.Error()
		} else {
			g.status = "reset to source"
		}
		g.dirty = true
	case "[":
		s.SetRadius(b.Radius - radiusStep)
	case "]":
		s.SetRadius(b.Radius + radiusStep)
	case "-":
		s.SetOpacity(b.Opacity - opacityStep)
	case "=":
		s.SetOpacity(b.Opacity + opacityStep)
	default:
		var n int
		if _, err := fmt.Sscan(string(name), &n); err == nil && n >= 1 && n <= len(imop.Modes()) {
			s.SetMode(imop.Modes()[n-1])
		}
	}
	return false
}

func (g *Gui) report(changed bool, err error) {
	switch {
	case err != nil:
		g.status = err.Error()
	case changed:
		g.status = ""
		g.dirty = true
	}
}

// handlePointer feeds the pointer and touch events of the canvas to the session.
func (g *Gui) handlePointer(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: g,
			Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel |
				pointer.Move | pointer.Enter | pointer.Leave,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		g.cursor.pos = e.Position

		in, ok := g.translate(e)
		if !ok {
			continue
		}
		if err := g.session.Handle(in); err == nil {
			g.dirty = true
		}
	}
}

// translate converts a pointer event into a session input event.
// Touch screens report one event per finger: only the first finger down is followed,
// and the lifting of that finger carries no active touch.
func (g *Gui) translate(e pointer.Event) (Event, bool) {
	pos := Point{X: float64(e.Position.X), Y: float64(e.Position.Y)}

	if e.Source == pointer.Touch {
		ev := Event{Source: Touch}
		switch e.Kind {
		case pointer.Press:
			if g.touch.active {
				return Event{}, false
			}
			g.touch.id, g.touch.active = e.PointerID, true
			ev.Kind, ev.Touches = Down, []Point{pos}
		case pointer.Drag:
			if !g.touch.active || e.PointerID != g.touch.id {
				return Event{}, false
			}
			ev.Kind, ev.Touches = Move, []Point{pos}
		case pointer.Release, pointer.Cancel:
			if !g.touch.active || e.PointerID != g.touch.id {
				return Event{}, false
			}
			g.touch.active = false
			ev.Kind = Up
			if e.Kind == pointer.Cancel {
				ev.Kind = Cancel
			}
		default:
			return Event{}, false
		}
		return ev, true
	}

	ev := Event{Source: Mouse, Position: pos}
	switch e.Kind {
	case pointer.Enter, pointer.Move:
		g.cursor.visible = true
		return Event{}, false
	case pointer.Press:
		if e.Buttons != 0 && !e.Buttons.Contain(pointer.ButtonPrimary) {
			return Event{}, false
		}
		ev.Kind = Down
	case pointer.Drag:
		ev.Kind = Move
	case pointer.Release:
		ev.Kind = Up
	case pointer.Cancel:
		ev.Kind = Cancel
	case pointer.Leave:
		g.cursor.visible = false
		ev.Kind = Leave
	default:
		return Event{}, false
	}
	return ev, true
}

// layout draws the whole window content.
func (g *Gui) layout(gtx C) D {
	paint.Fill(gtx.Ops, defaultBkgColor)

	if g.fatal != nil {
		return g.message(gtx, "Unable to open the image: "+g.fatal.Error()+"\nPress Esc to close.", errorTextColor)
	}
	if !g.session.Ready() {
		return g.message(gtx, "Loading the image...", defaultTextColor)
	}

	size := gtx.Constraints.Max
	barH := gtx.Dp(statusBarHeight)
	canvas := image.Rect(0, 0, size.X, max(size.Y-barH, 1))

	raster := g.session.Raster()
	v := Fit(raster.Bounds().Size(), Size{W: float64(canvas.Dx()), H: float64(canvas.Dy())})
	g.session.SetViewport(v.Origin, v.Rendered)

	g.handlePointer(gtx)

	area := clip.Rect(canvas).Push(gtx.Ops)
	event.Op(gtx.Ops, g)
	if g.session.Eyedropper() {
		pointer.CursorCrosshair.Add(gtx.Ops)
	} else {
		pointer.CursorNone.Add(gtx.Ops)
	}
	area.Pop()

	if g.dirty {
		g.imgOp = paint.NewImageOp(raster)
		g.imgOp.Filter = paint.FilterLinear
		g.dirty = false
	}
	g.drawRaster(gtx, v)
	g.drawCursor(gtx, v)

	defer op.Offset(image.Pt(0, canvas.Dy())).Push(gtx.Ops).Pop()
	inset := layout.Inset{Left: unit.Dp(8), Top: unit.Dp(4)}
	inset.Layout(gtx, func(gtx C) D {
		lbl := material.Body2(g.theme, g.statusLine())
		lbl.Color = defaultTextColor
		return lbl.Layout(gtx)
	})

	return D{Size: size}
}

// drawRaster paints the raster scaled into the viewport.
func (g *Gui) drawRaster(gtx C, v Viewport) {
	scale := float32(v.Rendered.W / float64(v.Raster.X))
	tr := f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(scale, scale)).
		Offset(f32.Pt(float32(v.Origin.X), float32(v.Origin.Y)))

	defer op.Affine(tr).Push(gtx.Ops).Pop()
	defer clip.Rect{Max: v.Raster}.Push(gtx.Ops).Pop()

	g.imgOp.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

func (g *Gui) message(gtx C, msg string, c color.NRGBA) D {
	return layout.Center.Layout(gtx, func(gtx C) D {
		lbl := material.H6(g.theme, msg)
		lbl.Color = c
		lbl.Alignment = text.Middle
		return lbl.Layout(gtx)
	})
}

func (g *Gui) statusLine() string {
	s := g.session
	b := s.Brush()

	line := fmt.Sprintf("%s  %s  radius %.0f  opacity %.0f%%",
		b.Hex(), b.Mode, b.Radius, b.Opacity*100)
	if b.Feather > 0 {
		line += fmt.Sprintf("  feather %d", b.Feather)
	}
	line += fmt.Sprintf("  history %d/%d", s.history.Cursor()+1, s.history.Len())
	if s.Eyedropper() {
		line += "  [eyedropper]"
	}
	if g.status != "" {
		line += "  " + g.status
	}
	return line
}
