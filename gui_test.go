package colorwheel

import (
	"context"
	"testing"

	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"github.com/esimov/colorwheel/imop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGui_WindowSize(t *testing.T) {
	w, h := getWindowSize(800, 600)
	assert.Equal(t, float32(800), w)
	assert.Equal(t, float32(600), h)

	w, h = getWindowSize(4000, 3000)
	assert.InDelta(t, 1024, w, 0.01)
	assert.InDelta(t, maxScreenY, h, 0.01)
}

func TestGui_Shortcuts(t *testing.T) {
	ctx := context.Background()
	s, store := newTestSession(t, newRaster(40, 40, grey))
	g := NewGUI(s)

	assert.True(t, g.command(ctx, key.NameEscape, 0))

	require.NoError(t, s.SetBrush(solidBrush(red, 4)))
	stroke(t, s, Point{X: 20, Y: 20})

	assert.False(t, g.command(ctx, "Z", key.ModShortcut))
	assert.Equal(t, grey, s.Raster().NRGBAAt(20, 20))
	g.command(ctx, "Z", key.ModShortcut|key.ModShift)
	assert.Equal(t, red, s.Raster().NRGBAAt(20, 20))
	g.command(ctx, "Z", key.ModShortcut)
	g.command(ctx, "Y", key.ModShortcut)
	assert.Equal(t, red, s.Raster().NRGBAAt(20, 20))

	g.command(ctx, "]", 0)
	assert.Equal(t, 6.0, s.Brush().Radius)
	g.command(ctx, "[", 0)
	g.command(ctx, "[", 0)
	assert.Equal(t, 2.0, s.Brush().Radius)

	g.command(ctx, "-", 0)
	assert.InDelta(t, 0.9, s.Brush().Opacity, 1e-9)
	g.command(ctx, "=", 0)
	g.command(ctx, "=", 0)
	assert.Equal(t, 1.0, s.Brush().Opacity)

	g.command(ctx, "4", 0)
	assert.Equal(t, imop.Overlay, s.Brush().Mode)
	g.command(ctx, "6", 0)
	assert.Equal(t, imop.Hue, s.Brush().Mode)

	g.command(ctx, "I", 0)
	assert.True(t, s.Eyedropper())
	g.command(ctx, "I", 0)
	assert.False(t, s.Eyedropper())

	g.command(ctx, "S", key.ModShortcut)
	assert.Equal(t, "saved", g.status)
	saved, err := store.Get(ctx, s.Project().ID)
	require.NoError(t, err)
	assert.Len(t, saved.Colors, 1)

	g.command(ctx, "R", 0)
	assert.Equal(t, grey, s.Raster().NRGBAAt(20, 20))
	assert.False(t, s.CanRedo())

	assert.Contains(t, g.statusLine(), "history 3/3")
}

func TestGui_TranslateMouse(t *testing.T) {
	s, _ := newTestSession(t, newRaster(10, 10, grey))
	g := NewGUI(s)

	_, ok := g.translate(pointer.Event{Kind: pointer.Enter, Source: pointer.Mouse})
	assert.False(t, ok)
	assert.True(t, g.cursor.visible)

	ev, ok := g.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary, Position: f32.Pt(3, 4)})
	require.True(t, ok)
	assert.Equal(t, Event{Kind: Down, Source: Mouse, Position: Point{X: 3, Y: 4}}, ev)

	_, ok = g.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonSecondary})
	assert.False(t, ok, "only the primary button paints")

	ev, ok = g.translate(pointer.Event{Kind: pointer.Drag, Source: pointer.Mouse, Position: f32.Pt(5, 5)})
	require.True(t, ok)
	assert.Equal(t, Move, ev.Kind)

	ev, ok = g.translate(pointer.Event{Kind: pointer.Leave, Source: pointer.Mouse})
	require.True(t, ok)
	assert.Equal(t, Leave, ev.Kind)
	assert.False(t, g.cursor.visible)
}

func TestGui_TranslateTouch(t *testing.T) {
	s, _ := newTestSession(t, newRaster(10, 10, grey))
	g := NewGUI(s)

	ev, ok := g.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 1, Position: f32.Pt(2, 2)})
	require.True(t, ok)
	assert.Equal(t, []Point{{X: 2, Y: 2}}, ev.Touches)

	_, ok = g.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 2})
	assert.False(t, ok, "a second finger is ignored")
	_, ok = g.translate(pointer.Event{Kind: pointer.Drag, Source: pointer.Touch, PointerID: 2})
	assert.False(t, ok)

	ev, ok = g.translate(pointer.Event{Kind: pointer.Drag, Source: pointer.Touch, PointerID: 1, Position: f32.Pt(3, 3)})
	require.True(t, ok)
	assert.Equal(t, Move, ev.Kind)

	ev, ok = g.translate(pointer.Event{Kind: pointer.Release, Source: pointer.Touch, PointerID: 1, Position: f32.Pt(3, 3)})
	require.True(t, ok)
	assert.Equal(t, Up, ev.Kind)
	assert.Empty(t, ev.Touches, "lifting the finger leaves no active touch")

	ev, ok = g.translate(pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 2})
	require.True(t, ok)
	ev, ok = g.translate(pointer.Event{Kind: pointer.Cancel, Source: pointer.Touch, PointerID: 2})
	require.True(t, ok)
	assert.Equal(t, Cancel, ev.Kind)
}
