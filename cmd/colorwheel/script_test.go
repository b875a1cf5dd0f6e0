package main

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/esimov/colorwheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadScript(t *testing.T, s string) *Script {
	t.Helper()
	sc, err := ReadScript(strings.NewReader(s))
	require.NoError(t, err)
	return sc
}

func newScriptSession(t *testing.T, e *testEnv, w, h int) *colorwheel.Session {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, dir+"/src.png", w, h)
	id := firstField(e.run(t, "new", dir+"/src.png"))

	s, err := e.loadSession(context.Background(), id)
	require.NoError(t, err)
	return s
}

func TestScript_ReplayUndoRedo(t *testing.T) {
	e := newTestEnv(t)
	s := newScriptSession(t, e, 40, 40)

	sc := loadScript(t, `{
		"steps": [
			{"brush": {"color": "#FF0000", "radius": 4, "opacity": 1}},
			{"event": "down", "x": 10, "y": 10},
			{"event": "move", "x": 30, "y": 10},
			{"event": "up"},
			{"event": "down", "x": 10, "y": 30},
			{"event": "up"},
			{"action": "undo"},
			{"action": "undo"},
			{"action": "redo"}
		]
	}`)
	stats, err := sc.Replay(s, e.palettes)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.strokes)
	assert.Equal(t, 2, stats.undone)
	assert.Equal(t, 1, stats.redone)
	assert.Equal(t, 3, s.HistoryLen())

	red := color.NRGBA{R: 0xff, A: 0xff}
	assert.Equal(t, red, s.Raster().NRGBAAt(10, 10))
	assert.Equal(t, red, s.Raster().NRGBAAt(30, 10))
	assert.Equal(t, grey, s.Raster().NRGBAAt(10, 30))
}

func TestScript_ViewportAndTouch(t *testing.T) {
	e := newTestEnv(t)
	s := newScriptSession(t, e, 100, 100)

	// The raster is displayed at half size, shifted by (10, 10).
	sc := loadScript(t, `{
		"viewport": {"x": 10, "y": 10, "width": 50, "height": 50},
		"steps": [
			{"brush": {"color": "#00FF00", "radius": 3, "opacity": 1}},
			{"event": "down", "source": "touch", "x": 35, "y": 35},
			{"event": "up", "source": "touch"}
		]
	}`)
	stats, err := sc.Replay(s, e.palettes)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.strokes)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, s.Raster().NRGBAAt(50, 50))
}

func TestScript_CommitsUnfinishedStroke(t *testing.T) {
	e := newTestEnv(t)
	s := newScriptSession(t, e, 20, 20)

	sc := loadScript(t, `{"steps": [{"event": "down", "x": 10, "y": 10}]}`)
	stats, err := sc.Replay(s, e.palettes)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.strokes)
	assert.Equal(t, colorwheel.Idle, s.State())
	assert.Equal(t, 2, s.HistoryLen())
}

func TestScript_Eyedropper(t *testing.T) {
	e := newTestEnv(t)
	s := newScriptSession(t, e, 20, 20)

	sc := loadScript(t, `{"steps": [{"action": "eyedropper"}, {"event": "down", "x": 5, "y": 5}, {"event": "up"}]}`)
	_, err := sc.Replay(s, e.palettes)
	require.NoError(t, err)
	assert.Equal(t, "#808080", s.Brush().Hex())
	assert.Equal(t, 1, s.HistoryLen(), "picking a color is not a stroke")
}

func TestScript_Errors(t *testing.T) {
	_, err := ReadScript(strings.NewReader(`{"steps": [], "unknown": true}`))
	assert.Error(t, err)

	e := newTestEnv(t)
	s := newScriptSession(t, e, 10, 10)

	for _, doc := range []string{
		`{"steps": [{"action": "fly"}]}`,
		`{"steps": [{"event": "hover"}]}`,
		`{"steps": [{"event": "down", "source": "pen"}]}`,
		`{"steps": [{"brush": {"color": "Unobtainium"}}]}`,
		`{"steps": [{"brush": {"mode": "dissolve"}}]}`,
	} {
		sc, err := ReadScript(strings.NewReader(doc))
		if err != nil {
			continue
		}
		_, err = sc.Replay(s, e.palettes)
		assert.Error(t, err, doc)
	}
}
