package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/esimov/colorwheel"
	"github.com/esimov/colorwheel/imop"
	"github.com/esimov/colorwheel/palette"
)

// Script is a recorded editing session replayed by the paint command.
//
//	{
//	  "viewport": {"x": 0, "y": 0, "width": 400, "height": 300},
//	  "steps": [
//	    {"brush": {"color": "Ruby Red", "radius": 12, "mode": "color"}},
//	    {"event": "down", "x": 10, "y": 10},
//	    {"event": "move", "x": 40, "y": 12},
//	    {"event": "up"},
//	    {"action": "undo"}
//	  ]
//	}
//
// Coordinates are client coordinates relative to the viewport.
// Without a viewport the raster is displayed at its natural size.
type Script struct {
	Viewport *ViewportSpec `json:"viewport,omitempty"`
	Steps    []Step        `json:"steps"`
}

// ViewportSpec places the raster on the virtual display.
type ViewportSpec struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Step is either an input event, an editor action or a brush change.
type Step struct {
	Event   string             `json:"event,omitempty"`
	Source  string             `json:"source,omitempty"`
	X       float64            `json:"x,omitempty"`
	Y       float64            `json:"y,omitempty"`
	Touches []colorwheel.Point `json:"touches,omitempty"`
	Action  string             `json:"action,omitempty"`
	Brush   *BrushSpec         `json:"brush,omitempty"`
}

// BrushSpec changes the stroke parameters. Omitted fields are left untouched.
type BrushSpec struct {
	Color   string          `json:"color,omitempty"`
	Radius  *float64        `json:"radius,omitempty"`
	Mode    *imop.BlendMode `json:"mode,omitempty"`
	Opacity *float64        `json:"opacity,omitempty"`
	Feather *int            `json:"feather,omitempty"`
}

// ReadScript decodes a gesture script.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("invalid gesture script: %w", err)
	}
	return &s, nil
}

// replayStats counts what a replay went through.
type replayStats struct {
	events, strokes, undone, redone, resets int
}

// Replay feeds the script to a ready session. Color names are resolved against reg.
func (sc *Script) Replay(s *colorwheel.Session, reg *palette.Registry) (replayStats, error) {
	var stats replayStats

	if v := sc.Viewport; v != nil {
		s.SetViewport(colorwheel.Point{X: v.X, Y: v.Y}, colorwheel.Size{W: v.Width, H: v.Height})
	}
	for i, st := range sc.Steps {
		if err := sc.step(s, reg, st, &stats); err != nil {
			return stats, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	// An unfinished stroke is committed as if the pointer was released.
	if s.State() == colorwheel.Painting {
		if err := s.Handle(colorwheel.Event{Kind: colorwheel.Up}); err != nil {
			return stats, err
		}
		stats.strokes++
	}
	return stats, nil
}

func (sc *Script) step(s *colorwheel.Session, reg *palette.Registry, st Step, stats *replayStats) error {
	if st.Brush != nil {
		if err := applyBrush(s, reg, st.Brush); err != nil {
			return err
		}
	}

	switch strings.ToLower(st.Action) {
	case "":
	case "undo":
		ok, err := s.Undo()
		if ok {
			stats.undone++
		}
		return err
	case "redo":
		ok, err := s.Redo()
		if ok {
			stats.redone++
		}
		return err
	case "reset":
		stats.resets++
		return s.Reset()
	case "eyedropper", "pick":
		s.SetEyedropper(true)
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}

	if st.Event == "" {
		return nil
	}
	ev, err := st.event()
	if err != nil {
		return err
	}
	painting := s.State() == colorwheel.Painting
	if err := s.Handle(ev); err != nil {
		return err
	}
	stats.events++
	if painting && s.State() == colorwheel.Idle {
		stats.strokes++
	}
	return nil
}

// event converts the step into an input event.
// Touch steps without explicit touches use x and y as the first touch,
// except for the events ending a touch, which carry none.
func (st Step) event() (colorwheel.Event, error) {
	kind, err := colorwheel.ParseEventKind(strings.ToLower(st.Event))
	if err != nil {
		return colorwheel.Event{}, err
	}
	pos := colorwheel.Point{X: st.X, Y: st.Y}

	switch strings.ToLower(st.Source) {
	case "", "mouse":
		return colorwheel.Event{Kind: kind, Source: colorwheel.Mouse, Position: pos}, nil
	case "touch":
		ev := colorwheel.Event{Kind: kind, Source: colorwheel.Touch, Touches: st.Touches}
		if ev.Touches == nil && (kind == colorwheel.Down || kind == colorwheel.Move) {
			ev.Touches = []colorwheel.Point{pos}
		}
		return ev, nil
	}
	return colorwheel.Event{}, fmt.Errorf("unknown event source %q", st.Source)
}

func applyBrush(s *colorwheel.Session, reg *palette.Registry, b *BrushSpec) error {
	if b.Color != "" {
		hex, err := reg.Resolve(b.Color)
		if err != nil {
			return err
		}
		if err := s.SetColor(hex); err != nil {
			return err
		}
	}
	if b.Radius != nil {
		s.SetRadius(*b.Radius)
	}
	if b.Mode != nil {
		if err := s.SetMode(*b.Mode); err != nil {
			return err
		}
	}
	if b.Opacity != nil {
		s.SetOpacity(*b.Opacity)
	}
	if b.Feather != nil {
		s.SetFeather(*b.Feather)
	}
	return nil
}
