package colorwheel

import "fmt"

// EventKind is the phase of a pointer or touch gesture.
type EventKind uint8

const (
	Down EventKind = iota
	Move
	Up
	Cancel
	Leave
)

var eventNames = [...]string{
	Down:   "down",
	Move:   "move",
	Up:     "up",
	Cancel: "cancel",
	Leave:  "leave",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// ParseEventKind returns the event kind by its name.
func ParseEventKind(name string) (EventKind, error) {
	for i, n := range eventNames {
		if n == name {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", name)
}

// InputSource tells apart mouse-like pointers from touch screens.
type InputSource uint8

const (
	Mouse InputSource = iota
	Touch
)

// Event is a single input event expressed in client (display) coordinates.
//
// Mouse events carry their position in Position. Touch events carry the
// currently active touch points in Touches; only the first one is used.
// A touch event without active touches (as delivered on touchend) has no coordinate.
type Event struct {
	Kind     EventKind
	Source   InputSource
	Position Point
	Touches  []Point
}

// ends reports whether the event terminates a stroke.
func (e Event) ends() bool {
	return e.Kind == Up || e.Kind == Cancel || e.Kind == Leave
}
