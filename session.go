package colorwheel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"maps"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/colorwheel/imop"
	"github.com/esimov/colorwheel/project"
	"github.com/esimov/colorwheel/utils"
	"github.com/sirupsen/logrus"
)

// ErrNotReady is returned by the operations requiring a decoded raster before the baseline exists.
var ErrNotReady = errors.New("colorwheel: raster not initialized")

// State is the gesture state of an editor session.
type State uint8

const (
	// Uninitialized means the source image has not been decoded yet.
	Uninitialized State = iota
	// Idle waits for the next pointer or touch down.
	Idle
	// Painting means a stroke is in progress.
	Painting
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Idle:
		return "idle"
	case Painting:
		return "painting"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the logger of the session.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// WithHistoryLimit caps the number of retained snapshots. Zero means unlimited.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.limit = n }
}

// WithBrush sets the initial stroke parameters.
func WithBrush(b Brush) Option {
	return func(s *Session) { s.brush = b }
}

// WithClock replaces the time source used for region ids and exports.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is an editing session over a single project.
//
// It owns the raster and its history. All methods must be called from a single goroutine,
// except DecodeSource which may run anywhere and whose result is handed over through Attach.
type Session struct {
	log   logrus.FieldLogger
	now   func() time.Time
	saver project.Saver
	limit int

	project *project.Project
	source  string

	state    State
	raster   *image.NRGBA
	history  *History
	viewport Viewport

	brush      Brush
	eyedropper bool
	regions    map[string]string
}

// NewSession creates a session editing p. The saved result is handed to saver.
// The session stays Uninitialized until Load or Attach succeeds.
func NewSession(p *project.Project, saver project.Saver, opts ...Option) *Session {
	s := &Session{
		log:     logrus.StandardLogger(),
		now:     time.Now,
		saver:   saver,
		project: p.Clone(),
		source:  p.Image,
		brush:   DefaultBrush(),
		regions: maps.Clone(p.Colors),
	}
	if s.regions == nil {
		s.regions = map[string]string{}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("project_id", p.ID)
	return s
}

// Source returns the encoded source image the session was started with.
func (s *Session) Source() string {
	return s.source
}

// Load decodes the project image synchronously and attaches the result.
func (s *Session) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := DecodeSource(s.source)
	if err != nil {
		s.log.WithError(err).Error("unable to decode the source image")
		return fmt.Errorf("unable to load project %s: %w", s.project.ID, err)
	}
	return s.Attach(src)
}

// Attach installs a decoded source image as the live raster, starts a new history
// and pushes the baseline snapshot. Attaching again restarts the session.
func (s *Session) Attach(src Source) error {
	if src.Image == nil || src.Image.Bounds().Empty() {
		return fmt.Errorf("%w: empty raster", ErrUnsupportedImage)
	}
	s.raster = imaging.Clone(src.Image)

	s.history = NewHistory(s.limit)
	s.history.Push(NewSnapshot(s.raster))

	size := s.raster.Bounds().Size()
	if s.viewport.Raster != size {
		s.viewport = NewViewport(size)
	}
	s.eyedropper = false
	s.state = Idle

	s.log.WithFields(logrus.Fields{
		"width":  size.X,
		"height": size.Y,
		"format": src.Format,
	}).Debug("raster attached")
	return nil
}

// State returns the current gesture state.
func (s *Session) State() State {
	return s.state
}

// Ready reports whether the baseline snapshot exists.
func (s *Session) Ready() bool {
	return s.state != Uninitialized
}

// Raster returns the live raster. Callers must treat it as read-only.
func (s *Session) Raster() *image.NRGBA {
	return s.raster
}

// Project returns a copy of the project as last saved.
func (s *Session) Project() *project.Project {
	return s.project.Clone()
}

// Regions returns a copy of the legacy region to color mapping.
func (s *Session) Regions() map[string]string {
	return maps.Clone(s.regions)
}

// Viewport returns the current display geometry.
func (s *Session) Viewport() Viewport {
	return s.viewport
}

// SetViewport updates the on-screen position and size of the raster.
// The raster dimensions always come from the live raster.
func (s *Session) SetViewport(origin Point, rendered Size) {
	s.viewport.Origin = origin
	s.viewport.Rendered = rendered
	if s.raster != nil {
		s.viewport.Raster = s.raster.Bounds().Size()
	}
}

// Brush returns the current stroke parameters.
func (s *Session) Brush() Brush {
	return s.brush
}

// SetBrush replaces the stroke parameters.
func (s *Session) SetBrush(b Brush) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.brush = b
	return nil
}

// SetColor sets the paint color from a hex string.
func (s *Session) SetColor(hex string) error {
	return s.brush.SetHex(hex)
}

// SetRadius sets the brush radius, clamped to the supported range.
func (s *Session) SetRadius(r float64) {
	s.brush.Radius = utils.Clamp(r, MinRadius, MaxRadius)
}

// SetMode sets the blend mode.
func (s *Session) SetMode(m imop.BlendMode) error {
	if !m.Valid() {
		return fmt.Errorf("blend mode %v not supported", m)
	}
	s.brush.Mode = m
	return nil
}

// SetOpacity sets the brush opacity, clamped to [0, 1].
func (s *Session) SetOpacity(o float64) {
	s.brush.Opacity = utils.Clamp(o, 0, 1)
}

// SetFeather sets the brush edge softness in pixels, clamped to the supported range.
func (s *Session) SetFeather(f int) {
	s.brush.Feather = utils.Clamp(f, 0, MaxRadius)
}

// SetEyedropper arms or disarms the eyedropper for the next down event.
func (s *Session) SetEyedropper(on bool) {
	s.eyedropper = on
}

// Eyedropper reports whether the next down event samples a color instead of painting.
func (s *Session) Eyedropper() bool {
	return s.eyedropper
}

// Handle feeds one input event to the gesture state machine.
// Events arriving before the raster is ready are rejected with ErrNotReady.
func (s *Session) Handle(ev Event) error {
	if s.state == Uninitialized {
		return ErrNotReady
	}
	p, ok := Map(ev, s.viewport)

	switch s.state {
	case Idle:
		if ev.Kind != Down || !ok {
			return nil
		}
		if s.eyedropper {
			s.pick(p)
			return nil
		}
		s.state = Painting
		Paint(s.raster, p, s.brush)
	case Painting:
		switch {
		case ev.ends():
			s.commit()
		case ok:
			Paint(s.raster, p, s.brush)
		}
	}
	return nil
}

// pick samples the raster at p into the brush color. The eyedropper is single-shot:
// it is disarmed even when p falls outside the raster.
func (s *Session) pick(p Point) {
	s.eyedropper = false
	hex, ok := Sample(s.raster, p)
	if !ok {
		return
	}
	if err := s.brush.SetHex(hex); err != nil {
		return
	}
	s.log.WithField("color", hex).Debug("color picked")
}

// commit ends the stroke in progress.
func (s *Session) commit() {
	s.history.Push(NewSnapshot(s.raster))
	s.regions[s.regionID()] = s.brush.Hex()
	s.state = Idle

	s.log.WithFields(logrus.Fields{
		"history": s.history.Len(),
		"brush":   s.brush.String(),
	}).Debug("stroke committed")
}

// regionID returns a new legacy region identifier.
func (s *Session) regionID() string {
	id := "area_" + strconv.FormatInt(s.now().UnixMilli(), 10)
	if _, ok := s.regions[id]; !ok {
		return id
	}
	for i := 1; ; i++ {
		alt := id + "_" + strconv.Itoa(i)
		if _, ok := s.regions[alt]; !ok {
			return alt
		}
	}
}

// CanUndo reports whether Undo would change the raster.
func (s *Session) CanUndo() bool {
	return s.state != Uninitialized && s.history.CanUndo()
}

// CanRedo reports whether Redo would change the raster.
func (s *Session) CanRedo() bool {
	return s.state != Uninitialized && s.history.CanRedo()
}

// HistoryLen returns the number of snapshots in the history.
func (s *Session) HistoryLen() int {
	if s.history == nil {
		return 0
	}
	return s.history.Len()
}

// Undo restores the previous snapshot. A stroke in progress is committed first.
// It returns false when there was nothing to undo.
func (s *Session) Undo() (bool, error) {
	if s.state == Uninitialized {
		return false, ErrNotReady
	}
	if s.state == Painting {
		s.commit()
	}
	snap, ok := s.history.Undo()
	if !ok {
		return false, nil
	}
	snap.Restore(s.raster)
	s.log.WithField("cursor", s.history.Cursor()).Debug("undo")
	return true, nil
}

// Redo restores the next snapshot. It returns false when there was nothing to redo.
func (s *Session) Redo() (bool, error) {
	if s.state == Uninitialized {
		return false, ErrNotReady
	}
	if s.state == Painting {
		s.commit()
	}
	snap, ok := s.history.Redo()
	if !ok {
		return false, nil
	}
	snap.Restore(s.raster)
	s.log.WithField("cursor", s.history.Cursor()).Debug("redo")
	return true, nil
}

// Reset decodes the source image again into the raster and pushes it as a fresh baseline,
// discarding any redo branch. A stroke in progress is dropped.
func (s *Session) Reset() error {
	if s.state == Uninitialized {
		return ErrNotReady
	}
	src, err := DecodeSource(s.source)
	if err != nil {
		s.log.WithError(err).Error("unable to decode the source image")
		return fmt.Errorf("unable to reset project %s: %w", s.project.ID, err)
	}
	NewSnapshot(src.Image).Restore(s.raster)
	s.history.Push(NewSnapshot(s.raster))
	s.state = Idle

	s.log.WithField("history", s.history.Len()).Debug("reset to source")
	return nil
}

// Save encodes the raster as it is right now into a PNG data URL and hands the project,
// together with the legacy region mapping, to the project store.
// The encoding is lossless whatever the source format was, so the stored image
// holds exactly the visible pixels and repeated saves do not degrade it.
func (s *Session) Save(ctx context.Context) (*project.Project, error) {
	if s.state == Uninitialized {
		return nil, ErrNotReady
	}
	data, err := EncodeDataURL(s.raster, imaging.PNG)
	if err != nil {
		return nil, err
	}

	p := s.project.Clone()
	p.Image = data
	p.Colors = maps.Clone(s.regions)

	if err := s.saver.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("unable to save project %s: %w", p.ID, err)
	}
	s.project = p.Clone()

	s.log.WithField("image_length", len(data)).Debug("project saved")
	return p, nil
}
