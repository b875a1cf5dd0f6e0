package colorwheel

import (
	"fmt"
	"image"
)

// Snapshot is an immutable copy of the raster pixels at one point in time.
// It never aliases the live raster buffer.
type Snapshot struct {
	rect image.Rectangle
	pix  []uint8
}

// NewSnapshot copies the pixels of the raster.
func NewSnapshot(img *image.NRGBA) Snapshot {
	r := img.Bounds()
	w := r.Dx() * 4
	pix := make([]uint8, w*r.Dy())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		copy(pix[(y-r.Min.Y)*w:], img.Pix[i:i+w])
	}
	return Snapshot{rect: r, pix: pix}
}

// Bounds returns the dimensions of the captured raster.
func (s Snapshot) Bounds() image.Rectangle {
	return s.rect
}

// Restore overwrites every pixel of the raster with the snapshot content.
// The raster never resizes during a session, so a dimension mismatch is a programming error and panics.
func (s Snapshot) Restore(dst *image.NRGBA) {
	r := dst.Bounds()
	if r.Size() != s.rect.Size() {
		panic(fmt.Sprintf("colorwheel: restoring a %v snapshot onto a %v raster", s.rect.Size(), r.Size()))
	}
	w := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		i := dst.PixOffset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[i:i+w], s.pix[y*w:(y+1)*w])
	}
}

// Image returns a fresh raster holding the snapshot pixels.
func (s Snapshot) Image() *image.NRGBA {
	img := image.NewNRGBA(s.rect)
	s.Restore(img)
	return img
}

// History is a linear undo/redo stack of raster snapshots.
// The cursor always points at the snapshot matching the live raster, or is -1 when empty.
// Pushing while the cursor is not at the end discards the redo branch.
type History struct {
	snaps  []Snapshot
	cursor int
	limit  int
}

// NewHistory creates an empty history. A positive limit caps the number of retained
// snapshots by dropping the oldest ones; zero means unlimited.
func NewHistory(limit int) *History {
	return &History{
		cursor: -1,
		limit:  max(limit, 0),
	}
}

// Push appends the snapshot after the cursor, truncating any snapshot past it.
func (h *History) Push(s Snapshot) {
	if h.cursor < len(h.snaps)-1 {
		clear(h.snaps[h.cursor+1:])
		h.snaps = h.snaps[:h.cursor+1]
	}
	h.snaps = append(h.snaps, s)
	h.cursor = len(h.snaps) - 1

	if h.limit > 0 && len(h.snaps) > h.limit {
		drop := len(h.snaps) - h.limit
		h.snaps = append([]Snapshot(nil), h.snaps[drop:]...)
		h.cursor = max(h.cursor-drop, 0)
	}
}

// Undo moves the cursor back and returns the snapshot to restore.
// It is a no-op returning false when there is nothing to undo.
func (h *History) Undo() (Snapshot, bool) {
	if h.cursor <= 0 {
		return Snapshot{}, false
	}
	h.cursor--
	return h.snaps[h.cursor], true
}

// Redo moves the cursor forward and returns the snapshot to restore.
// It is a no-op returning false when there is nothing to redo.
func (h *History) Redo() (Snapshot, bool) {
	if h.cursor >= len(h.snaps)-1 {
		return Snapshot{}, false
	}
	h.cursor++
	return h.snaps[h.cursor], true
}

// CanUndo reports whether Undo would change the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether Redo would change the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snaps)-1
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snaps)
}

// Cursor returns the index of the current snapshot, or -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}

// Current returns the snapshot under the cursor.
func (h *History) Current() (Snapshot, bool) {
	if h.cursor < 0 {
		return Snapshot{}, false
	}
	return h.snaps[h.cursor], true
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.snaps = nil
	h.cursor = -1
}
