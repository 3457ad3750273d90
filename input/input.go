// Package input tracks the pointer and viewport that a render loop reads
// once per tick.
//
// A [Tracker] is created once per session and handed by reference to the
// event source that writes it and to the loop that reads it. It is not safe
// for concurrent use; writers and the loop share one goroutine.
package input

import "go.jacobcolvin.com/colordropper/fit"

// State is a snapshot of the pointer.
type State struct {
	// X and Y are canvas pixel coordinates, never negative.
	X int
	Y int
	// Over is true while the pointer is within the canvas.
	Over bool
	// Active is true while a press is held.
	Active bool
}

// Snapshot is everything a tick reads from a [Tracker].
type Snapshot struct {
	Pointer  State
	Viewport fit.Viewport
}

// Tracker holds the latest pointer and viewport state.
type Tracker struct {
	pointer  State
	viewport fit.Viewport
}

// NewTracker returns a [Tracker] for a canvas of the given size with the
// pointer outside it.
func NewTracker(width, height int) *Tracker {
	t := &Tracker{}
	t.Resize(width, height)

	return t
}

// Move records a pointer position. Negative coordinates are clamped to 0.
func (t *Tracker) Move(x, y int) {
	t.pointer.X = max(x, 0)
	t.pointer.Y = max(y, 0)
}

// Enter marks the pointer as over the canvas.
func (t *Tracker) Enter() {
	t.pointer.Over = true
}

// Leave marks the pointer as outside the canvas.
func (t *Tracker) Leave() {
	t.pointer.Over = false
}

// Press starts a selection gesture.
func (t *Tracker) Press() {
	t.pointer.Active = true
}

// Release ends a selection gesture.
func (t *Tracker) Release() {
	t.pointer.Active = false
}

// Resize records new canvas dimensions. Negative values are clamped to 0.
func (t *Tracker) Resize(width, height int) {
	t.viewport = fit.Viewport{Width: max(width, 0), Height: max(height, 0)}
}

// Pointer returns the current pointer state.
func (t *Tracker) Pointer() State {
	return t.pointer
}

// Viewport returns the current canvas dimensions.
func (t *Tracker) Viewport() fit.Viewport {
	return t.viewport
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{Pointer: t.pointer, Viewport: t.viewport}
}
