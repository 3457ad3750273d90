// Package layer defines the drawable layers a scene composites each tick.
//
// Every layer is updated with the tick's [Frame] and then rendered onto the
// shared surface, in the order the scene holds them. Layers that produce
// output for the host also implement [Committer].
package layer

import (
	"go.jacobcolvin.com/colordropper/fit"
	"go.jacobcolvin.com/colordropper/input"
	"go.jacobcolvin.com/colordropper/surface"
)

// Frame is the per-tick context passed to every layer.
type Frame struct {
	// Selected is set by a [Committer] that picked a color this tick.
	Selected string
	Pointer  input.State
	Viewport fit.Viewport
	// Committed reports whether Selected was set this tick.
	Committed bool
}

// Layer is one drawable layer.
type Layer interface {
	// Name identifies the layer in logs.
	Name() string
	// Update reads the tick state before anything is drawn.
	Update(f *Frame)
	// Render draws the layer.
	Render(dst surface.Surface)
}

// Committer is a [Layer] that publishes output after rendering.
type Committer interface {
	Layer
	Commit(f *Frame)
}
