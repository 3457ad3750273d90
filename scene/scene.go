// Package scene composites the layers of a color picking session.
//
// A [Scene] owns the canvas, the input tracker and the layers. The host
// writes pointer and viewport changes into [Scene.Input] and calls
// [Scene.Tick] once per frame; each tick reads one snapshot of the input,
// redraws the canvas from scratch and reports the picked color, if any.
package scene

import (
	"fmt"
	"image"
	"log/slog"

	"go.jacobcolvin.com/colordropper/fit"
	"go.jacobcolvin.com/colordropper/input"
	"go.jacobcolvin.com/colordropper/layer"
	"go.jacobcolvin.com/colordropper/magnifier"
	"go.jacobcolvin.com/colordropper/surface"
)

// Options configures a [Scene].
type Options struct {
	Background layer.BackgroundOptions
	Magnifier  magnifier.Options
	// Canvas options are applied when the canvas is created.
	Canvas []surface.Option
}

// DefaultOptions returns the default background and magnifier.
func DefaultOptions() Options {
	return Options{
		Background: layer.DefaultBackgroundOptions(),
		Magnifier:  magnifier.DefaultOptions(),
	}
}

// Result is the outcome of one [Scene.Tick].
type Result struct {
	// Selected is the picked color while the pointer is pressed.
	Selected string
	// Committed reports whether Selected was set by this tick.
	Committed bool
	// Changed reports whether Selected differs from the previous committed
	// color.
	Changed bool
}

// Scene renders a background, an image and a color picker onto one canvas.
// It is not safe for concurrent use.
type Scene struct {
	canvas     *surface.Canvas
	input      *input.Tracker
	log        *slog.Logger
	background *layer.Background
	image      *layer.Image
	picker     *layer.Picker
	selected   string
	pickerOn   bool
}

// New creates a [Scene] with a canvas of the given size. The picker starts
// enabled but stays idle until a lens is set.
func New(width, height int, opts Options, logger *slog.Logger) (*Scene, error) {
	c, err := surface.New(width, height, opts.Canvas...)
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}

	m, err := magnifier.New(opts.Magnifier)
	if err != nil {
		return nil, err
	}

	return &Scene{
		canvas:     c,
		input:      input.NewTracker(width, height),
		log:        logger,
		background: layer.NewBackground(opts.Background),
		image:      layer.NewImage(logger),
		picker:     layer.NewPicker(m),
		pickerOn:   true,
	}, nil
}

// Input returns the tracker the host writes pointer events into.
func (s *Scene) Input() *input.Tracker {
	return s.input
}

// Canvas returns the rendered canvas.
func (s *Scene) Canvas() *surface.Canvas {
	return s.canvas
}

// Resize changes the canvas and viewport size. The canvas is cleared.
func (s *Scene) Resize(width, height int) {
	s.input.Resize(width, height)
	s.canvas.Resize(width, height)
	s.log.Debug("resized canvas", slog.Int("width", width), slog.Int("height", height))
}

// SetImage replaces the displayed image.
func (s *Scene) SetImage(img image.Image) {
	s.image.SetImage(img)

	if img != nil {
		b := img.Bounds()
		s.log.Info("image ready", slog.Int("width", b.Dx()), slog.Int("height", b.Dy()))
	}
}

// SetLens sets the magnifier lens icon.
func (s *Scene) SetLens(icon image.Image) {
	s.picker.SetLens(icon)
}

// Geometry returns the current image placement, if the image is placed.
func (s *Scene) Geometry() (fit.Geometry, bool) {
	return s.image.Geometry()
}

// Magnifier returns the picker's magnifier.
func (s *Scene) Magnifier() *magnifier.Magnifier {
	return s.picker.Magnifier()
}

// EnablePicker shows the picker from the next tick on.
func (s *Scene) EnablePicker() {
	s.pickerOn = true
}

// DisablePicker hides the picker from the next tick on.
func (s *Scene) DisablePicker() {
	s.pickerOn = false
}

// TogglePicker flips the picker and returns the new setting.
func (s *Scene) TogglePicker() bool {
	s.pickerOn = !s.pickerOn

	return s.pickerOn
}

// PickerEnabled reports whether the picker is shown.
func (s *Scene) PickerEnabled() bool {
	return s.pickerOn
}

// SelectedColor returns the last committed color, or "" if none.
func (s *Scene) SelectedColor() string {
	return s.selected
}

// Layers returns the layers drawn on the next tick, bottom first.
func (s *Scene) Layers() []layer.Layer {
	layers := []layer.Layer{s.background, s.image}
	if s.pickerOn {
		layers = append(layers, s.picker)
	}

	return layers
}

// Tick renders one frame and commits the picked color.
func (s *Scene) Tick() Result {
	snap := s.input.Snapshot()
	f := &layer.Frame{Pointer: snap.Pointer, Viewport: snap.Viewport}
	layers := s.Layers()

	for _, l := range layers {
		l.Update(f)
	}

	s.canvas.Clear()

	for _, l := range layers {
		l.Render(s.canvas)
	}

	for _, l := range layers {
		if c, ok := l.(layer.Committer); ok {
			c.Commit(f)
		}
	}

	if !f.Committed {
		return Result{}
	}

	res := Result{Selected: f.Selected, Committed: true, Changed: f.Selected != s.selected}
	if res.Changed {
		s.log.Info("color selected", slog.String("color", f.Selected))
	}

	s.selected = f.Selected

	return res
}
