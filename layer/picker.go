package layer

import (
	"image"

	"go.jacobcolvin.com/colordropper/input"
	"go.jacobcolvin.com/colordropper/magnifier"
	"go.jacobcolvin.com/colordropper/surface"
)

// Picker is the color picker overlay. It must be rendered after every layer
// it should sample.
type Picker struct {
	mag     *magnifier.Magnifier
	pointer input.State
}

// NewPicker creates a [Picker] around m.
func NewPicker(m *magnifier.Magnifier) *Picker {
	return &Picker{mag: m}
}

// Name implements [Layer].
func (p *Picker) Name() string { return "picker" }

// SetLens sets the lens icon of the magnifier.
func (p *Picker) SetLens(icon image.Image) {
	p.mag.SetLens(icon)
}

// Magnifier returns the wrapped magnifier.
func (p *Picker) Magnifier() *magnifier.Magnifier {
	return p.mag
}

// Update implements [Layer].
func (p *Picker) Update(f *Frame) {
	p.pointer = f.Pointer
}

// Render implements [Layer].
func (p *Picker) Render(dst surface.Surface) {
	p.mag.Render(dst, p.pointer)
}

// Commit implements [Committer].
func (p *Picker) Commit(f *Frame) {
	hex, ok := p.mag.Commit(f.Pointer)
	if !ok {
		return
	}

	f.Selected, f.Committed = hex, true
}
