// Package magnifier implements a magnifying color picker.
//
// Each frame the [Magnifier] samples the pixels around the pointer from an
// already rendered [surface.Surface], draws them enlarged inside a circular
// lens, and reports the color under the pointer while it is pressed.
package magnifier

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.jacobcolvin.com/colordropper/hexcolor"
	"go.jacobcolvin.com/colordropper/input"
	"go.jacobcolvin.com/colordropper/surface"
)

// ErrInvalidOptions indicates [Options] that cannot produce a lens.
var ErrInvalidOptions = errors.New("invalid magnifier options")

// State is the interaction state of a [Magnifier].
type State int

const (
	// Idle means nothing is drawn or sampled.
	Idle State = iota
	// Hovering means the lens is drawn but nothing is committed.
	Hovering
	// Active means the lens is drawn and the center color is committed.
	Active
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case Active:
		return "active"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// LabelOptions configures the hex label drawn under the lens.
type LabelOptions struct {
	Background color.Color
	Text       color.Color
	// Padding is added to the measured text width.
	Padding float64
	Height  float64
	Radius  float64
	// Offset places the label's vertical center at Offset times the lens
	// diameter below the lens origin.
	Offset  float64
	Enabled bool
}

// Options configures a [Magnifier].
type Options struct {
	Background color.Color
	Frame      color.Color
	Label      LabelOptions
	// MaxPixelCount is the side of the sampled square. It must be odd so a
	// center pixel exists.
	MaxPixelCount int
	StrokeSize    float64
	SeparatorSize float64
}

// DefaultOptions returns a 13 pixel lens with an 11 pixel rim and a label.
func DefaultOptions() Options {
	return Options{
		MaxPixelCount: 13,
		StrokeSize:    11,
		SeparatorSize: 1,
		Background:    color.White,
		Frame:         color.Black,
		Label: LabelOptions{
			Enabled:    true,
			Padding:    16,
			Height:     20,
			Radius:     10,
			Offset:     0.75,
			Background: hexcolor.MustParse("#dddddd"),
			Text:       color.Black,
		},
	}
}

// Validate checks that o can produce a lens.
func (o Options) Validate() error {
	if o.MaxPixelCount < 1 || o.MaxPixelCount%2 == 0 {
		return fmt.Errorf("%w: pixel count %d must be a positive odd number", ErrInvalidOptions, o.MaxPixelCount)
	}

	if o.StrokeSize < 0 || o.SeparatorSize < 0 {
		return fmt.Errorf("%w: stroke and separator sizes must not be negative", ErrInvalidOptions)
	}

	return nil
}

// Magnifier samples and draws the lens. It is not safe for concurrent use.
type Magnifier struct {
	lens  image.Image
	grid  Grid
	opts  Options
	state State
}

// New creates a [Magnifier]. It stays [Idle] until [Magnifier.SetLens] is
// called.
func New(opts Options) (*Magnifier, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	return &Magnifier{opts: opts}, nil
}

// SetLens sets the lens icon. Its natural width is the lens diameter. A nil
// icon makes the magnifier idle again.
func (m *Magnifier) SetLens(icon image.Image) {
	m.lens = icon
}

// LensReady reports whether a lens icon is set.
func (m *Magnifier) LensReady() bool {
	return m.lens != nil
}

// State returns the state decided by the last [Magnifier.Render].
func (m *Magnifier) State() State {
	return m.state
}

// Grid returns the samples taken by the last [Magnifier.Render]. It is empty
// while the magnifier is idle.
func (m *Magnifier) Grid() Grid {
	return m.grid
}

// Options returns the options the magnifier was created with.
func (m *Magnifier) Options() Options {
	return m.opts
}

// Layout returns the lens layout for pointer p, or false without a lens icon.
func (m *Magnifier) Layout(p input.State) (Lens, bool) {
	if m.lens == nil {
		return Lens{}, false
	}

	b := m.lens.Bounds()

	return Lens{
		X:         float64(p.X),
		Y:         float64(p.Y),
		Width:     float64(b.Dx()),
		Height:    float64(b.Dy()),
		Stroke:    m.opts.StrokeSize,
		Separator: m.opts.SeparatorSize,
		Count:     m.opts.MaxPixelCount,
	}, true
}

// Render samples dst around the pointer and draws the lens over it.
//
// Without a lens icon, or with the pointer outside the canvas, it draws
// nothing and discards the previous samples.
func (m *Magnifier) Render(dst surface.Surface, p input.State) {
	l, ok := m.Layout(p)
	if !ok || !p.Over {
		m.state = Idle
		m.grid = Grid{}

		return
	}

	m.state = Hovering
	if p.Active {
		m.state = Active
	}

	grid, err := Sample(dst, p.X, p.Y, m.opts.MaxPixelCount)
	if err != nil {
		// Only reachable with a surface that violates PixelSource.
		m.grid = Grid{}

		return
	}

	m.grid = grid

	m.drawCells(dst, l)

	ox, oy := l.Origin()
	dst.DrawImage(m.lens, ox, oy, l.Width, l.Height)

	center := grid.Center()
	r, w := l.Ring()
	dst.StrokeCircle(l.X, l.Y, r, w, center.Opaque())

	if m.opts.Label.Enabled {
		m.drawLabel(dst, l, center.Hex())
	}
}

func (m *Magnifier) drawCells(dst surface.Surface, l Lens) {
	dst.FillCircle(l.X, l.Y, l.BackgroundRadius(), m.opts.Background)

	n := m.grid.Size()
	size := l.CellSize()

	for row := range n {
		for col, px := range m.grid.Row(row) {
			if !l.Visible(row, col) {
				continue
			}

			x, y := l.Cell(row, col)
			dst.FillRect(x, y, size, size, px.Opaque())
		}
	}

	x, y := l.Cell(n/2, n/2)
	dst.StrokeRect(x, y, size, size, m.opts.SeparatorSize, m.opts.Frame)
}

func (m *Magnifier) drawLabel(dst surface.Surface, l Lens, text string) {
	lo := m.opts.Label
	tw, _ := dst.MeasureText(text)
	x, y, w, h := l.LabelRect(tw, lo)

	dst.FillRoundedRect(x, y, w, h, lo.Radius, lo.Background)
	dst.DrawText(text, x+w/2, y+h/2, lo.Text)
}

// Commit returns the hex color of the center sample while p is pressed.
//
// It reports false when the grid is empty or p is not active. Holding the
// press republishes the same color on every call.
func (m *Magnifier) Commit(p input.State) (string, bool) {
	if m.grid.Empty() || !p.Active {
		return "", false
	}

	return m.grid.Center().Hex(), true
}
