package magnifier

import (
	"image"
	"math"

	"github.com/fogleman/gg"

	"go.jacobcolvin.com/colordropper/hexcolor"
)

// ringWidthFactor and ringInsetFactor size the selection ring relative to
// the stroke.
const (
	ringWidthFactor = 0.7
	ringInsetFactor = 0.8
)

// Lens is the layout of the magnifier for one frame. It is computed from the
// pointer position, the lens icon's natural size and the [Options].
type Lens struct {
	// X and Y are the pointer position the lens is centered on.
	X, Y float64
	// Width and Height are the natural size of the lens icon. Width is the
	// lens diameter.
	Width, Height float64
	Stroke        float64
	Separator     float64
	Count         int
}

// Diameter returns the lens diameter.
func (l Lens) Diameter() float64 {
	return l.Width
}

// Origin returns the top-left corner of the lens icon.
func (l Lens) Origin() (float64, float64) {
	return l.X - l.Width/2, l.Y - l.Height/2
}

// CellSize returns the side of one magnified pixel.
func (l Lens) CellSize() float64 {
	return (l.Width - 2*l.Stroke) / float64(l.Count)
}

// Cell returns the top-left corner of the square for grid cell (row, col).
func (l Lens) Cell(row, col int) (float64, float64) {
	ox, oy := l.Origin()
	s := l.CellSize()

	return ox + l.Stroke + float64(col)*s + l.Separator,
		oy + l.Stroke + float64(row)*s + l.Separator
}

// Visible reports whether the center of cell (row, col) is inside the lens
// circle, so the cell is drawn.
func (l Lens) Visible(row, col int) bool {
	x, y := l.Cell(row, col)
	half := l.CellSize() / 2

	return math.Hypot(x+half-l.X, y+half-l.Y) <= (l.Width-l.Stroke)/2
}

// BackgroundRadius returns the radius of the filled disc behind the cells.
func (l Lens) BackgroundRadius() float64 {
	return l.Width/2 - l.Stroke
}

// Ring returns the radius and line width of the selection ring.
func (l Lens) Ring() (float64, float64) {
	return (l.Width - 2*l.Stroke*ringInsetFactor) / 2, l.Stroke * ringWidthFactor
}

// LabelRect returns the label box for text of the given width. The box is
// centered horizontally on the lens and vertically at offset times the
// diameter below the lens origin.
func (l Lens) LabelRect(textWidth float64, opts LabelOptions) (float64, float64, float64, float64) {
	ox, oy := l.Origin()
	w := textWidth + opts.Padding
	h := opts.Height

	return ox + l.Width/2 - w/2, oy + l.Width*opts.Offset - h/2, w, h
}

// LensIcon draws a ring-shaped lens icon of the given diameter whose band is
// stroke pixels wide. The inside of the ring is transparent.
func LensIcon(diameter, stroke int) image.Image {
	dc := gg.NewContext(diameter, diameter)
	d := float64(diameter)
	s := float64(stroke)
	c := d / 2

	dc.DrawCircle(c, c, c-s/2)
	dc.SetColor(hexcolor.MustParse("#f4f4f4"))
	dc.SetLineWidth(s)
	dc.Stroke()

	dc.SetColor(hexcolor.MustParse("#5a5a5a"))
	dc.SetLineWidth(1)
	dc.DrawCircle(c, c, c-0.5)
	dc.Stroke()
	dc.DrawCircle(c, c, c-s+0.5)
	dc.Stroke()

	return dc.Image()
}
