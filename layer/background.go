package layer

import (
	"image/color"

	"go.jacobcolvin.com/colordropper/hexcolor"
	"go.jacobcolvin.com/colordropper/surface"
)

// BackgroundOptions configures a [Background].
type BackgroundOptions struct {
	Light      color.Color
	Dark       color.Color
	SquareSize int
}

// DefaultBackgroundOptions returns a 10 pixel white and gray checkerboard.
func DefaultBackgroundOptions() BackgroundOptions {
	return BackgroundOptions{
		SquareSize: 10,
		Light:      hexcolor.MustParse("#ffffff"),
		Dark:       hexcolor.MustParse("#a4a4a4"),
	}
}

// Background draws a checkerboard behind transparent image regions.
type Background struct {
	opts          BackgroundOptions
	width, height int
}

// NewBackground creates a [Background]. Square sizes below 1 become 1.
func NewBackground(opts BackgroundOptions) *Background {
	opts.SquareSize = max(opts.SquareSize, 1)

	return &Background{opts: opts}
}

// Name implements [Layer].
func (b *Background) Name() string { return "background" }

// Update implements [Layer].
func (b *Background) Update(f *Frame) {
	b.width, b.height = f.Viewport.Width, f.Viewport.Height
}

// Render implements [Layer]. A square is dark when its row and column have
// the same parity.
func (b *Background) Render(dst surface.Surface) {
	size := b.opts.SquareSize
	rows, cols := b.height/size, b.width/size
	s := float64(size)

	for row := 0; row <= rows; row++ {
		for col := 0; col <= cols; col++ {
			dst.FillRect(float64(col)*s, float64(row)*s, s, s, b.SquareColor(row, col))
		}
	}
}

// SquareColor returns the color of the square at row, col.
func (b *Background) SquareColor(row, col int) color.Color {
	if row%2 == col%2 {
		return b.opts.Dark
	}

	return b.opts.Light
}
