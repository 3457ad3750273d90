package magnifier

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.jacobcolvin.com/colordropper/hexcolor"
)

// channels is the number of bytes per pixel in a sample buffer.
const channels = 4

// ErrBufferSize indicates a sample buffer whose length does not match the
// requested grid size.
var ErrBufferSize = errors.New("sample buffer size mismatch")

// PixelSample is one non-premultiplied RGBA pixel.
type PixelSample struct {
	R, G, B, A uint8
}

// RGBA implements [color.Color].
func (p PixelSample) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// Opaque returns the sample with alpha discarded, as it is shown in the lens
// and reported by [PixelSample.Hex].
func (p PixelSample) Opaque() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}

// Hex returns the sample as "#rrggbb". Alpha is not represented.
func (p PixelSample) Hex() string {
	return hexcolor.Format(p.R, p.G, p.B)
}

// PixelSource reads raw pixels, 4 bytes per pixel in row-major order.
// Pixels outside the source read as zero.
type PixelSource interface {
	ImageData(r image.Rectangle) []byte
}

// CaptureRect returns the n by n region centered on (x, y). Its top-left
// corner is (x - n/2, y - n/2) and may be negative.
func CaptureRect(x, y, n int) image.Rectangle {
	half := n / 2

	return image.Rect(x-half, y-half, x-half+n, y-half+n)
}

// Sample reads the n by n neighborhood of (x, y) from src.
func Sample(src PixelSource, x, y, n int) (Grid, error) {
	return BuildGrid(src.ImageData(CaptureRect(x, y, n)), n)
}

// Grid is a square, row-major matrix of samples. The zero value is empty.
type Grid struct {
	cells []PixelSample
	size  int
}

// BuildGrid regroups a flat RGBA buffer into a size by size [Grid],
// preserving row and column order.
func BuildGrid(buf []byte, size int) (Grid, error) {
	if size <= 0 {
		return Grid{}, fmt.Errorf("%w: grid size %d", ErrBufferSize, size)
	}

	if want := size * size * channels; len(buf) != want {
		return Grid{}, fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), want)
	}

	cells := make([]PixelSample, size*size)
	for i := range cells {
		px := buf[i*channels : i*channels+channels]
		cells[i] = PixelSample{R: px[0], G: px[1], B: px[2], A: px[3]}
	}

	return Grid{cells: cells, size: size}, nil
}

// Size returns the side length of the grid.
func (g Grid) Size() int {
	return g.size
}

// Empty reports whether the grid holds no samples.
func (g Grid) Empty() bool {
	return len(g.cells) == 0
}

// At returns the sample at row, col. Out of range positions return the zero
// sample.
func (g Grid) At(row, col int) PixelSample {
	if row < 0 || col < 0 || row >= g.size || col >= g.size {
		return PixelSample{}
	}

	return g.cells[row*g.size+col]
}

// Row returns the samples of one row. The slice aliases the grid.
func (g Grid) Row(row int) []PixelSample {
	if row < 0 || row >= g.size {
		return nil
	}

	return g.cells[row*g.size : (row+1)*g.size]
}

// Center returns the middle sample, or the zero sample of an empty grid.
func (g Grid) Center() PixelSample {
	return g.At(g.size/2, g.size/2)
}
