// Package ansi prints raster images as 24-bit colored text.
//
// Each character cell shows two vertically stacked pixels: the upper pixel
// is the foreground color of an upper half block ("▀") and the lower pixel
// is its background color. A canvas for a terminal of cols by rows cells is
// therefore cols pixels wide and 2*rows pixels tall.
package ansi

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"go.jacobcolvin.com/colordropper/fit"
)

const (
	upperHalfBlock = "▀"
	reset          = "\033[0m"
)

// CanvasSize returns the pixel size of a canvas shown in cols by rows cells.
func CanvasSize(cols, rows int) (int, int) {
	return max(cols, 0), 2 * max(rows, 0)
}

// PixelAt returns the canvas pixel under terminal cell (col, row). It is the
// upper of the two pixels in the cell.
func PixelAt(col, row int) (int, int) {
	return col, 2 * row
}

// Render appends img to w, one line per pair of pixel rows. A missing lower
// row at the bottom of an odd-height image is drawn black. Every line ends
// with an attribute reset and a newline.
func Render(w *strings.Builder, img *image.RGBA) {
	b := img.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)

			var bot color.RGBA
			if y+1 < b.Max.Y {
				bot = img.RGBAAt(x, y+1)
			}

			fmt.Fprintf(w, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm%s",
				top.R, top.G, top.B, bot.R, bot.G, bot.B, upperHalfBlock)
		}

		w.WriteString(reset)
		w.WriteByte('\n')
	}
}

// Shrink scales img down to fit within cols by rows cells, keeping its aspect
// ratio. Images that already fit are copied unscaled.
func Shrink(img image.Image, cols, rows int) (*image.RGBA, error) {
	pw, ph := CanvasSize(cols, rows)

	size := fit.SizeOf(img)

	g, err := fit.Compute(fit.Viewport{Width: pw, Height: ph}, size)
	if err != nil {
		return nil, err
	}

	w, h := g.Size(size)
	dst := image.NewRGBA(image.Rect(0, 0, max(int(w), 1), max(int(h), 1)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	return dst, nil
}
