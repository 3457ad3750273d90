// Package surface provides the drawing capabilities the renderers need and
// a raster [Canvas] implementing them.
package surface

import (
	"image"
	"image/color"
)

// Surface is a 2D raster drawing target.
//
// Coordinates are in pixels with the origin at the top-left corner.
// Shapes are anti-aliased. Reads return non-premultiplied RGBA.
type Surface interface {
	// Bounds returns the pixel bounds of the surface.
	Bounds() image.Rectangle
	// Clear makes every pixel transparent.
	Clear()
	// ClearRect makes the pixels in r transparent.
	ClearRect(r image.Rectangle)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, lineWidth float64, c color.Color)
	FillRoundedRect(x, y, w, h, r float64, c color.Color)
	// DrawImage composites img over the destination rectangle (x, y, w, h),
	// scaling as needed.
	DrawImage(img image.Image, x, y, w, h float64)
	// MeasureText returns the rendered width and height of s.
	MeasureText(s string) (float64, float64)
	// DrawText draws s centered on (x, y).
	DrawText(s string, x, y float64, c color.Color)
	// ImageData returns the pixels of r as 4 bytes per pixel (R, G, B, A),
	// row-major. Pixels outside [Surface.Bounds] read as zero.
	ImageData(r image.Rectangle) []byte
}
