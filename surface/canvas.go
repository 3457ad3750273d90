package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"slices"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/f64"
)

// ErrUnknownInterpolator indicates an unrecognized interpolator name.
var ErrUnknownInterpolator = errors.New("unknown interpolator")

// DefaultInterpolator is the interpolator name used when none is given.
const DefaultInterpolator = "approx-bilinear"

var interpolators = map[string]draw.Interpolator{
	"nearest":         draw.NearestNeighbor,
	"approx-bilinear": draw.ApproxBiLinear,
	"bilinear":        draw.BiLinear,
	"catmull-rom":     draw.CatmullRom,
}

// Interpolators returns the accepted interpolator names, sorted.
func Interpolators() []string {
	names := make([]string, 0, len(interpolators))
	for name := range interpolators {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// ParseInterpolator returns the interpolator registered under name.
func ParseInterpolator(name string) (draw.Interpolator, error) {
	if name == "" {
		name = DefaultInterpolator
	}

	i, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterpolator, name)
	}

	return i, nil
}

var boldFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gobold.TTF)
})

// Option configures a [Canvas].
type Option func(*Canvas)

// WithInterpolator sets the interpolator used by [Canvas.DrawImage].
func WithInterpolator(i draw.Interpolator) Option {
	return func(c *Canvas) {
		c.scaler = i
	}
}

// WithFontSize sets the label font size in points at 72 DPI.
func WithFontSize(size float64) Option {
	return func(c *Canvas) {
		c.fontSize = size
	}
}

// Canvas is a [Surface] backed by an [*image.RGBA].
//
// Vector shapes and text go through a [gg.Context]; image blits go through
// a [draw.Interpolator]. A Canvas is not safe for concurrent use.
type Canvas struct {
	rgba     *image.RGBA
	dc       *gg.Context
	face     font.Face
	scaler   draw.Interpolator
	fontSize float64
}

// New creates a transparent [Canvas] of the given size.
func New(width, height int, opts ...Option) (*Canvas, error) {
	c := &Canvas{
		scaler:   draw.ApproxBiLinear,
		fontSize: 14,
	}
	for _, opt := range opts {
		opt(c)
	}

	f, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}

	c.face = truetype.NewFace(f, &truetype.Options{
		Size:    c.fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	c.Resize(width, height)

	return c, nil
}

// Resize replaces the backing image with a transparent one of the given
// size. Negative sizes are treated as 0.
func (c *Canvas) Resize(width, height int) {
	c.rgba = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	c.dc = gg.NewContextForRGBA(c.rgba)
	c.dc.SetFontFace(c.face)
}

// Image returns the backing image. It is overwritten by later drawing.
func (c *Canvas) Image() *image.RGBA {
	return c.rgba
}

// Bounds implements [Surface].
func (c *Canvas) Bounds() image.Rectangle {
	return c.rgba.Bounds()
}

// Clear implements [Surface].
func (c *Canvas) Clear() {
	clear(c.rgba.Pix)
}

// ClearRect implements [Surface].
func (c *Canvas) ClearRect(r image.Rectangle) {
	draw.Draw(c.rgba, r, image.Transparent, image.Point{}, draw.Src)
}

// FillRect implements [Surface].
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.DrawRectangle(x, y, w, h)
	c.fill(col)
}

// StrokeRect implements [Surface].
func (c *Canvas) StrokeRect(x, y, w, h, lineWidth float64, col color.Color) {
	c.dc.DrawRectangle(x, y, w, h)
	c.stroke(lineWidth, col)
}

// FillCircle implements [Surface].
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	c.dc.DrawCircle(cx, cy, r)
	c.fill(col)
}

// StrokeCircle implements [Surface].
func (c *Canvas) StrokeCircle(cx, cy, r, lineWidth float64, col color.Color) {
	c.dc.DrawCircle(cx, cy, r)
	c.stroke(lineWidth, col)
}

// FillRoundedRect implements [Surface].
func (c *Canvas) FillRoundedRect(x, y, w, h, r float64, col color.Color) {
	c.dc.DrawRoundedRectangle(x, y, w, h, r)
	c.fill(col)
}

// DrawImage implements [Surface].
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	sb := img.Bounds()
	if sb.Empty() || w <= 0 || h <= 0 {
		return
	}

	kx := w / float64(sb.Dx())
	ky := h / float64(sb.Dy())

	// Maps source pixel coordinates onto the destination rectangle.
	m := f64.Aff3{
		kx, 0, x - kx*float64(sb.Min.X),
		0, ky, y - ky*float64(sb.Min.Y),
	}

	c.scaler.Transform(c.rgba, m, img, sb, draw.Over, nil)
}

// MeasureText implements [Surface].
func (c *Canvas) MeasureText(s string) (float64, float64) {
	return c.dc.MeasureString(s)
}

// DrawText implements [Surface].
func (c *Canvas) DrawText(s string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

// ImageData implements [Surface].
func (c *Canvas) ImageData(r image.Rectangle) []byte {
	r = r.Canon()
	buf := make([]byte, 4*r.Dx()*r.Dy())
	b := c.rgba.Bounds()

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if (image.Point{X: x, Y: y}).In(b) {
				n := color.NRGBAModel.Convert(c.rgba.RGBAAt(x, y)).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always returns NRGBA.
				buf[i], buf[i+1], buf[i+2], buf[i+3] = n.R, n.G, n.B, n.A
			}

			i += 4
		}
	}

	return buf
}

// EncodePNG writes the canvas to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	err := c.dc.EncodePNG(w)
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	return nil
}

func (c *Canvas) fill(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Fill()
}

func (c *Canvas) stroke(lineWidth float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.Stroke()
}
