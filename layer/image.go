package layer

import (
	"image"
	"log/slog"

	"go.jacobcolvin.com/colordropper/fit"
	"go.jacobcolvin.com/colordropper/surface"
)

// Image draws one image fitted and centered in the viewport.
//
// It draws nothing until an image is set, and nothing while the viewport
// is degenerate.
type Image struct {
	img      image.Image
	log      *slog.Logger
	calc     fit.Calculator
	geometry fit.Geometry
	size     fit.ImageSize
	placed   bool
}

// NewImage creates an empty [Image] layer.
func NewImage(logger *slog.Logger) *Image {
	return &Image{log: logger}
}

// Name implements [Layer].
func (l *Image) Name() string { return "image" }

// SetImage replaces the image. A nil image empties the layer.
func (l *Image) SetImage(img image.Image) {
	l.img = img
	l.placed = false
	l.calc.Reset()

	if img != nil {
		l.size = fit.SizeOf(img)
	}
}

// Ready reports whether an image is set.
func (l *Image) Ready() bool {
	return l.img != nil
}

// Geometry returns the placement computed by the last update.
func (l *Image) Geometry() (fit.Geometry, bool) {
	return l.geometry, l.placed
}

// Update implements [Layer]. The placement is recomputed only when the
// viewport or the image changed.
func (l *Image) Update(f *Frame) {
	if l.img == nil {
		return
	}

	prevV, prevI, cached := l.calc.Cached()

	g, err := l.calc.Fit(f.Viewport, l.size)
	if err != nil {
		if !cached || prevV != f.Viewport || prevI != l.size {
			l.log.Warn("cannot place image",
				slog.Any("err", err),
				slog.Int("viewport_width", f.Viewport.Width),
				slog.Int("viewport_height", f.Viewport.Height),
			)
		}

		l.placed = false

		return
	}

	if !l.placed || l.geometry != g {
		l.log.Debug("placed image",
			slog.String("case", g.Case.String()),
			slog.Float64("scale", g.ScaleX),
			slog.Float64("offset_x", g.OffsetX),
			slog.Float64("offset_y", g.OffsetY),
		)
	}

	l.geometry, l.placed = g, true
}

// Render implements [Layer].
func (l *Image) Render(dst surface.Surface) {
	if l.img == nil || !l.placed {
		return
	}

	DrawFitted(dst, l.img, l.geometry)
}

// DrawFitted draws img on dst at the placement g.
func DrawFitted(dst surface.Surface, img image.Image, g fit.Geometry) {
	w, h := g.Size(fit.SizeOf(img))
	dst.DrawImage(img, g.OffsetX, g.OffsetY, w, h)
}
