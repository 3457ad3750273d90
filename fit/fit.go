// Package fit places an image inside a viewport.
//
// The placement preserves aspect ratio, keeps the image fully visible, never
// enlarges it, and centers it on whichever axis has room to spare. See
// [Compute] for the decision rules.
package fit

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidDimensions indicates a viewport or image with a non-positive
// width or height.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Viewport is the drawable area, in pixels.
type Viewport struct {
	Width  int
	Height int
}

// ImageSize is the intrinsic size of an image, in pixels.
type ImageSize struct {
	Width  int
	Height int
}

// SizeOf returns the intrinsic size of img.
func SizeOf(img image.Image) ImageSize {
	b := img.Bounds()

	return ImageSize{Width: b.Dx(), Height: b.Dy()}
}

// Case identifies which row of the decision table produced a [Geometry].
type Case int

const (
	// FitsBoth means the image fits on both axes and is drawn at its natural
	// size.
	FitsBoth Case = iota
	// FitsHeightOnly means only the width overflows, so the width is
	// saturated.
	FitsHeightOnly
	// FitsWidthOnly means only the height overflows, so the height is
	// saturated.
	FitsWidthOnly
	// FitsNeither means both axes overflow.
	FitsNeither
)

func (c Case) String() string {
	switch c {
	case FitsBoth:
		return "fits-both"
	case FitsHeightOnly:
		return "fits-height-only"
	case FitsWidthOnly:
		return "fits-width-only"
	case FitsNeither:
		return "fits-neither"
	}

	return fmt.Sprintf("Case(%d)", int(c))
}

// Geometry places an image inside a viewport. ScaleX and ScaleY always hold
// the same uniform factor.
type Geometry struct {
	ScaleX  float64
	ScaleY  float64
	OffsetX float64
	OffsetY float64
	Case    Case
}

// Size returns the drawn width and height of img under g.
func (g Geometry) Size(img ImageSize) (float64, float64) {
	return float64(img.Width) * g.ScaleX, float64(img.Height) * g.ScaleY
}

// Rect returns the drawn rectangle of img, rounded outward to whole pixels.
func (g Geometry) Rect(img ImageSize) image.Rectangle {
	w, h := g.Size(img)

	return image.Rect(
		int(math.Floor(g.OffsetX)),
		int(math.Floor(g.OffsetY)),
		int(math.Ceil(g.OffsetX+w)),
		int(math.Ceil(g.OffsetY+h)),
	)
}

// Contains reports whether the drawn rectangle of img lies within v.
func (g Geometry) Contains(v Viewport, img ImageSize) bool {
	const eps = 1e-9

	w, h := g.Size(img)

	return g.OffsetX >= -eps && g.OffsetY >= -eps &&
		g.OffsetX+w <= float64(v.Width)+eps &&
		g.OffsetY+h <= float64(v.Height)+eps
}

type decision struct {
	scale      func(vw, vh, iw, ih float64) float64
	fitsWidth  bool
	fitsHeight bool
	c          Case
}

// decisions is evaluated in order; exactly one row matches any input.
var decisions = []decision{
	{
		fitsWidth: true, fitsHeight: true, c: FitsBoth,
		scale: func(_, _, _, _ float64) float64 { return 1 },
	},
	{
		fitsWidth: false, fitsHeight: true, c: FitsHeightOnly,
		scale: func(vw, _, iw, _ float64) float64 { return vw / iw },
	},
	{
		fitsWidth: true, fitsHeight: false, c: FitsWidthOnly,
		scale: func(_, vh, _, ih float64) float64 { return vh / ih },
	},
	{
		fitsWidth: false, fitsHeight: false, c: FitsNeither,
		scale: func(vw, vh, iw, ih float64) float64 {
			s := vw / iw
			if ih*s > vh {
				s = vh / ih
			}

			return s
		},
	},
}

// Compute returns the placement of an image of size img inside v.
//
// The uniform scale is 1 when the image fits, the viewport-to-image ratio of
// the overflowing axis when one axis overflows, and the smaller of the two
// ratios when both overflow. Offsets center the scaled image; on a saturated
// axis they are 0. Every dimension must be positive.
func Compute(v Viewport, img ImageSize) (Geometry, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return Geometry{}, fmt.Errorf("%w: viewport %dx%d", ErrInvalidDimensions, v.Width, v.Height)
	}

	if img.Width <= 0 || img.Height <= 0 {
		return Geometry{}, fmt.Errorf("%w: image %dx%d", ErrInvalidDimensions, img.Width, img.Height)
	}

	vw, vh := float64(v.Width), float64(v.Height)
	iw, ih := float64(img.Width), float64(img.Height)
	fitsWidth, fitsHeight := iw <= vw, ih <= vh

	for _, d := range decisions {
		if d.fitsWidth != fitsWidth || d.fitsHeight != fitsHeight {
			continue
		}

		s := d.scale(vw, vh, iw, ih)

		return Geometry{
			ScaleX:  s,
			ScaleY:  s,
			OffsetX: (vw - iw*s) / 2,
			OffsetY: (vh - ih*s) / 2,
			Case:    d.c,
		}, nil
	}

	panic("fit: decision table is not exhaustive")
}
