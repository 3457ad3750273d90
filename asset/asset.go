// Package asset loads and saves raster images.
//
// Decoding honors EXIF orientation so photos appear the way cameras
// intended. PNG, JPEG, GIF, BMP, TIFF and WebP inputs are recognized.
package asset

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"

	// imaging registers every other accepted format.
	_ "golang.org/x/image/webp"
)

var (
	// ErrUnsupportedFormat indicates a file extension that is not an image
	// format this package can decode.
	ErrUnsupportedFormat = errors.New("unsupported image format")
	// ErrDecode indicates image data that could not be decoded.
	ErrDecode = errors.New("decode image")
)

var extensions = []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".webp"}

// Extensions returns the accepted file extensions, lower-case with a dot.
func Extensions() []string {
	return slices.Clone(extensions)
}

// Supported reports whether path has an accepted extension.
func Supported(path string) bool {
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(path)))
}

// Decode reads an image from r, applying EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return img, nil
}

// Load opens and decodes the image at path.
func Load(path string) (image.Image, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path) //nolint:gosec // Image path from CLI argument is expected.
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

// Save encodes img to path in the format named by its extension. WebP is
// decode-only.
func Save(path string, img image.Image) error {
	_, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	err = imaging.Save(img, path)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	return nil
}
