// Package hexcolor converts between 8-bit RGB colors and "#rrggbb" strings.
package hexcolor

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex indicates a string that is not a "#rgb" or "#rrggbb" color.
var ErrInvalidHex = errors.New("invalid hex color")

// Format returns the lower-case "#rrggbb" form of r, g and b.
func Format(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// FormatColor formats the non-premultiplied channels of c, ignoring alpha.
func FormatColor(c color.Color) string {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)

	return Format(n.R, n.G, n.B)
}

// Parse reads "#rrggbb" or the "#rgb" shorthand, case-insensitively. The
// leading '#' is optional. The result is opaque.
func Parse(s string) (color.NRGBA, error) {
	hex := "#" + strings.TrimPrefix(strings.TrimSpace(s), "#")

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	r, g, b := c.RGB255()

	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParse is like [Parse] but panics on error. It is meant for constants.
func MustParse(s string) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}
