package surface_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"go.jacobcolvin.com/colordropper/surface"
)

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func newCanvas(t *testing.T, w, h int, opts ...surface.Option) *surface.Canvas {
	t.Helper()

	c, err := surface.New(w, h, opts...)
	require.NoError(t, err)

	return c
}

func pixel(c *surface.Canvas, x, y int) color.NRGBA {
	b := c.ImageData(image.Rect(x, y, x+1, y+1))

	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
}

func TestCanvasFillAndClear(t *testing.T) {
	t.Parallel()

	c := newCanvas(t, 20, 10)
	assert.Equal(t, image.Rect(0, 0, 20, 10), c.Bounds())
	assert.Equal(t, color.NRGBA{}, pixel(c, 5, 5))

	c.FillRect(0, 0, 10, 10, red)
	c.FillRect(10, 0, 10, 10, blue)

	assert.Equal(t, red, pixel(c, 4, 4))
	assert.Equal(t, blue, pixel(c, 15, 4))

	c.ClearRect(image.Rect(0, 0, 5, 10))
	assert.Equal(t, color.NRGBA{}, pixel(c, 2, 2))
	assert.Equal(t, red, pixel(c, 7, 2))

	c.Clear()
	assert.Equal(t, color.NRGBA{}, pixel(c, 7, 2))
	assert.Equal(t, color.NRGBA{}, pixel(c, 15, 2))
}

func TestCanvasImageData(t *testing.T) {
	t.Parallel()

	c := newCanvas(t, 4, 4)
	c.FillRect(0, 0, 4, 4, green)

	tcs := map[string]struct {
		rect       image.Rectangle
		wantLen    int
		wantOpaque int
	}{
		"inside":           {rect: image.Rect(1, 1, 3, 3), wantLen: 16, wantOpaque: 4},
		"top-left overlap": {rect: image.Rect(-1, -1, 2, 2), wantLen: 36, wantOpaque: 4},
		"bottom-right":     {rect: image.Rect(3, 3, 6, 6), wantLen: 36, wantOpaque: 1},
		"fully outside":    {rect: image.Rect(10, 10, 12, 12), wantLen: 16, wantOpaque: 0},
		"empty":            {rect: image.Rect(2, 2, 2, 2), wantLen: 0, wantOpaque: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := c.ImageData(tc.rect)
			require.Len(t, buf, tc.wantLen)

			opaque := 0
			for i := 0; i < len(buf); i += 4 {
				switch buf[i+3] {
				case 0xff:
					assert.Equal(t, []byte{0, 0xff, 0}, buf[i:i+3])

					opaque++
				case 0:
					assert.Equal(t, []byte{0, 0, 0}, buf[i:i+3])
				default:
					t.Fatalf("unexpected alpha %d", buf[i+3])
				}
			}

			assert.Equal(t, tc.wantOpaque, opaque)
		})
	}
}

func TestCanvasDrawImage(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(10, 10, 12, 12))
	src.SetNRGBA(10, 10, red)
	src.SetNRGBA(11, 10, green)
	src.SetNRGBA(10, 11, blue)
	src.SetNRGBA(11, 11, white)

	c := newCanvas(t, 8, 8, surface.WithInterpolator(draw.NearestNeighbor))
	c.DrawImage(src, 2, 2, 4, 4)

	assert.Equal(t, color.NRGBA{}, pixel(c, 1, 1))
	assert.Equal(t, red, pixel(c, 2, 2))
	assert.Equal(t, red, pixel(c, 3, 3))
	assert.Equal(t, green, pixel(c, 5, 2))
	assert.Equal(t, blue, pixel(c, 2, 5))
	assert.Equal(t, white, pixel(c, 5, 5))
	assert.Equal(t, color.NRGBA{}, pixel(c, 6, 6))

	c.DrawImage(src, 0, 0, 0, 4)
	assert.Equal(t, color.NRGBA{}, pixel(c, 0, 0))
}

func TestCanvasResize(t *testing.T) {
	t.Parallel()

	c := newCanvas(t, 4, 4)
	c.FillRect(0, 0, 4, 4, red)

	c.Resize(6, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), c.Image().Bounds())
	assert.Equal(t, color.NRGBA{}, pixel(c, 1, 1))

	c.FillCircle(3, 1.5, 10, blue)
	assert.Equal(t, blue, pixel(c, 1, 1))

	c.Resize(-5, 2)
	assert.True(t, c.Bounds().Empty())
}

func TestCanvasText(t *testing.T) {
	t.Parallel()

	small := newCanvas(t, 120, 40, surface.WithFontSize(10))
	large := newCanvas(t, 120, 40)

	sw, sh := small.MeasureText("#a4a4a4")
	lw, lh := large.MeasureText("#a4a4a4")

	assert.Positive(t, sw)
	assert.Positive(t, sh)
	assert.Greater(t, lw, sw)
	assert.Greater(t, lh, sh)

	large.FillRoundedRect(10, 10, 100, 20, 10, white)
	large.DrawText("#a4a4a4", 60, 20, color.Black)

	dark := 0
	buf := large.ImageData(image.Rect(10, 10, 110, 30))
	for i := 0; i < len(buf); i += 4 {
		if buf[i+3] == 0xff && buf[i] < 0x80 {
			dark++
		}
	}

	assert.Positive(t, dark)
}

func TestParseInterpolator(t *testing.T) {
	t.Parallel()

	for _, name := range surface.Interpolators() {
		i, err := surface.ParseInterpolator(name)
		require.NoError(t, err, name)
		assert.NotNil(t, i)
	}

	def, err := surface.ParseInterpolator("")
	require.NoError(t, err)
	assert.Equal(t, draw.ApproxBiLinear, def)

	_, err = surface.ParseInterpolator("lanczos")
	require.ErrorIs(t, err, surface.ErrUnknownInterpolator)

	assert.Equal(t, []string{"approx-bilinear", "bilinear", "catmull-rom", "nearest"}, surface.Interpolators())
}

func TestCanvasEncodePNG(t *testing.T) {
	t.Parallel()

	c := newCanvas(t, 3, 2)
	c.FillRect(0, 0, 3, 2, red)

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}
