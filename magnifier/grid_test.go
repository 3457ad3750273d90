package magnifier_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/colordropper/magnifier"
	"go.jacobcolvin.com/colordropper/surface"
)

// sequentialBuffer returns an n by n RGBA buffer where pixel i holds
// (i, i+1, i+2, 255) modulo 256.
func sequentialBuffer(n int) []byte {
	buf := make([]byte, 0, n*n*4)
	for i := range n * n {
		buf = append(buf, byte(i), byte(i+1), byte(i+2), 0xff)
	}

	return buf
}

func TestBuildGrid(t *testing.T) {
	t.Parallel()

	buf := sequentialBuffer(13)

	g, err := magnifier.BuildGrid(buf, 13)
	require.NoError(t, err)

	assert.Equal(t, 13, g.Size())
	assert.False(t, g.Empty())

	// The 7th pixel of the 7th row starts at byte ((6*13)+6)*4.
	off := (6*13 + 6) * 4
	want := magnifier.PixelSample{R: buf[off], G: buf[off+1], B: buf[off+2], A: buf[off+3]}
	assert.Equal(t, want, g.Center())
	assert.Equal(t, want, g.At(6, 6))

	for row := range 13 {
		cells := g.Row(row)
		require.Len(t, cells, 13)

		for col, px := range cells {
			i := row*13 + col
			assert.Equal(t, magnifier.PixelSample{R: byte(i), G: byte(i + 1), B: byte(i + 2), A: 0xff}, px)
		}
	}

	assert.Equal(t, magnifier.PixelSample{}, g.At(13, 0))
	assert.Equal(t, magnifier.PixelSample{}, g.At(-1, 2))
	assert.Nil(t, g.Row(20))
}

func TestBuildGridErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		buf  []byte
		size int
	}{
		"short buffer": {buf: make([]byte, 13*13*4-1), size: 13},
		"long buffer":  {buf: make([]byte, 13*13*4+4), size: 13},
		"zero size":    {buf: nil, size: 0},
		"negative":     {buf: nil, size: -3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g, err := magnifier.BuildGrid(tc.buf, tc.size)
			require.ErrorIs(t, err, magnifier.ErrBufferSize)
			assert.True(t, g.Empty())
		})
	}
}

func TestEmptyGrid(t *testing.T) {
	t.Parallel()

	var g magnifier.Grid

	assert.True(t, g.Empty())
	assert.Equal(t, 0, g.Size())
	assert.Equal(t, magnifier.PixelSample{}, g.Center())
}

func TestCaptureRect(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		x, y, n int
		want    image.Rectangle
	}{
		"near top-left corner": {x: 5, y: 5, n: 13, want: image.Rect(-1, -1, 12, 12)},
		"origin":               {x: 0, y: 0, n: 13, want: image.Rect(-6, -6, 7, 7)},
		"interior":             {x: 100, y: 40, n: 13, want: image.Rect(94, 34, 107, 47)},
		"single pixel":         {x: 3, y: 4, n: 1, want: image.Rect(3, 4, 4, 5)},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, magnifier.CaptureRect(tc.x, tc.y, tc.n))
		})
	}
}

func TestSampleAtEdges(t *testing.T) {
	t.Parallel()

	green := color.NRGBA{G: 0xff, A: 0xff}

	c, err := surface.New(20, 20)
	require.NoError(t, err)
	c.FillRect(0, 0, 20, 20, green)

	tcs := map[string]struct {
		x, y        int
		zeroRows    []int
		zeroCols    []int
		greenSample [2]int
	}{
		"top-left": {
			x: 5, y: 5,
			zeroRows:    []int{0},
			zeroCols:    []int{0},
			greenSample: [2]int{1, 1},
		},
		"bottom-right": {
			x: 19, y: 19,
			zeroRows:    []int{7, 8, 9, 10, 11, 12},
			zeroCols:    []int{7, 8, 9, 10, 11, 12},
			greenSample: [2]int{6, 6},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			g, err := magnifier.Sample(c, tc.x, tc.y, 13)
			require.NoError(t, err)

			for _, row := range tc.zeroRows {
				for col := range 13 {
					assert.Equal(t, magnifier.PixelSample{}, g.At(row, col), "row %d col %d", row, col)
				}
			}

			for _, col := range tc.zeroCols {
				for row := range 13 {
					assert.Equal(t, magnifier.PixelSample{}, g.At(row, col), "row %d col %d", row, col)
				}
			}

			assert.Equal(t, "#00ff00", g.At(tc.greenSample[0], tc.greenSample[1]).Hex())
			assert.Equal(t, "#00ff00", g.Center().Hex())
		})
	}
}

func TestPixelSample(t *testing.T) {
	t.Parallel()

	p := magnifier.PixelSample{R: 0x12, G: 0xab, B: 0x09, A: 0x40}

	assert.Equal(t, "#12ab09", p.Hex())
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0xab, B: 0x09, A: 0xff}, p.Opaque())

	r, g, b, a := p.RGBA()
	wr, wg, wb, wa := color.NRGBA{R: 0x12, G: 0xab, B: 0x09, A: 0x40}.RGBA()
	assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{r, g, b, a})
}
