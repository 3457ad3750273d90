package magnifier_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/colordropper/input"
	"go.jacobcolvin.com/colordropper/magnifier"
)

// recorder is a surface filled with one color that records draw calls.
type recorder struct {
	fill   color.NRGBA
	bounds image.Rectangle
	ops    []string
	texts  []string
	rects  int
}

func (r *recorder) Bounds() image.Rectangle   { return r.bounds }
func (r *recorder) Clear()                    { r.ops = append(r.ops, "clear") }
func (r *recorder) ClearRect(image.Rectangle) { r.ops = append(r.ops, "clear-rect") }

func (r *recorder) FillRect(_, _, _, _ float64, _ color.Color) {
	r.rects++
	if len(r.ops) == 0 || r.ops[len(r.ops)-1] != "fill-rect" {
		r.ops = append(r.ops, "fill-rect")
	}
}

func (r *recorder) StrokeRect(_, _, _, _, _ float64, _ color.Color) {
	r.ops = append(r.ops, "stroke-rect")
}

func (r *recorder) FillCircle(_, _, _ float64, _ color.Color) {
	r.ops = append(r.ops, "fill-circle")
}

func (r *recorder) StrokeCircle(_, _, _, _ float64, _ color.Color) {
	r.ops = append(r.ops, "stroke-circle")
}

func (r *recorder) FillRoundedRect(_, _, _, _, _ float64, _ color.Color) {
	r.ops = append(r.ops, "fill-rounded-rect")
}

func (r *recorder) DrawImage(image.Image, float64, float64, float64, float64) {
	r.ops = append(r.ops, "draw-image")
}

func (r *recorder) MeasureText(s string) (float64, float64) {
	return float64(8 * len(s)), 14
}

func (r *recorder) DrawText(s string, _, _ float64, _ color.Color) {
	r.ops = append(r.ops, "draw-text")
	r.texts = append(r.texts, s)
}

func (r *recorder) ImageData(rect image.Rectangle) []byte {
	buf := make([]byte, 0, 4*rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if (image.Point{X: x, Y: y}).In(r.bounds) {
				buf = append(buf, r.fill.R, r.fill.G, r.fill.B, r.fill.A)
			} else {
				buf = append(buf, 0, 0, 0, 0)
			}
		}
	}

	return buf
}

func newRecorder() *recorder {
	return &recorder{
		fill:   color.NRGBA{R: 0xff, G: 0x80, A: 0xff},
		bounds: image.Rect(0, 0, 300, 200),
	}
}

func newMagnifier(t *testing.T, opts magnifier.Options) *magnifier.Magnifier {
	t.Helper()

	m, err := magnifier.New(opts)
	require.NoError(t, err)

	return m
}

func TestNewValidatesOptions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate  func(*magnifier.Options)
		wantErr bool
	}{
		"defaults":        {mutate: func(*magnifier.Options) {}},
		"single pixel":    {mutate: func(o *magnifier.Options) { o.MaxPixelCount = 1 }},
		"even count":      {mutate: func(o *magnifier.Options) { o.MaxPixelCount = 12 }, wantErr: true},
		"zero count":      {mutate: func(o *magnifier.Options) { o.MaxPixelCount = 0 }, wantErr: true},
		"negative stroke": {mutate: func(o *magnifier.Options) { o.StrokeSize = -1 }, wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := magnifier.DefaultOptions()
			tc.mutate(&opts)

			_, err := magnifier.New(opts)
			if tc.wantErr {
				require.ErrorIs(t, err, magnifier.ErrInvalidOptions)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestMagnifierStates(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		pointer   input.State
		lens      bool
		wantState magnifier.State
		wantHex   string
		wantOK    bool
	}{
		"no lens": {
			pointer:   input.State{X: 50, Y: 50, Over: true, Active: true},
			wantState: magnifier.Idle,
		},
		"pointer outside": {
			pointer:   input.State{X: 50, Y: 50, Active: true},
			lens:      true,
			wantState: magnifier.Idle,
		},
		"hovering": {
			pointer:   input.State{X: 50, Y: 50, Over: true},
			lens:      true,
			wantState: magnifier.Hovering,
		},
		"pressed": {
			pointer:   input.State{X: 50, Y: 50, Over: true, Active: true},
			lens:      true,
			wantState: magnifier.Active,
			wantHex:   "#ff8000",
			wantOK:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m := newMagnifier(t, magnifier.DefaultOptions())
			if tc.lens {
				m.SetLens(magnifier.LensIcon(150, 11))
			}

			dst := newRecorder()
			m.Render(dst, tc.pointer)

			assert.Equal(t, tc.wantState, m.State())
			assert.Equal(t, tc.wantState == magnifier.Idle, m.Grid().Empty())

			if tc.wantState == magnifier.Idle {
				assert.Empty(t, dst.ops)
			}

			hex, ok := m.Commit(tc.pointer)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantHex, hex)
		})
	}
}

func TestMagnifierCommitGating(t *testing.T) {
	t.Parallel()

	m := newMagnifier(t, magnifier.DefaultOptions())

	pressed := input.State{X: 10, Y: 10, Over: true, Active: true}

	_, ok := m.Commit(pressed)
	assert.False(t, ok, "empty grid never commits")

	m.SetLens(magnifier.LensIcon(150, 11))
	m.Render(newRecorder(), input.State{X: 10, Y: 10, Over: true})

	_, ok = m.Commit(input.State{X: 10, Y: 10, Over: true})
	assert.False(t, ok, "hovering does not commit")

	for range 3 {
		hex, ok := m.Commit(pressed)
		require.True(t, ok, "held press republishes")
		assert.Equal(t, "#ff8000", hex)
	}

	m.Render(newRecorder(), input.State{X: 10, Y: 10, Active: true})

	_, ok = m.Commit(input.State{X: 10, Y: 10, Active: true})
	assert.False(t, ok, "leaving discards the samples")
}

func TestMagnifierRenderOrder(t *testing.T) {
	t.Parallel()

	m := newMagnifier(t, magnifier.DefaultOptions())
	m.SetLens(magnifier.LensIcon(150, 11))

	dst := newRecorder()
	p := input.State{X: 150, Y: 100, Over: true}
	m.Render(dst, p)

	assert.Equal(t, []string{
		"fill-circle",
		"fill-rect",
		"stroke-rect",
		"draw-image",
		"stroke-circle",
		"fill-rounded-rect",
		"draw-text",
	}, dst.ops)
	assert.Equal(t, []string{"#ff8000"}, dst.texts)

	l, ok := m.Layout(p)
	require.True(t, ok)

	visible := 0
	for row := range 13 {
		for col := range 13 {
			if l.Visible(row, col) {
				visible++
			}
		}
	}

	assert.Equal(t, visible, dst.rects)
	assert.Less(t, dst.rects, 13*13)
	assert.Greater(t, dst.rects, 13*13/2)
}

func TestMagnifierLabelDisabled(t *testing.T) {
	t.Parallel()

	opts := magnifier.DefaultOptions()
	opts.Label.Enabled = false

	m := newMagnifier(t, opts)
	m.SetLens(magnifier.LensIcon(150, 11))

	dst := newRecorder()
	m.Render(dst, input.State{X: 20, Y: 20, Over: true})

	assert.NotContains(t, dst.ops, "draw-text")
	assert.NotContains(t, dst.ops, "fill-rounded-rect")
	assert.Contains(t, dst.ops, "stroke-circle")
}

func TestLensGeometry(t *testing.T) {
	t.Parallel()

	l := magnifier.Lens{X: 200, Y: 120, Width: 150, Height: 150, Stroke: 11, Separator: 1, Count: 13}

	ox, oy := l.Origin()
	assert.InDelta(t, 125.0, ox, 1e-9)
	assert.InDelta(t, 45.0, oy, 1e-9)
	assert.InDelta(t, 128.0/13, l.CellSize(), 1e-9)
	assert.InDelta(t, 64.0, l.BackgroundRadius(), 1e-9)

	r, w := l.Ring()
	assert.InDelta(t, 66.2, r, 1e-9)
	assert.InDelta(t, 7.7, w, 1e-9)

	// The center cell is centered on the pointer, shifted by the separator.
	cx, cy := l.Cell(6, 6)
	half := l.CellSize() / 2
	assert.InDelta(t, 201.0, cx+half, 1e-9)
	assert.InDelta(t, 121.0, cy+half, 1e-9)
	assert.True(t, l.Visible(6, 6))

	for _, corner := range [][2]int{{0, 0}, {0, 12}, {12, 0}, {12, 12}} {
		assert.False(t, l.Visible(corner[0], corner[1]), "corner %v", corner)
	}

	for i := range 13 {
		assert.True(t, l.Visible(6, i), "middle row col %d", i)
		assert.True(t, l.Visible(i, 6), "middle col row %d", i)
	}

	lx, ly, lw, lh := l.LabelRect(56, magnifier.DefaultOptions().Label)
	assert.InDelta(t, 72.0, lw, 1e-9)
	assert.InDelta(t, 20.0, lh, 1e-9)
	assert.InDelta(t, 200.0, lx+lw/2, 1e-9)
	assert.InDelta(t, 45+112.5, ly+lh/2, 1e-9)
	assert.InDelta(t, 150.0, l.Diameter(), 1e-9)
}

func TestLensIcon(t *testing.T) {
	t.Parallel()

	icon := magnifier.LensIcon(64, 8)
	assert.Equal(t, image.Rect(0, 0, 64, 64), icon.Bounds())

	_, _, _, a := icon.At(32, 32).RGBA()
	assert.Zero(t, a, "center is transparent")

	_, _, _, a = icon.At(32, 4).RGBA()
	assert.Equal(t, uint32(math.MaxUint16), a, "band is opaque")
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", magnifier.Idle.String())
	assert.Equal(t, "hovering", magnifier.Hovering.String())
	assert.Equal(t, "active", magnifier.Active.String())
	assert.Equal(t, "State(7)", magnifier.State(7).String())
}
