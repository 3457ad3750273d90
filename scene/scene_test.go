package scene_test

import (
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/colordropper/fit"
	"go.jacobcolvin.com/colordropper/magnifier"
	"go.jacobcolvin.com/colordropper/scene"
)

func newScene(t *testing.T, w, h int) *scene.Scene {
	t.Helper()

	s, err := scene.New(w, h, scene.DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	s.SetLens(magnifier.LensIcon(60, 5))

	return s
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}

	return img
}

func TestSceneTick(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		image     image.Image
		x, y      int
		over      bool
		press     bool
		picker    bool
		want      scene.Result
		wantState magnifier.State
	}{
		"pressed over checkerboard dark square": {
			x: 5, y: 5, over: true, press: true, picker: true,
			want:      scene.Result{Selected: "#a4a4a4", Committed: true, Changed: true},
			wantState: magnifier.Active,
		},
		"pressed over checkerboard light square": {
			x: 15, y: 5, over: true, press: true, picker: true,
			want:      scene.Result{Selected: "#ffffff", Committed: true, Changed: true},
			wantState: magnifier.Active,
		},
		"pressed over image": {
			image: solid(50, 50, color.NRGBA{R: 0xff, A: 0xff}),
			x:     50, y: 50, over: true, press: true, picker: true,
			want:      scene.Result{Selected: "#ff0000", Committed: true, Changed: true},
			wantState: magnifier.Active,
		},
		"hovering": {
			x: 50, y: 50, over: true, picker: true,
			wantState: magnifier.Hovering,
		},
		"pressed outside canvas": {
			x: 50, y: 50, press: true, picker: true,
			wantState: magnifier.Idle,
		},
		"picker disabled": {
			x: 50, y: 50, over: true, press: true,
			wantState: magnifier.Idle,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := newScene(t, 100, 100)
			if tc.image != nil {
				s.SetImage(tc.image)
			}

			if !tc.picker {
				s.DisablePicker()
			}

			in := s.Input()
			in.Move(tc.x, tc.y)

			if tc.over {
				in.Enter()
			}

			if tc.press {
				in.Press()
			}

			got := s.Tick()
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Selected, s.SelectedColor())

			if tc.picker {
				assert.Equal(t, tc.wantState, s.Magnifier().State())
			}
		})
	}
}

func TestSceneLevelTriggeredCommit(t *testing.T) {
	t.Parallel()

	s := newScene(t, 100, 100)
	s.SetImage(solid(100, 100, color.NRGBA{G: 0xff, A: 0xff}))

	in := s.Input()
	in.Move(40, 40)
	in.Enter()
	in.Press()

	first := s.Tick()
	assert.Equal(t, scene.Result{Selected: "#00ff00", Committed: true, Changed: true}, first)

	second := s.Tick()
	assert.Equal(t, scene.Result{Selected: "#00ff00", Committed: true, Changed: false}, second)

	in.Release()

	third := s.Tick()
	assert.Equal(t, scene.Result{}, third)
	assert.Equal(t, "#00ff00", s.SelectedColor(), "selection survives release")
}

func TestSceneLayers(t *testing.T) {
	t.Parallel()

	s := newScene(t, 10, 10)

	names := func() []string {
		var out []string
		for _, l := range s.Layers() {
			out = append(out, l.Name())
		}

		return out
	}

	assert.True(t, s.PickerEnabled())
	assert.Equal(t, []string{"background", "image", "picker"}, names())

	assert.False(t, s.TogglePicker())
	assert.Equal(t, []string{"background", "image"}, names())

	s.EnablePicker()
	assert.True(t, s.PickerEnabled())
}

func TestSceneResize(t *testing.T) {
	t.Parallel()

	s := newScene(t, 100, 100)
	s.SetImage(solid(400, 100, color.NRGBA{B: 0xff, A: 0xff}))
	s.Tick()

	g, ok := s.Geometry()
	require.True(t, ok)
	assert.InDelta(t, 0.25, g.ScaleX, 1e-9)

	s.Resize(400, 200)
	assert.Equal(t, image.Rect(0, 0, 400, 200), s.Canvas().Bounds())
	assert.Equal(t, fit.Viewport{Width: 400, Height: 200}, s.Input().Viewport())

	s.Tick()

	g, ok = s.Geometry()
	require.True(t, ok)
	assert.Equal(t, fit.FitsBoth, g.Case)
	assert.InDelta(t, 50.0, g.OffsetY, 1e-9)

	s.Resize(0, 0)
	s.Tick()

	_, ok = s.Geometry()
	assert.False(t, ok)
}
