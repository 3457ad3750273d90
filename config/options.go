package config

import (
	"go.jacobcolvin.com/colordropper/hexcolor"
	"go.jacobcolvin.com/colordropper/layer"
	"go.jacobcolvin.com/colordropper/magnifier"
	"go.jacobcolvin.com/colordropper/scene"
	"go.jacobcolvin.com/colordropper/surface"
)

// SceneOptions converts f into [scene.Options]. f must be valid.
func (f *File) SceneOptions() (scene.Options, error) {
	interp, err := surface.ParseInterpolator(f.Render.Interpolator)
	if err != nil {
		return scene.Options{}, err
	}

	light, err := hexcolor.Parse(f.Background.Light)
	if err != nil {
		return scene.Options{}, err
	}

	dark, err := hexcolor.Parse(f.Background.Dark)
	if err != nil {
		return scene.Options{}, err
	}

	mag, err := f.MagnifierOptions()
	if err != nil {
		return scene.Options{}, err
	}

	return scene.Options{
		Background: layer.BackgroundOptions{
			SquareSize: f.Background.SquareSize,
			Light:      light,
			Dark:       dark,
		},
		Magnifier: mag,
		Canvas: []surface.Option{
			surface.WithInterpolator(interp),
			surface.WithFontSize(f.Picker.Label.FontSize),
		},
	}, nil
}

// MagnifierOptions converts the picker section into [magnifier.Options].
func (f *File) MagnifierOptions() (magnifier.Options, error) {
	p := f.Picker

	labelBG, err := hexcolor.Parse(p.Label.Background)
	if err != nil {
		return magnifier.Options{}, err
	}

	labelText, err := hexcolor.Parse(p.Label.Text)
	if err != nil {
		return magnifier.Options{}, err
	}

	opts := magnifier.DefaultOptions()
	opts.MaxPixelCount = p.MaxPixelCount
	opts.StrokeSize = p.StrokeSize
	opts.SeparatorSize = p.SeparatorSize
	opts.Label = magnifier.LabelOptions{
		Enabled:    p.Label.Enabled,
		Padding:    p.Label.Padding,
		Height:     p.Label.Height,
		Radius:     p.Label.Radius,
		Offset:     p.Label.Offset,
		Background: labelBG,
		Text:       labelText,
	}

	return opts, opts.Validate()
}
