// Package config loads the colordropper configuration file.
//
// The file is YAML. It is checked against the JSON Schema returned by
// [Schema] before it is decoded, then decoded over [Default] so omitted keys
// keep their defaults, and finally checked by [File.Validate].
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"go.jacobcolvin.com/colordropper/asset"
	"go.jacobcolvin.com/colordropper/hexcolor"
	"go.jacobcolvin.com/colordropper/surface"
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// File is the configuration file.
type File struct {
	Picker     Picker     `json:"picker"     yaml:"picker"     jsonschema:"magnifying color picker"`
	Terminal   Terminal   `json:"terminal"   yaml:"terminal"   jsonschema:"overrides applied by the terminal viewer"`
	Background Background `json:"background" yaml:"background" jsonschema:"checkerboard drawn behind the image"`
	Render     Render     `json:"render"     yaml:"render"     jsonschema:"rendering settings"`
}

// Picker configures the magnifier.
type Picker struct {
	LensIcon      string  `json:"lensIcon"      yaml:"lensIcon"      jsonschema:"image file used as the lens; empty draws a plain ring"`
	Label         Label   `json:"label"         yaml:"label"         jsonschema:"hex label under the lens"`
	MaxPixelCount int     `json:"maxPixelCount" yaml:"maxPixelCount" jsonschema:"side of the sampled square in pixels; must be odd"`
	StrokeSize    float64 `json:"strokeSize"    yaml:"strokeSize"    jsonschema:"width of the lens rim in pixels"`
	SeparatorSize float64 `json:"separatorSize" yaml:"separatorSize" jsonschema:"gap between magnified pixels"`
	LensDiameter  int     `json:"lensDiameter"  yaml:"lensDiameter"  jsonschema:"diameter of the generated lens in pixels"`
}

// Label configures the hex label.
type Label struct {
	Background string  `json:"background" yaml:"background" jsonschema:"label fill color"`
	Text       string  `json:"text"       yaml:"text"       jsonschema:"label text color"`
	Padding    float64 `json:"padding"    yaml:"padding"    jsonschema:"horizontal padding added to the text width"`
	Height     float64 `json:"height"     yaml:"height"     jsonschema:"label height in pixels"`
	Radius     float64 `json:"radius"     yaml:"radius"     jsonschema:"corner radius in pixels"`
	FontSize   float64 `json:"fontSize"   yaml:"fontSize"   jsonschema:"font size in points"`
	Offset     float64 `json:"offset"     yaml:"offset"     jsonschema:"vertical position as a fraction of the lens diameter"`
	Enabled    bool    `json:"enabled"    yaml:"enabled"    jsonschema:"draw the label"`
}

// Terminal holds picker settings for the terminal viewer, where one pixel
// is half a character cell.
type Terminal struct {
	MaxPixelCount int     `json:"maxPixelCount" yaml:"maxPixelCount" jsonschema:"side of the sampled square in pixels; must be odd"`
	StrokeSize    float64 `json:"strokeSize"    yaml:"strokeSize"    jsonschema:"width of the lens rim in pixels"`
	LensDiameter  int     `json:"lensDiameter"  yaml:"lensDiameter"  jsonschema:"diameter of the generated lens in pixels"`
	Label         bool    `json:"label"         yaml:"label"         jsonschema:"draw the hex label inside the terminal canvas"`
}

// Background configures the checkerboard.
type Background struct {
	Light      string `json:"light"      yaml:"light"      jsonschema:"light square color"`
	Dark       string `json:"dark"       yaml:"dark"       jsonschema:"dark square color"`
	SquareSize int    `json:"squareSize" yaml:"squareSize" jsonschema:"square side in pixels"`
}

// Render configures drawing.
type Render struct {
	Interpolator string `json:"interpolator" yaml:"interpolator" jsonschema:"image scaling interpolator"`
	FPS          int    `json:"fps"          yaml:"fps"          jsonschema:"terminal viewer frames per second"`
}

// Default returns the default configuration.
func Default() *File {
	return &File{
		Picker: Picker{
			MaxPixelCount: 13,
			StrokeSize:    11,
			SeparatorSize: 1,
			LensDiameter:  150,
			Label: Label{
				Enabled:    true,
				Padding:    16,
				Height:     20,
				Radius:     10,
				FontSize:   14,
				Offset:     0.75,
				Background: "#dddddd",
				Text:       "#000000",
			},
		},
		Terminal: Terminal{
			MaxPixelCount: 9,
			StrokeSize:    4,
			LensDiameter:  48,
		},
		Background: Background{
			SquareSize: 10,
			Light:      "#ffffff",
			Dark:       "#a4a4a4",
		},
		Render: Render{
			Interpolator: surface.DefaultInterpolator,
			FPS:          30,
		},
	}
}

// Parse validates and decodes YAML. Empty input yields [Default].
func Parse(b []byte) (*File, error) {
	f := Default()
	if len(bytes.TrimSpace(b)) == 0 {
		return f, nil
	}

	empty, err := validateSchema(b)
	if err != nil {
		return nil, err
	}

	if empty {
		return f, nil
	}

	err = yaml.Unmarshal(b, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err = f.Validate()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path) //nolint:gosec // Config path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Save writes f to path as YAML, creating parent directories.
func (f *File) Save(path string) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	err = os.WriteFile(path, b, 0o600)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks constraints the schema cannot express.
func (f *File) Validate() error {
	var errs []error

	p := f.Picker
	if p.MaxPixelCount < 1 || p.MaxPixelCount%2 == 0 {
		errs = append(errs, fmt.Errorf("picker.maxPixelCount: %d is not a positive odd number", p.MaxPixelCount))
	}

	if float64(p.LensDiameter) <= 2*p.StrokeSize {
		errs = append(errs, fmt.Errorf("picker.lensDiameter: %d leaves no room inside a %g pixel rim", p.LensDiameter, p.StrokeSize))
	}

	if p.StrokeSize < 0 || p.SeparatorSize < 0 {
		errs = append(errs, fmt.Errorf("picker: strokeSize %g and separatorSize %g must not be negative", p.StrokeSize, p.SeparatorSize))
	}

	if l := p.Label; l.Height < 0 || l.Radius < 0 || l.Padding < 0 {
		errs = append(errs, fmt.Errorf("picker.label: height %g, radius %g and padding %g must not be negative", l.Height, l.Radius, l.Padding))
	}

	if p.LensIcon != "" && !asset.Supported(p.LensIcon) {
		errs = append(errs, fmt.Errorf("picker.lensIcon: %w: %q", asset.ErrUnsupportedFormat, p.LensIcon))
	}

	t := f.Terminal
	if t.MaxPixelCount < 1 || t.MaxPixelCount%2 == 0 {
		errs = append(errs, fmt.Errorf("terminal.maxPixelCount: %d is not a positive odd number", t.MaxPixelCount))
	}

	if float64(t.LensDiameter) <= 2*t.StrokeSize {
		errs = append(errs, fmt.Errorf("terminal.lensDiameter: %d leaves no room inside a %g pixel rim", t.LensDiameter, t.StrokeSize))
	}

	if f.Background.SquareSize < 1 {
		errs = append(errs, fmt.Errorf("background.squareSize: %d is not positive", f.Background.SquareSize))
	}

	for name, c := range map[string]string{
		"background.light":        f.Background.Light,
		"background.dark":         f.Background.Dark,
		"picker.label.background": p.Label.Background,
		"picker.label.text":       p.Label.Text,
	} {
		_, err := hexcolor.Parse(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	_, err := surface.ParseInterpolator(f.Render.Interpolator)
	if err != nil {
		errs = append(errs, fmt.Errorf("render.interpolator: %w", err))
	}

	if f.Render.FPS < 1 || f.Render.FPS > 120 {
		errs = append(errs, fmt.Errorf("render.fps: %d is outside 1..120", f.Render.FPS))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// ForTerminal returns a copy of f with the terminal overrides applied to the
// picker.
func (f *File) ForTerminal() *File {
	out := *f
	out.Picker.MaxPixelCount = f.Terminal.MaxPixelCount
	out.Picker.StrokeSize = f.Terminal.StrokeSize
	out.Picker.LensDiameter = f.Terminal.LensDiameter
	out.Picker.Label.Enabled = f.Terminal.Label

	return &out
}

// validateSchema checks b against [Schema]. It reports true for a document
// that holds nothing but comments.
func validateSchema(b []byte) (bool, error) {
	rs, err := resolvedSchema()
	if err != nil {
		return false, err
	}

	jb, err := yaml.YAMLToJSON(b)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var doc any

	err = json.Unmarshal(jb, &doc)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if doc == nil {
		return true, nil
	}

	err = rs.Validate(doc)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return false, nil
}
