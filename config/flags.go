package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/colordropper/asset"
	"go.jacobcolvin.com/colordropper/surface"
)

// Flags holds CLI flag names for configuration overrides.
type Flags struct {
	File         string
	Interpolator string
	FPS          string
	PixelCount   string
	LensDiameter string
	StrokeSize   string
	LensIcon     string
}

// NewConfig creates a new [Config] using these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values that override the configuration file.
//
// Only flags set on the command line override the file.
type Config struct {
	set          *pflag.FlagSet
	File         string
	Interpolator string
	LensIcon     string
	Flags        Flags
	FPS          int
	PixelCount   int
	LensDiameter int
	StrokeSize   float64
}

// NewConfig returns a [Config] with the default flag names.
func NewConfig() *Config {
	f := Flags{
		File:         "config",
		Interpolator: "interpolator",
		FPS:          "fps",
		PixelCount:   "pixel-count",
		LensDiameter: "lens-diameter",
		StrokeSize:   "stroke-size",
		LensIcon:     "lens-icon",
	}

	return f.NewConfig()
}

// DefaultPath returns the configuration file used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "colordropper", "config.yaml")
}

// RegisterFlags adds configuration flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	c.set = flags

	flags.StringVarP(&c.File, c.Flags.File, "c", "",
		fmt.Sprintf("configuration file (default %s if it exists)", DefaultPath()))
	flags.StringVar(&c.Interpolator, c.Flags.Interpolator, "",
		fmt.Sprintf("override render.interpolator, one of: %s", surface.Interpolators()))
	flags.IntVar(&c.FPS, c.Flags.FPS, 0,
		"override render.fps")
	flags.IntVar(&c.PixelCount, c.Flags.PixelCount, 0,
		"override the sampled square side in pixels, odd")
	flags.IntVar(&c.LensDiameter, c.Flags.LensDiameter, 0,
		"override the generated lens diameter in pixels")
	flags.Float64Var(&c.StrokeSize, c.Flags.StrokeSize, 0,
		"override the lens rim width in pixels")
	flags.StringVar(&c.LensIcon, c.Flags.LensIcon, "",
		"override picker.lensIcon")
}

// RegisterCompletions registers shell completions for configuration flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Interpolator,
		cobra.FixedCompletions(surface.Interpolators(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Interpolator, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.File,
		cobra.FixedCompletions([]string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.File, err)
	}

	var exts []string
	for _, ext := range asset.Extensions() {
		exts = append(exts, ext[1:])
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.LensIcon,
		cobra.FixedCompletions(exts, cobra.ShellCompDirectiveFilterFileExt))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.LensIcon, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.FPS, c.Flags.PixelCount, c.Flags.LensDiameter, c.Flags.StrokeSize} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// Load reads the configuration file, selects the terminal picker settings
// when terminal is true, and applies the flags set on the command line.
//
// Without --config the default path is read if it exists.
func (c *Config) Load(terminal bool) (*File, error) {
	f, err := c.loadFile()
	if err != nil {
		return nil, err
	}

	if terminal {
		f = f.ForTerminal()
	}

	c.override(f)

	err = f.Validate()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (c *Config) loadFile() (*File, error) {
	if c.File != "" {
		return Load(c.File)
	}

	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}

	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return f, err
}

func (c *Config) override(f *File) {
	if c.set == nil {
		return
	}

	changed := func(name string) bool {
		fl := c.set.Lookup(name)

		return fl != nil && fl.Changed
	}

	if changed(c.Flags.Interpolator) {
		f.Render.Interpolator = c.Interpolator
	}

	if changed(c.Flags.FPS) {
		f.Render.FPS = c.FPS
	}

	if changed(c.Flags.PixelCount) {
		f.Picker.MaxPixelCount = c.PixelCount
	}

	if changed(c.Flags.LensDiameter) {
		f.Picker.LensDiameter = c.LensDiameter
	}

	if changed(c.Flags.StrokeSize) {
		f.Picker.StrokeSize = c.StrokeSize
	}

	if changed(c.Flags.LensIcon) {
		f.Picker.LensIcon = c.LensIcon
	}
}
