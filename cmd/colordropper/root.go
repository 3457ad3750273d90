package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/colordropper/asset"
	"go.jacobcolvin.com/colordropper/config"
	"go.jacobcolvin.com/colordropper/log"
	"go.jacobcolvin.com/colordropper/magnifier"
	"go.jacobcolvin.com/colordropper/profile"
	"go.jacobcolvin.com/colordropper/version"
)

// app holds state shared by all commands.
type app struct {
	log     *log.Config
	profile *profile.Config
	config  *config.Config
	logger  *slog.Logger
	session *profile.Session
	closers []func() error
}

func newApp() *app {
	return &app{
		log:     log.NewConfig(),
		profile: profile.NewConfig(),
		config:  config.NewConfig(),
		logger:  slog.New(slog.DiscardHandler),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "colordropper",
		Short: "Pick colors from images with a magnifying lens",
		Long: `colordropper shows an image with a checkerboard behind it and a magnifying
lens that follows the pointer. Pressing the pointer picks the color under the
center of the lens.`,
		Version:           version.Get().String(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	a.log.RegisterFlags(flags)
	a.profile.RegisterFlags(flags)
	a.config.RegisterFlags(flags)

	root.AddCommand(
		a.viewCmd(),
		a.renderCmd(),
		a.configCmd(),
		a.versionCmd(),
	)

	for _, register := range []func(*cobra.Command) error{
		a.log.RegisterCompletions,
		a.profile.RegisterCompletions,
		a.config.RegisterCompletions,
	} {
		err := register(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	return root
}

// setup opens the log and starts profiling. Both are released by close.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	h, closeLog, err := a.log.Open(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.closers = append(a.closers, closeLog)
	a.logger = slog.New(h)

	s, err := a.profile.Start()
	if err != nil {
		return err
	}

	a.session = s
	a.logger.Debug("starting", slog.String("command", cmd.CommandPath()), slog.String("version", version.Version))

	return nil
}

// close stops profiling and closes the log. It is safe to call when setup
// never ran.
func (a *app) close() error {
	var errs []error

	if a.session != nil {
		errs = append(errs, a.session.Stop())
	}

	for _, c := range a.closers {
		errs = append(errs, c())
	}

	a.closers = nil

	return errors.Join(errs...)
}

// imageLoader loads the image at path.
func imageLoader(path string) asset.LoadFunc {
	return func(context.Context) (image.Image, error) {
		return asset.Load(path)
	}
}

// lensLoader loads the configured lens icon, or draws a ring sized by the
// picker settings when none is configured.
func lensLoader(p config.Picker) asset.LoadFunc {
	return func(context.Context) (image.Image, error) {
		if p.LensIcon == "" {
			return magnifier.LensIcon(p.LensDiameter, int(math.Round(p.StrokeSize))), nil
		}

		img, err := asset.Load(p.LensIcon)
		if err != nil {
			return nil, fmt.Errorf("lens icon: %w", err)
		}

		return img, nil
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())

			return err
		},
	}
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
