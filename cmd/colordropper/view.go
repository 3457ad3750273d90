package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/colordropper/ansi"
	"go.jacobcolvin.com/colordropper/asset"
	"go.jacobcolvin.com/colordropper/log"
	"go.jacobcolvin.com/colordropper/scene"
	"go.jacobcolvin.com/colordropper/tui"
)

var (
	errNotTerminal = errors.New("view needs an interactive terminal, use render instead")
	errUnsupported = errors.New("unsupported image file")
)

func (a *app) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view IMAGE",
		Short: "Show an image in the terminal and pick colors with the mouse",
		Long: `view shows IMAGE in the terminal. Move the mouse over the image to see the
lens and click to pick the color under its center. Press p to toggle the
lens and q to quit. The last picked color is printed on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, args[0])
		},
		ValidArgsFunction: imageCompletion,
	}
}

func (a *app) view(cmd *cobra.Command, path string) error {
	if !asset.Supported(path) {
		return fmt.Errorf("%w: %s", errUnsupported, path)
	}

	fd := int(os.Stdout.Fd()) //nolint:gosec // File descriptors fit in int.
	if !term.IsTerminal(fd) {
		return errNotTerminal
	}

	f, err := a.config.Load(true)
	if err != nil {
		return err
	}

	opts, err := f.SceneOptions()
	if err != nil {
		return err
	}

	// Log lines would tear the screen, so they go to the status row unless
	// a log file was given.
	logger := a.logger

	var logs *log.Subscription

	if a.log.File == "" {
		pub := log.NewPublisher(log.WithBufferSize(8))
		defer pub.Close() //nolint:errcheck // Close never fails.

		h, err := a.log.NewHandler(pub)
		if err != nil {
			return err
		}

		logger = slog.New(h)
		logs = pub.Subscribe()
	}

	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	w, h := ansi.CanvasSize(cols, rows-1)

	sc, err := scene.New(w, h, opts, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	m, err := tui.New(ctx, sc, tui.Options{
		Image: imageLoader(path),
		Lens:  lensLoader(f.Picker),
		Logs:  logs,
		Title: "colordropper " + path,
		FPS:   f.Render.FPS,
	}, logger)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}

	err = m.Err()
	if err != nil {
		return err
	}

	if c := m.Selected(); c != "" {
		return writeString(cmd.OutOrStdout(), c+"\n")
	}

	return nil
}

func imageCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	exts := make([]string, 0, len(asset.Extensions()))
	for _, ext := range asset.Extensions() {
		exts = append(exts, ext[1:])
	}

	return exts, cobra.ShellCompDirectiveFilterFileExt
}
