package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/colordropper/ansi"
	"go.jacobcolvin.com/colordropper/asset"
	"go.jacobcolvin.com/colordropper/scene"
)

var errInvalidPair = errors.New("invalid value")

type renderFlags struct {
	size     string
	pointer  string
	output   string
	cols     int
	press    bool
	noPicker bool
	ansi     bool
}

func (a *app) renderCmd() *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:   "render IMAGE",
		Short: "Render one frame and print the color under the pointer",
		Long: `render draws IMAGE on a canvas of --size pixels with the pointer at
--pointer, as the viewer would. With --press the color under the lens center
is picked and printed; without it the hovered color is printed instead.
The frame can be saved with --output or printed with --ansi.`,
		Example: `  colordropper render photo.jpg --size 800x600 --pointer 400,300 --press
  colordropper render photo.jpg --size 320x240 --pointer 10,10 --output frame.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], rf)
		},
		ValidArgsFunction: imageCompletion,
	}

	flags := cmd.Flags()
	flags.StringVar(&rf.size, "size", "", "canvas size as WIDTHxHEIGHT")
	flags.StringVar(&rf.pointer, "pointer", "", "pointer position as X,Y")
	flags.BoolVar(&rf.press, "press", false, "press the pointer")
	flags.BoolVar(&rf.noPicker, "no-picker", false, "hide the lens")
	flags.StringVarP(&rf.output, "output", "o", "", "write the frame to this image file")
	flags.BoolVar(&rf.ansi, "ansi", false, "print the frame as colored text")
	flags.IntVar(&rf.cols, "cols", 0, "columns for --ansi (default terminal width or 80)")

	err := errors.Join(
		cmd.MarkFlagRequired("size"),
		cmd.MarkFlagRequired("pointer"),
		cmd.RegisterFlagCompletionFunc("output",
			cobra.FixedCompletions([]string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff"},
				cobra.ShellCompDirectiveFilterFileExt)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "register render flags: %v\n", err)
	}

	return cmd
}

func (a *app) render(cmd *cobra.Command, path string, rf renderFlags) error {
	w, h, err := parsePair(rf.size, "x")
	if err != nil {
		return fmt.Errorf("--size: %w", err)
	}

	if w <= 0 || h <= 0 {
		return fmt.Errorf("--size: %w: %q must be positive", errInvalidPair, rf.size)
	}

	x, y, err := parsePair(rf.pointer, ",")
	if err != nil {
		return fmt.Errorf("--pointer: %w", err)
	}

	f, err := a.config.Load(false)
	if err != nil {
		return err
	}

	opts, err := f.SceneOptions()
	if err != nil {
		return err
	}

	sc, err := scene.New(w, h, opts, a.logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	img, err := imageLoader(path)(ctx)
	if err != nil {
		return err
	}

	sc.SetImage(img)

	if rf.noPicker {
		sc.DisablePicker()
	} else {
		lens, err := lensLoader(f.Picker)(ctx)
		if err != nil {
			return err
		}

		sc.SetLens(lens)
	}

	in := sc.Input()
	in.Move(x, y)

	if image.Pt(x, y).In(image.Rect(0, 0, w, h)) {
		in.Enter()
	}

	if rf.press {
		in.Press()
	}

	res := sc.Tick()
	frame := sc.Canvas().Image()

	if rf.output != "" {
		err := asset.Save(rf.output, frame)
		if err != nil {
			return err
		}

		a.logger.Info("wrote frame", slog.String("path", rf.output))
	}

	out := cmd.OutOrStdout()

	if rf.ansi {
		cols := rf.cols
		if cols <= 0 {
			cols = terminalWidth()
		}

		small, err := ansi.Shrink(frame, cols, cols)
		if err != nil {
			return err
		}

		var b strings.Builder
		ansi.Render(&b, small)

		err = writeString(out, b.String())
		if err != nil {
			return err
		}
	}

	switch {
	case res.Committed:
		return writeString(out, res.Selected+"\n")

	case !sc.Magnifier().Grid().Empty():
		return writeString(out, "hovered "+sc.Magnifier().Grid().Center().Hex()+"\n")
	}

	a.logger.Info("no color under the pointer", slog.Int("x", x), slog.Int("y", y))

	return nil
}

// parsePair parses two integers separated by sep, such as "800x600".
func parsePair(s, sep string) (int, int, error) {
	l, r, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q, want two integers separated by %q", errInvalidPair, s, sep)
	}

	a, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", errInvalidPair, s, err)
	}

	b, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", errInvalidPair, s, err)
	}

	return a, b, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd()) //nolint:gosec // File descriptors fit in int.
	if !term.IsTerminal(fd) {
		return 80
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}

	return w
}
