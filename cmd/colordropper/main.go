// Command colordropper picks colors from images with a magnifying lens.
//
// # Usage
//
//	colordropper view IMAGE
//	colordropper render IMAGE --size WxH --pointer X,Y [--press] [--output FILE.png]
//	colordropper config schema|init|show
//	colordropper version
//
// The view command shows the image in the terminal. Moving the mouse over
// it shows the lens; clicking picks the color under its center, which is
// printed when the viewer exits. The render command draws a single frame
// without a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp()
	root := a.rootCmd()

	err := root.ExecuteContext(ctx)
	err = errors.Join(err, a.close())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop already ran.
	}
}
