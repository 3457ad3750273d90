package asset

import (
	"context"
	"image"
	"sync/atomic"
)

// LoadFunc produces an image, typically by calling [Load].
type LoadFunc func(ctx context.Context) (image.Image, error)

type result struct {
	img image.Image
	err error
}

// Handle is an image being loaded in the background.
//
// A render loop polls [Handle.Ready] every frame and draws nothing until it
// reports true; it never blocks on the load.
type Handle struct {
	res  atomic.Pointer[result]
	done chan struct{}
}

// Go starts fn in a new goroutine and returns its [Handle]. Cancelling ctx
// is passed on to fn.
func Go(ctx context.Context, fn LoadFunc) *Handle {
	h := &Handle{done: make(chan struct{})}

	go func() {
		img, err := fn(ctx)
		h.res.Store(&result{img: img, err: err})
		close(h.done)
	}()

	return h
}

// Ready returns the image once it loaded successfully.
func (h *Handle) Ready() (image.Image, bool) {
	r := h.res.Load()
	if r == nil || r.err != nil {
		return nil, false
	}

	return r.img, true
}

// Err returns the load error, or nil while loading or after success.
func (h *Handle) Err() error {
	r := h.res.Load()
	if r == nil {
		return nil
	}

	return r.err
}

// Done is closed when the load finishes.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the load finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-h.done:
		r := h.res.Load()

		return r.img, r.err

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
