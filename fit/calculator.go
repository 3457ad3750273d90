package fit

// Calculator memoizes [Compute] for the most recent viewport and image.
//
// A render loop calls [Calculator.Fit] every frame; the geometry is only
// recomputed when either input changed. The zero value is ready to use. It
// is not safe for concurrent use.
type Calculator struct {
	err      error
	geometry Geometry
	viewport Viewport
	image    ImageSize
	valid    bool
}

// Fit returns the geometry for v and img, reusing the previous result when
// both inputs are unchanged. Errors are cached like results.
func (c *Calculator) Fit(v Viewport, img ImageSize) (Geometry, error) {
	if c.valid && c.viewport == v && c.image == img {
		return c.geometry, c.err
	}

	c.geometry, c.err = Compute(v, img)
	c.viewport, c.image = v, img
	c.valid = true

	return c.geometry, c.err
}

// Reset forgets the cached result.
func (c *Calculator) Reset() {
	*c = Calculator{}
}

// Cached reports the inputs of the cached result, if any.
func (c *Calculator) Cached() (Viewport, ImageSize, bool) {
	return c.viewport, c.image, c.valid
}
