package render

// DepthBuffer stores, per pixel, the inverse view depth (1/w) of the
// nearest fragment drawn so far. Larger values are closer; 0 means nothing
// has been drawn, which is the state after Clear.
type DepthBuffer struct {
	Width  int
	Height int
	values []float64
}

// NewDepthBuffer allocates a cleared buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		Width:  width,
		Height: height,
		values: make([]float64, width*height),
	}
}

// Clear resets every pixel to 0 (infinitely far).
func (d *DepthBuffer) Clear() {
	clear(d.values)
}

// At returns the stored inverse depth at (x, y), or 0 outside the buffer.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0
	}
	return d.values[y*d.Width+x]
}

// TestAndSet stores invW at (x, y) and reports true only if invW is
// strictly greater than the current value. Ties lose.
func (d *DepthBuffer) TestAndSet(x, y int, invW float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if !(invW > d.values[i]) {
		return false
	}
	d.values[i] = invW
	return true
}
