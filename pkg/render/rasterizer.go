package render

import (
	"github.com/xgraph-go/xgraph/pkg/geometry"
)

// Rasterizer scan-converts screen-space triangles into a framebuffer.
// Positions are truncated to whole pixels; texture coordinates are expected
// to hold (u/w, v/w, 1/w) as produced by projection.
type Rasterizer struct {
	fb    *Framebuffer
	depth *DepthBuffer

	// WireColor is the line color used by DrawTriangleWire callers that
	// do not pick their own.
	WireColor Color
}

// NewRasterizer creates a rasterizer with a depth buffer sized to fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		fb:        fb,
		depth:     NewDepthBuffer(fb.Width, fb.Height),
		WireColor: ColorWhite,
	}
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Depth returns the inverse-depth buffer used by textured fills.
func (r *Rasterizer) Depth() *DepthBuffer {
	return r.depth
}

// ClearDepth resets the depth buffer; call once before each frame.
func (r *Rasterizer) ClearDepth() {
	r.depth.Clear()
}

// FillTriangle fills tri with tri.Color. There is no depth test, so
// overlapping triangles must arrive far to near.
func (r *Rasterizer) FillTriangle(tri geometry.Triangle) {
	c := tri.Color
	scanTriangle(tri, func(x, y int, _, _, _ float64) {
		r.fb.SetPixel(x, y, c)
	})
}

// DrawTriangleTextured fills tri from tex with perspective correction.
// A pixel is written only when its interpolated 1/w beats the depth buffer.
func (r *Rasterizer) DrawTriangleTextured(tri geometry.Triangle, tex Sampler) {
	scanTriangle(tri, func(x, y int, u, v, w float64) {
		if r.depth.TestAndSet(x, y, w) {
			r.fb.SetPixel(x, y, tex.Sample(u/w, v/w))
		}
	})
}

// DrawTriangleWire outlines tri in c.
func (r *Rasterizer) DrawTriangleWire(tri geometry.Triangle, c Color) {
	for i := range 3 {
		a, b := tri.P[i], tri.P[(i+1)%3]
		r.fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}

// scanVertex is a vertex snapped to the pixel grid.
type scanVertex struct {
	x, y    int
	u, v, w float64
}

// edgeAt returns the attributes along the edge a→b at row y.
// The caller guarantees a.y != b.y.
func edgeAt(a, b scanVertex, y int) (x, u, v, w float64) {
	s := float64(y-a.y) / float64(b.y-a.y)
	x = float64(a.x) + float64(b.x-a.x)*s
	u = a.u + (b.u-a.u)*s
	v = a.v + (b.v-a.v)*s
	w = a.w + (b.w-a.w)*s
	return x, u, v, w
}

// scanTriangle visits every covered pixel top to bottom, splitting the
// triangle at its middle vertex. Long edge top→bottom is line B; line A is
// top→middle for the upper half and middle→bottom for the lower half.
func scanTriangle(tri geometry.Triangle, plot func(x, y int, u, v, w float64)) {
	var vs [3]scanVertex
	for i := range 3 {
		vs[i] = scanVertex{
			x: int(tri.P[i].X), y: int(tri.P[i].Y),
			u: tri.T[i].U, v: tri.T[i].V, w: tri.T[i].W,
		}
	}
	// Stable insertion sort by y.
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && vs[j].y < vs[j-1].y; j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
		}
	}
	top, mid, bot := vs[0], vs[1], vs[2]
	if top.y == bot.y {
		return
	}

	y := top.y
	if mid.y > top.y {
		for ; y <= mid.y; y++ {
			scanRow(y, top, mid, top, bot, plot)
		}
	}
	if bot.y > mid.y {
		for ; y <= bot.y; y++ {
			scanRow(y, mid, bot, top, bot, plot)
		}
	}
}

// scanRow fills row y between edge a0→a1 and edge b0→b1.
func scanRow(y int, a0, a1, b0, b1 scanVertex, plot func(x, y int, u, v, w float64)) {
	ax, au, av, aw := edgeAt(a0, a1, y)
	bx, bu, bv, bw := edgeAt(b0, b1, y)
	if ax > bx {
		ax, bx = bx, ax
		au, bu = bu, au
		av, bv = bv, av
		aw, bw = bw, aw
	}

	start, end := int(ax), int(bx)
	step := 0.0
	if end > start {
		step = 1 / float64(end-start)
	}
	t := 0.0
	for x := start; x <= end; x++ {
		plot(x, y,
			au+(bu-au)*t,
			av+(bv-av)*t,
			aw+(bw-aw)*t,
		)
		t += step
	}
}
