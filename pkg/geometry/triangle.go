package geometry

import (
	"errors"
	"image/color"
	"math"

	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// ErrClipPartition reports that a triangle's vertices could not be split
// into inside and outside sets, which happens when a coordinate is NaN.
var ErrClipPartition = errors.New("clip: vertex partition does not cover triangle")

// Triangle is three positions with matching texture coordinates and a flat
// color. Index i of P and T describe the same vertex.
type Triangle struct {
	P     [3]math3d.Vec4
	T     [3]math3d.TexCoord
	Color color.RGBA
}

// NewTriangle creates a triangle from three points with zeroed texture
// coordinates (W = 1) and an opaque white color.
func NewTriangle(a, b, c math3d.Vec3) Triangle {
	return Triangle{
		P:     [3]math3d.Vec4{a.Point(), b.Point(), c.Point()},
		T:     [3]math3d.TexCoord{math3d.UV(0, 0), math3d.UV(0, 0), math3d.UV(0, 0)},
		Color: color.RGBA{255, 255, 255, 255},
	}
}

// Normal returns the unit face normal cross(p1-p0, p2-p0). The vertex
// winding decides which side the normal points to. Zero-area triangles
// return the zero vector.
func (t Triangle) Normal() math3d.Vec3 {
	e1 := t.P[1].Sub(t.P[0])
	e2 := t.P[2].Sub(t.P[0])
	return e1.Cross(e2).Normalize()
}

// Transform returns the triangle with every position multiplied by m.
// Texture coordinates and color are carried over.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	out := t
	for i := range out.P {
		out.P[i] = m.MulVec4(t.P[i])
	}
	return out
}

// Area2D returns the unsigned area of the triangle projected onto the XY
// plane.
func (t Triangle) Area2D() float64 {
	e1 := t.P[1].Sub(t.P[0])
	e2 := t.P[2].Sub(t.P[0])
	return math.Abs(e1.X*e2.Y-e1.Y*e2.X) / 2
}

// AverageZ returns the mean Z of the three positions.
func (t Triangle) AverageZ() float64 {
	return (t.P[0].Z + t.P[1].Z + t.P[2].Z) / 3
}

// ClipAgainstPlane clips t against p and writes the surviving pieces to
// out, returning how many were written (0, 1 or 2). The input is never
// modified. New vertices interpolate position and texture coordinates
// linearly along the clipped edge; the color is copied.
//
// For two inside vertices the quad is split as (in0, in1, x0) and
// (in1, x0, x1), where x0 and x1 are the crossings on in0→out and in1→out.
func (t Triangle) ClipAgainstPlane(p Plane, out *[2]Triangle) (int, error) {
	var inside, outside [3]int
	var nIn, nOut int

	for i := range t.P {
		d := p.SignedDistance(t.P[i].Vec3())
		switch {
		case d >= 0:
			inside[nIn] = i
			nIn++
		case d < 0:
			outside[nOut] = i
			nOut++
		}
	}

	if nIn+nOut != 3 {
		return 0, ErrClipPartition
	}

	switch nIn {
	case 0:
		return 0, nil

	case 3:
		out[0] = t
		return 1, nil

	case 1:
		i0, o0, o1 := inside[0], outside[0], outside[1]
		tri := Triangle{Color: t.Color}
		tri.P[0], tri.T[0] = t.P[i0], t.T[i0]
		tri.P[1], tri.T[1] = t.crossing(p, i0, o0)
		tri.P[2], tri.T[2] = t.crossing(p, i0, o1)
		out[0] = tri
		return 1, nil

	default:
		i0, i1, o0 := inside[0], inside[1], outside[0]
		x0p, x0t := t.crossing(p, i0, o0)
		x1p, x1t := t.crossing(p, i1, o0)

		a := Triangle{Color: t.Color}
		a.P[0], a.T[0] = t.P[i0], t.T[i0]
		a.P[1], a.T[1] = t.P[i1], t.T[i1]
		a.P[2], a.T[2] = x0p, x0t

		b := Triangle{Color: t.Color}
		b.P[0], b.T[0] = t.P[i1], t.T[i1]
		b.P[1], b.T[1] = x0p, x0t
		b.P[2], b.T[2] = x1p, x1t

		out[0], out[1] = a, b
		return 2, nil
	}
}

// crossing returns the interpolated vertex where edge from→to meets p.
func (t Triangle) crossing(p Plane, from, to int) (math3d.Vec4, math3d.TexCoord) {
	pos, s := p.IntersectSegment(t.P[from], t.P[to])
	return pos, t.T[from].Lerp(t.T[to], s)
}
