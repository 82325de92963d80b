package pipeline

import (
	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward (toward the center of the frustum).
type Frustum struct {
	Planes [6]geometry.Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// whose clip volume is -w <= x, y <= w and 0 <= z <= w (Gribb/Hartmann).
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	// For column-major m, row i element j is at m[i + j*4].
	row := func(i int) [4]float64 {
		return [4]float64{m[i], m[i+4], m[i+8], m[i+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[FrustumLeft] = planeFrom(r3, r0, 1)
	f.Planes[FrustumRight] = planeFrom(r3, r0, -1)
	f.Planes[FrustumBottom] = planeFrom(r3, r1, 1)
	f.Planes[FrustumTop] = planeFrom(r3, r1, -1)
	f.Planes[FrustumNear] = planeFrom([4]float64{}, r2, 1)
	f.Planes[FrustumFar] = planeFrom(r3, r2, -1)
	return f
}

// planeFrom builds the unit plane a + sign*b.
func planeFrom(a, b [4]float64, sign float64) geometry.Plane {
	n := math3d.V3(a[0]+sign*b[0], a[1]+sign*b[1], a[2]+sign*b[2])
	d := a[3] + sign*b[3]
	l := n.Len()
	if l == 0 {
		return geometry.Plane{Normal: n, D: d}
	}
	return geometry.Plane{Normal: n.Scale(1 / l), D: d / l}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns an AABB that bounds all 8 corners of b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	first := m.MulVec3(b.Min)
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		c := math3d.V3(
			selectComponent(i&1 != 0, b.Max.X, b.Min.X),
			selectComponent(i&2 != 0, b.Max.Y, b.Min.Y),
			selectComponent(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.MulVec3(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB reports whether any part of box may be inside the frustum.
// It tests the corner furthest along each plane normal, so boxes near a
// frustum edge can give false positives but never false negatives.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		p := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			selectComponent(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			selectComponent(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether box is completely inside the frustum.
func (f Frustum) ContainsAABB(box AABB) bool {
	for _, plane := range f.Planes {
		n := math3d.V3(
			selectComponent(plane.Normal.X >= 0, box.Min.X, box.Max.X),
			selectComponent(plane.Normal.Y >= 0, box.Min.Y, box.Max.Y),
			selectComponent(plane.Normal.Z >= 0, box.Min.Z, box.Max.Z),
		)
		if plane.SignedDistance(n) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, plane := range f.Planes {
		if plane.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
