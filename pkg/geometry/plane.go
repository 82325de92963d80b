// Package geometry provides the triangle primitive and the plane clipper
// shared by the near-plane and viewport stages of the pipeline.
package geometry

import (
	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// Plane represents a plane using the equation Normal · p + D = 0.
// The half-space Normal points into is the inside of the plane.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// NewPlane creates a plane through point with the given normal.
// The normal is normalised.
func NewPlane(point, normal math3d.Vec3) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, D: -n.Dot(point)}
}

// SignedDistance returns the signed distance from the plane to p.
// Positive is inside, negative is outside.
func (p Plane) SignedDistance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Inside reports whether point is on the inside of the plane. Points on
// the plane count as inside. NaN distances are neither inside nor outside.
func (p Plane) Inside(point math3d.Vec3) bool {
	return p.SignedDistance(point) >= 0
}

// IntersectSegment returns the point where the segment from start to end
// crosses the plane and the parameter t along the segment, so that the
// intersection equals start.Lerp(end, t). A segment parallel to the plane
// returns start and t = 0.
func (p Plane) IntersectSegment(start, end math3d.Vec4) (math3d.Vec4, float64) {
	ad := p.Normal.Dot(start.Vec3())
	bd := p.Normal.Dot(end.Vec3())
	if ad == bd {
		return start, 0
	}
	t := (-p.D - ad) / (bd - ad)
	return start.Lerp(end, t), t
}
