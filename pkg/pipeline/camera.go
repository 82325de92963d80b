package pipeline

import (
	"math"

	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// Camera is a yaw-only, left-handed camera: +Z is forward at yaw 0 and +Y
// is up. It has no pitch or roll.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Yaw is the rotation about the Y axis in radians.
	Yaw float64

	// Projection parameters
	FOV  float64 // Vertical field of view in radians
	Near float64 // Near clipping plane (view-space distance)
	Far  float64 // Far clipping plane
}

// NewCamera creates a camera at the origin with a 90 degree field of view.
func NewCamera() *Camera {
	return &Camera{
		FOV:  math.Pi / 2,
		Near: 0.1,
		Far:  1000,
	}
}

// LookDir returns the unit direction the camera faces.
func (c *Camera) LookDir() math3d.Vec3 {
	return math3d.RotateY(c.Yaw).MulVec3Dir(math3d.Forward())
}

// Right returns the unit direction to the camera's right.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.Up().Cross(c.LookDir())
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	target := c.Position.Add(c.LookDir())
	return math3d.PointAt(c.Position, target, math3d.Up()).QuickInverse()
}

// ProjectionMatrix returns the perspective matrix for the given
// width/height aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float64) math3d.Mat4 {
	return math3d.PerspectiveLH(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix(aspect float64) math3d.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// Frustum returns the current view frustum in world space.
func (c *Camera) Frustum(aspect float64) Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix(aspect))
}

// NearPlane returns the view-space near clipping plane.
func (c *Camera) NearPlane() (point, normal math3d.Vec3) {
	return math3d.V3(0, 0, c.Near), math3d.Forward()
}

// MoveForward moves the camera along its look direction (backwards if
// distance is negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.LookDir().Scale(distance))
}

// Strafe moves the camera to its right (left if negative).
func (c *Camera) Strafe(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// Lift moves the camera up the world Y axis (down if negative).
func (c *Camera) Lift(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Turn adds delta radians of yaw.
func (c *Camera) Turn(delta float64) {
	c.Yaw += delta
}
