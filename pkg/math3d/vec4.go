package math3d

// Vec4 is a homogeneous point. Points built with Point carry W = 1; after a
// projection W holds the view-space depth until Divide is applied.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point creates a homogeneous point with W = 1.
func Point(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

// Vec3 drops W.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Divide performs the perspective divide. The result has W = 1.
// A zero W leaves X, Y and Z untouched.
func (v Vec4) Divide() Vec4 {
	if v.W == 0 {
		return Vec4{v.X, v.Y, v.Z, 1}
	}
	return Vec4{v.X / v.W, v.Y / v.W, v.Z / v.W, 1}
}

// Add returns the sum of the spatial parts; W is taken from a.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W}
}

// Sub returns the difference of the spatial parts as a direction.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Lerp interpolates all four components.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return Vec4{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}
