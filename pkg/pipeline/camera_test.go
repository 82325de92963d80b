package pipeline

import (
	"math"
	"testing"

	"github.com/xgraph-go/xgraph/pkg/math3d"
)

const epsilon = 1e-9

func vec3Near(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

func TestCameraLookDir(t *testing.T) {
	tests := []struct {
		name  string
		yaw   float64
		look  math3d.Vec3
		right math3d.Vec3
	}{
		{"forward", 0, math3d.V3(0, 0, 1), math3d.V3(1, 0, 0)},
		{"quarter turn", math.Pi / 2, math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{"half turn", math.Pi, math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera()
			cam.Yaw = tc.yaw
			if got := cam.LookDir(); !vec3Near(got, tc.look) {
				t.Errorf("LookDir() = %v, want %v", got, tc.look)
			}
			if got := cam.Right(); !vec3Near(got, tc.right) {
				t.Errorf("Right() = %v, want %v", got, tc.right)
			}
		})
	}
}

func TestCameraViewMatrix(t *testing.T) {
	t.Run("origin is identity", func(t *testing.T) {
		view := NewCamera().ViewMatrix()
		id := math3d.Identity()
		for i := range view {
			if math.Abs(view[i]-id[i]) > epsilon {
				t.Fatalf("view[%d] = %v, want %v", i, view[i], id[i])
			}
		}
	})

	t.Run("translated", func(t *testing.T) {
		cam := NewCamera()
		cam.Position = math3d.V3(0, 0, -5)
		got := cam.ViewMatrix().MulVec3(math3d.V3(0, 0, 0))
		if !vec3Near(got, math3d.V3(0, 0, 5)) {
			t.Errorf("origin in view space = %v, want (0, 0, 5)", got)
		}
	})

	t.Run("turned around", func(t *testing.T) {
		cam := NewCamera()
		cam.Position = math3d.V3(0, 0, 5)
		cam.Yaw = math.Pi
		got := cam.ViewMatrix().MulVec3(math3d.V3(1, 2, 0))
		// Looking down -Z, world +X is on the camera's left.
		if !vec3Near(got, math3d.V3(-1, 2, 5)) {
			t.Errorf("point in view space = %v, want (-1, 2, 5)", got)
		}
	})
}

func TestCameraMovement(t *testing.T) {
	cam := NewCamera()
	cam.MoveForward(2)
	cam.Strafe(3)
	cam.Lift(1)
	if !vec3Near(cam.Position, math3d.V3(3, 1, 2)) {
		t.Fatalf("position = %v, want (3, 1, 2)", cam.Position)
	}

	cam.Turn(math.Pi / 2)
	cam.MoveForward(1)
	if !vec3Near(cam.Position, math3d.V3(4, 1, 2)) {
		t.Errorf("position after turn = %v, want (4, 1, 2)", cam.Position)
	}
}

func TestCameraProjection(t *testing.T) {
	cam := NewCamera()
	proj := cam.ProjectionMatrix(2)

	p := proj.MulVec4(math3d.Point(4, 2, 2))
	if math.Abs(p.W-2) > epsilon {
		t.Errorf("clip W = %v, want view z 2", p.W)
	}
	ndc := p.Divide()
	if math.Abs(ndc.X-1) > epsilon || math.Abs(ndc.Y-1) > epsilon {
		t.Errorf("ndc = %v, want x = y = 1 at the frustum corner", ndc)
	}
}
