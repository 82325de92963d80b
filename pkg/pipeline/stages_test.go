package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
	"github.com/xgraph-go/xgraph/pkg/models"
)

// originFrame looks down +Z from the origin with an identity world matrix.
func originFrame() *Frame {
	return NewFrame(NewCamera(), math3d.Identity(), math3d.V3(0, 0, -1), 100, 100)
}

func tri3(a, b, c math3d.Vec3) geometry.Triangle {
	return geometry.NewTriangle(a, b, c)
}

func TestTransformAndCullBackFace(t *testing.T) {
	tests := []struct {
		name string
		tri  geometry.Triangle
		kept int
	}{
		{
			"facing the camera",
			tri3(math3d.V3(0, 0, 5), math3d.V3(0, 1, 5), math3d.V3(1, 1, 5)),
			1,
		},
		{
			"facing away",
			tri3(math3d.V3(0, 0, 5), math3d.V3(1, 1, 5), math3d.V3(0, 1, 5)),
			0,
		},
		{
			"edge on",
			tri3(math3d.V3(0, 0, 5), math3d.V3(0, 1, 5), math3d.V3(0, 0, 6)),
			0,
		},
		{
			"zero area",
			tri3(math3d.V3(0, 0, 5), math3d.V3(1, 1, 5), math3d.V3(2, 2, 5)),
			0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := originFrame()
			got, err := f.TransformAndCull(tc.tri, nil)
			if err != nil {
				t.Fatalf("TransformAndCull: %v", err)
			}
			if len(got) != tc.kept {
				t.Errorf("kept %d triangles, want %d", len(got), tc.kept)
			}
			if f.Stats.Culled != 1-tc.kept {
				t.Errorf("Culled = %d, want %d", f.Stats.Culled, 1-tc.kept)
			}
		})
	}
}

func TestTransformAndCullNearClip(t *testing.T) {
	tests := []struct {
		name        string
		tri         geometry.Triangle
		want        int
		nearClipped int
	}{
		{
			"two in front",
			tri3(math3d.V3(0, 0, -1), math3d.V3(1, 1, 5), math3d.V3(0, 1, 5)),
			2, 0,
		},
		{
			"one in front",
			tri3(math3d.V3(0, 0, 5), math3d.V3(0, 1, -1), math3d.V3(1, 1, -1)),
			1, 0,
		},
		{
			"all behind",
			tri3(math3d.V3(0, 0, -1), math3d.V3(1, 1, -2), math3d.V3(0, 1, -2)),
			0, 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := originFrame()
			got, err := f.TransformAndCull(tc.tri, nil)
			if err != nil {
				t.Fatalf("TransformAndCull: %v", err)
			}
			if f.Stats.Culled != 0 {
				t.Fatalf("triangle was back-face culled")
			}
			if len(got) != tc.want {
				t.Fatalf("got %d triangles, want %d", len(got), tc.want)
			}
			if f.Stats.NearClipped != tc.nearClipped {
				t.Errorf("NearClipped = %d, want %d", f.Stats.NearClipped, tc.nearClipped)
			}
			for _, vt := range got {
				for i, p := range vt.P {
					if p.Z < 0.1-epsilon {
						t.Errorf("vertex %d at z = %v is in front of the near plane", i, p.Z)
					}
				}
				if !vec3Near(vt.WorldNormal, tc.tri.Normal()) {
					t.Errorf("WorldNormal = %v, want %v", vt.WorldNormal, tc.tri.Normal())
				}
			}
		})
	}
}

func TestTransformAndCullNaN(t *testing.T) {
	f := originFrame()
	tri := tri3(math3d.V3(math.NaN(), 0, 5), math3d.V3(0, 1, 5), math3d.V3(1, 1, 5))
	if _, err := f.TransformAndCull(tri, nil); !errors.Is(err, geometry.ErrClipPartition) {
		t.Errorf("err = %v, want ErrClipPartition", err)
	}
}

func TestCubeVisibleTriangles(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 0, 5)
	cam.Yaw = math.Pi
	center := math3d.Translate(math3d.V3(-0.5, -0.5, -0.5))

	tests := []struct {
		name  string
		world math3d.Mat4
		want  int
	}{
		{"axis aligned", center, 2},
		{"rotated", math3d.RotateX(0.6).Mul(math3d.RotateY(0.8)).Mul(center), 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFrame(cam, tc.world, math3d.V3(0, 0, -1), 80, 60)
			var views []ViewTriangle
			for _, tri := range models.NewCube().Triangles {
				var err error
				views, err = f.TransformAndCull(tri, views)
				if err != nil {
					t.Fatal(err)
				}
			}
			if len(views) != tc.want {
				t.Errorf("visible triangles = %d, want %d", len(views), tc.want)
			}
			if len(views) > 6 {
				t.Errorf("more than three cube faces face the camera")
			}
			if f.Stats.Culled+len(views) != 12 {
				t.Errorf("culled %d + visible %d != 12", f.Stats.Culled, len(views))
			}
		})
	}
}

func TestProject(t *testing.T) {
	f := originFrame()
	vt := ViewTriangle{
		Triangle: geometry.Triangle{
			P: [3]math3d.Vec4{math3d.Point(0, 0, 2), math3d.Point(4, 0, 4), math3d.Point(0, 4, 4)},
			T: [3]math3d.TexCoord{math3d.UV(0.5, 0.5), math3d.UV(1, 0), math3d.UV(0, 1)},
		},
		WorldNormal: math3d.V3(0, 0, -1),
	}

	p := f.Project(vt)

	wantT := [3]math3d.TexCoord{{U: 0.25, V: 0.25, W: 0.5}, {U: 0.25, V: 0, W: 0.25}, {U: 0, V: 0.25, W: 0.25}}
	for i := range wantT {
		got := p.T[i]
		if math.Abs(got.U-wantT[i].U) > epsilon || math.Abs(got.V-wantT[i].V) > epsilon || math.Abs(got.W-wantT[i].W) > epsilon {
			t.Errorf("T[%d] = %+v, want %+v", i, got, wantT[i])
		}
	}

	// 90 degree FOV and a square viewport put x = z on the right edge and
	// y = z on the last row; there is no Y inversion.
	wantP := [3][2]float64{{50, 50}, {100, 50}, {50, 100}}
	for i := range wantP {
		if math.Abs(p.P[i].X-wantP[i][0]) > 1e-6 || math.Abs(p.P[i].Y-wantP[i][1]) > 1e-6 {
			t.Errorf("P[%d] = (%v, %v), want %v", i, p.P[i].X, p.P[i].Y, wantP[i])
		}
	}

	if p.Color.R != 255 {
		t.Errorf("lit face brightness = %d, want 255", p.Color.R)
	}
	if math.Abs(p.Depth-10.0/3) > epsilon {
		t.Errorf("Depth = %v, want %v", p.Depth, 10.0/3)
	}

	vt.WorldNormal = math3d.V3(0, 0, 1)
	if got := f.Project(vt).Color.R; got != 26 {
		t.Errorf("unlit face brightness = %d, want the 0.1 floor (26)", got)
	}
}

func TestClipToScreen(t *testing.T) {
	f := originFrame()
	screen := func(ax, ay, bx, by, cx, cy float64) geometry.Triangle {
		return tri3(math3d.V3(ax, ay, 0), math3d.V3(bx, by, 0), math3d.V3(cx, cy, 0))
	}

	tests := []struct {
		name string
		tri  geometry.Triangle
		area float64
	}{
		{"inside", screen(10, 10, 50, 10, 10, 50), 800},
		{"outside", screen(-30, -30, -10, -30, -10, -10), 0},
		{"over the left edge", screen(-50, 10, 50, 10, 50, 60), 1875},
		{"covers the viewport", screen(-1000, -1000, 3000, -1000, -1000, 3000), 99 * 99},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.ClipToScreen(tc.tri)
			if err != nil {
				t.Fatalf("ClipToScreen: %v", err)
			}
			var area float64
			for _, tri := range got {
				area += tri.Area2D()
				for i, p := range tri.P {
					if p.X < -epsilon || p.X > 99+1e-6 || p.Y < -epsilon || p.Y > 99+1e-6 {
						t.Errorf("vertex %d = (%v, %v) outside the viewport", i, p.X, p.Y)
					}
				}
			}
			if math.Abs(area-tc.area) > 1e-6 {
				t.Errorf("clipped area = %v, want %v", area, tc.area)
			}
		})
	}

	t.Run("inside is untouched", func(t *testing.T) {
		tri := screen(10, 10, 50, 10, 10, 50)
		got, _ := f.ClipToScreen(tri)
		if len(got) != 1 || got[0] != tri {
			t.Errorf("got %v, want the input unchanged", got)
		}
	})
}

func TestSortFarToNear(t *testing.T) {
	tris := []Projected{{Depth: 1, Index: 0}, {Depth: 5, Index: 1}, {Depth: 3, Index: 2}, {Depth: 5, Index: 3}}
	SortFarToNear(tris)

	want := []int{1, 3, 2, 0}
	for i, p := range tris {
		if p.Index != want[i] {
			t.Fatalf("order = %v, want indices %v", tris, want)
		}
	}
}

func BenchmarkCubeStages(b *testing.B) {
	cam := NewCamera()
	world := math3d.Translate(math3d.V3(0, 0, 3)).Mul(math3d.RotateX(0.4)).Mul(math3d.RotateZ(0.7))
	cube := models.NewCube()
	var views []ViewTriangle

	for b.Loop() {
		f := NewFrame(cam, world, math3d.V3(0, 0, -1), 160, 90)
		for _, tri := range cube.Triangles {
			views, _ = f.TransformAndCull(tri, views[:0])
			for _, vt := range views {
				_, _ = f.ClipToScreen(f.Project(vt).Triangle)
			}
		}
	}
}
