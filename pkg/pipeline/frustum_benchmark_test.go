package pipeline

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/xgraph-go/xgraph/pkg/math3d"
	"github.com/xgraph-go/xgraph/pkg/models"
)

// BenchmarkFrustumExtract benchmarks frustum plane extraction from a
// view-projection matrix.
func BenchmarkFrustumExtract(b *testing.B) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 10, -20)
	viewProj := cam.ViewProjectionMatrix(16.0 / 9.0)

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}

// BenchmarkAABBIntersection benchmarks AABB vs frustum intersection test.
func BenchmarkAABBIntersection(b *testing.B) {
	frustum := testFrustum(0.1, 100)

	visible := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 15))
	b.Run("visible", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectAABB(visible)
		}
	})

	culled := NewAABB(math3d.V3(-1, -1, -15), math3d.V3(1, 1, -5))
	b.Run("culled", func(b *testing.B) {
		for b.Loop() {
			_ = frustum.IntersectAABB(culled)
		}
	})
}

func BenchmarkAABBTransform(b *testing.B) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	m := math3d.Translate(math3d.V3(10, 5, 20)).Mul(math3d.RotateY(0.5)).Mul(math3d.Scale(math3d.V3(2, 2, 2)))

	for b.Loop() {
		_ = box.Transform(m)
	}
}

// BenchmarkCullingScenario rejects a field of cubes, half of them behind
// the camera, by their world bounds.
func BenchmarkCullingScenario(b *testing.B) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 5, 0)
	frustum := cam.Frustum(16.0 / 9.0)

	rng := rand.New(rand.NewPCG(42, 0))
	lo, hi := models.NewCube().Bounds()
	local := NewAABB(lo, hi)

	transforms := make([]math3d.Mat4, 100)
	for i := range transforms {
		z := rng.Float64()*30 + 10
		if i%2 == 1 {
			z = -z
		}
		x := rng.Float64()*40 - 20
		y := rng.Float64() * 10
		transforms[i] = math3d.Translate(math3d.V3(x, y, z)).Mul(math3d.RotateY(rng.Float64() * math.Pi))
	}

	for b.Loop() {
		visible := 0
		for _, m := range transforms {
			if frustum.IntersectAABB(local.Transform(m)) {
				visible++
			}
		}
		_ = visible
	}
}
