package models

import (
	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// NewCube returns the unit cube spanning [0, 1] on every axis as 12
// triangles. Faces wind clockwise when seen from outside, so Normal points
// outward in the left-handed frame. Every face maps the full texture.
func NewCube() *Mesh {
	faces := [6][4]math3d.Vec3{
		// south (z = 0)
		{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}},
		// east (x = 1)
		{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}},
		// north (z = 1)
		{{X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 0, Z: 1}},
		// west (x = 0)
		{{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 0}},
		// top (y = 1)
		{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 0}},
		// bottom (y = 0)
		{{X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}},
	}
	// Quad corners in order: bottom-left, top-left, top-right, bottom-right.
	uvs := [4]math3d.TexCoord{
		math3d.UV(0, 1), math3d.UV(0, 0), math3d.UV(1, 0), math3d.UV(1, 1),
	}

	mesh := NewMesh("cube")
	for _, q := range faces {
		mesh.Add(quad(q, uvs)...)
	}
	mesh.CalculateBounds()
	return mesh
}

// quad splits a four-corner face along the first-to-third diagonal.
func quad(p [4]math3d.Vec3, t [4]math3d.TexCoord) []geometry.Triangle {
	a := geometry.NewTriangle(p[0], p[1], p[2])
	a.T = [3]math3d.TexCoord{t[0], t[1], t[2]}
	b := geometry.NewTriangle(p[0], p[2], p[3])
	b.T = [3]math3d.TexCoord{t[0], t[2], t[3]}
	return []geometry.Triangle{a, b}
}
