// Package models provides mesh containers and the loaders that fill them:
// a built-in unit cube, Wavefront OBJ and glTF/GLB.
package models

import (
	"errors"
	"fmt"

	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
)

var (
	// ErrDegenerateTriangle is returned by Validate for zero-area triangles.
	ErrDegenerateTriangle = errors.New("degenerate triangle")
	// ErrEmptyMesh is returned by Validate for a mesh with no triangles.
	ErrEmptyMesh = errors.New("mesh has no triangles")
)

// minDoubleArea is the smallest |cross(e1, e2)| accepted as a real triangle.
const minDoubleArea = 1e-12

// Mesh is an ordered list of model-space triangles.
type Mesh struct {
	Name      string
	Triangles []geometry.Triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// Add appends triangles to the mesh. Bounds are not updated.
func (m *Mesh) Add(tris ...geometry.Triangle) {
	m.Triangles = append(m.Triangles, tris...)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Triangles[0].P[0].Vec3()
	m.BoundsMax = m.BoundsMin

	for _, tri := range m.Triangles {
		for _, p := range tri.P {
			m.BoundsMin = m.BoundsMin.Min(p.Vec3())
			m.BoundsMax = m.BoundsMax.Max(p.Vec3())
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Bounds returns the axis-aligned bounding box.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Transform bakes mat into every triangle position and recomputes bounds.
// mat must not mirror (negative determinant) or front faces turn into
// back faces.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Transform(mat)
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]geometry.Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}

// Validate reports the first zero-area triangle, or ErrEmptyMesh when the
// mesh holds nothing. The pipeline assumes every face has a normal, so
// meshes are checked here rather than per frame.
func (m *Mesh) Validate() error {
	if len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}
	for i, tri := range m.Triangles {
		if degenerate(tri) {
			return fmt.Errorf("triangle %d: %w", i, ErrDegenerateTriangle)
		}
	}
	return nil
}

// RemoveDegenerate drops zero-area triangles in place and returns how many
// were removed.
func (m *Mesh) RemoveDegenerate() int {
	kept := m.Triangles[:0]
	for _, tri := range m.Triangles {
		if !degenerate(tri) {
			kept = append(kept, tri)
		}
	}
	removed := len(m.Triangles) - len(kept)
	clear(m.Triangles[len(kept):])
	m.Triangles = kept
	return removed
}

// FlipV replaces every texture V with 1 - V, for sources whose image rows
// run bottom to top.
func (m *Mesh) FlipV() {
	for i := range m.Triangles {
		for j := range m.Triangles[i].T {
			m.Triangles[i].T[j].V = 1 - m.Triangles[i].T[j].V
		}
	}
}

func degenerate(tri geometry.Triangle) bool {
	e1 := tri.P[1].Sub(tri.P[0])
	e2 := tri.P[2].Sub(tri.P[0])
	return !(e1.Cross(e2).Len() > minDoubleArea)
}
