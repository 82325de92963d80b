package pipeline

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
	"github.com/xgraph-go/xgraph/pkg/render"
)

// minBrightness keeps faces turned away from the light visible.
const minBrightness = 0.1

// ViewTriangle is a triangle in view space with the face normal it had in
// world space, which lighting uses after the view transform.
type ViewTriangle struct {
	geometry.Triangle
	WorldNormal math3d.Vec3
}

// Projected is a triangle in pixel coordinates. Texture coordinates hold
// (u/w, v/w, 1/w) and Depth is the mean view-space Z, used to paint flat
// triangles far to near.
type Projected struct {
	geometry.Triangle
	Depth float64
	Index int // position of the source triangle in the mesh
}

// Frame holds everything the stages need for one frame. Build one with
// NewFrame; the stages only read it apart from Stats.
type Frame struct {
	World      math3d.Mat4
	View       math3d.Mat4
	Projection math3d.Mat4
	Eye        math3d.Vec3
	Light      math3d.Vec3
	Near       geometry.Plane
	Width      int
	Height     int

	Stats FrameStats

	edges [4]geometry.Plane
}

// NewFrame prepares a frame for the camera, a world matrix and a light
// direction, rendering into a width x height viewport.
func NewFrame(cam *Camera, world math3d.Mat4, light math3d.Vec3, width, height int) *Frame {
	aspect := float64(width) / float64(height)
	point, normal := cam.NearPlane()
	return &Frame{
		World:      world,
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(aspect),
		Eye:        cam.Position,
		Light:      light.Normalize(),
		Near:       geometry.NewPlane(point, normal),
		Width:      width,
		Height:     height,
		edges:      ScreenEdges(width, height),
	}
}

// ScreenEdges returns the viewport edge planes in clipping order: top,
// bottom, left, right. Their normals point into the viewport.
func ScreenEdges(width, height int) [4]geometry.Plane {
	w, h := float64(width-1), float64(height-1)
	return [4]geometry.Plane{
		geometry.NewPlane(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)),
		geometry.NewPlane(math3d.V3(0, h, 0), math3d.V3(0, -1, 0)),
		geometry.NewPlane(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0)),
		geometry.NewPlane(math3d.V3(w, 0, 0), math3d.V3(-1, 0, 0)),
	}
}

// TransformAndCull moves tri into world space, drops it if it faces away
// from the eye, then moves it into view space and clips it against the near
// plane. Surviving pieces are appended to dst.
//
// A triangle is back-facing when (p0 - eye) · normal >= 0, so edge-on and
// zero-area triangles are culled too.
func (f *Frame) TransformAndCull(tri geometry.Triangle, dst []ViewTriangle) ([]ViewTriangle, error) {
	world := tri.Transform(f.World)
	normal := world.Normal()

	if world.P[0].Vec3().Sub(f.Eye).Dot(normal) >= 0 {
		f.Stats.Culled++
		return dst, nil
	}

	view := world.Transform(f.View)

	var clipped [2]geometry.Triangle
	n, err := view.ClipAgainstPlane(f.Near, &clipped)
	if err != nil {
		return dst, fmt.Errorf("near clip: %w", err)
	}
	if n == 0 {
		f.Stats.NearClipped++
	}
	for i := range n {
		dst = append(dst, ViewTriangle{Triangle: clipped[i], WorldNormal: normal})
	}
	return dst, nil
}

// Project applies the perspective matrix and maps the result to pixel
// coordinates, (ndc + 1) * size / 2 on both axes. Texture coordinates are
// divided by the clip-space W and the flat color is set from the light.
func (f *Frame) Project(vt ViewTriangle) Projected {
	out := vt.Triangle
	sw, sh := float64(f.Width), float64(f.Height)

	for i, p := range vt.P {
		clip := f.Projection.MulVec4(p)
		out.T[i] = vt.T[i].PerspectiveDivide(clip.W)

		ndc := clip.Divide()
		out.P[i] = math3d.V4((ndc.X+1)*0.5*sw, (ndc.Y+1)*0.5*sh, ndc.Z, 1)
	}

	out.Color = render.Gray(max(minBrightness, f.Light.Dot(vt.WorldNormal)))
	return Projected{Triangle: out, Depth: vt.AverageZ()}
}

// ClipToScreen clips tri against the four viewport edges in turn. Every
// returned triangle lies inside [0, width-1] x [0, height-1].
func (f *Frame) ClipToScreen(tri geometry.Triangle) ([]geometry.Triangle, error) {
	queue := []geometry.Triangle{tri}

	for _, edge := range f.edges {
		next := make([]geometry.Triangle, 0, len(queue)*2)
		for _, t := range queue {
			var out [2]geometry.Triangle
			n, err := t.ClipAgainstPlane(edge, &out)
			if err != nil {
				return nil, fmt.Errorf("screen clip: %w", err)
			}
			next = append(next, out[:n]...)
		}
		queue = next
		if len(queue) == 0 {
			break
		}
	}
	return queue, nil
}

// SortFarToNear orders triangles by descending Depth. Equal depths keep
// their mesh order.
func SortFarToNear(tris []Projected) {
	slices.SortStableFunc(tris, func(a, b Projected) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
