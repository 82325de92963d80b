// Package pipeline runs a mesh through the software 3D pipeline: world and
// view transforms, back-face culling, near-plane clipping, projection,
// viewport clipping and rasterization.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
	"github.com/xgraph-go/xgraph/pkg/models"
	"github.com/xgraph-go/xgraph/pkg/render"
)

var (
	// ErrNoTexture is returned by Initialize when textured mode is requested
	// without a texture.
	ErrNoTexture = errors.New("textured mode requires a texture")
	// ErrInvalidViewport is returned by Initialize for a non-positive size.
	ErrInvalidViewport = errors.New("invalid viewport size")
)

// Renderer is the contract between the pipeline and a host loop.
type Renderer interface {
	Initialize() (*State, error)
	RenderFrame(st *State, in Input) *render.Framebuffer
}

// Config describes the scene and viewport. Zero fields are not defaulted;
// start from DefaultConfig.
type Config struct {
	Width  int
	Height int

	FOV  float64 // radians
	Near float64
	Far  float64

	Light  math3d.Vec3 // direction light travels towards the viewer
	Offset math3d.Vec3 // mesh position in world space

	SpinRate  float64 // radians per second
	MoveSpeed float64 // units per second
	TurnSpeed float64 // radians per second

	Mode       render.RenderMode
	Wireframe  bool // overlay edges on flat and textured modes
	Background render.Color
	WireColor  render.Color
}

// DefaultConfig returns a 160x90 viewport looking at a mesh 8 units ahead.
func DefaultConfig() Config {
	return Config{
		Width:      160,
		Height:     90,
		FOV:        math.Pi / 2,
		Near:       0.1,
		Far:        1000,
		Light:      math3d.V3(0, 0, -1),
		Offset:     math3d.V3(0, 0, 8),
		SpinRate:   1,
		MoveSpeed:  8,
		TurnSpeed:  2,
		Mode:       render.ModeFlat,
		Background: render.ColorBlack,
		WireColor:  render.ColorWhite,
	}
}

// Input is what the host samples between frames. Axis values are usually
// in [-1, 1] and are scaled by the configured speeds and Elapsed.
type Input struct {
	Elapsed float64 // seconds since the previous frame

	Forward float64 // +forward, -back
	Strafe  float64 // +right, -left
	Lift    float64 // +up, -down
	Turn    float64 // +yaw right, -yaw left
}

// FrameStats counts what happened to the mesh's triangles in one frame.
type FrameStats struct {
	Triangles    int  // mesh triangles considered
	Culled       int  // back-facing
	NearClipped  int  // entirely behind the near plane
	Dropped      int  // rejected by the clipper
	Drawn        int  // screen triangles rasterized
	MeshRejected bool // whole mesh outside the frustum
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("triangles", s.Triangles),
		slog.Int("culled", s.Culled),
		slog.Int("near_clipped", s.NearClipped),
		slog.Int("dropped", s.Dropped),
		slog.Int("drawn", s.Drawn),
		slog.Bool("mesh_rejected", s.MeshRejected),
	)
}

// State is owned by the host and threaded through RenderFrame. It carries
// everything that persists between frames.
type State struct {
	Camera    *Camera
	Angle     float64 // accumulated mesh spin
	Mode      render.RenderMode
	Wireframe bool
	Stats     FrameStats

	textured bool
	fb       *render.Framebuffer
	raster   *render.Rasterizer

	views     []ViewTriangle
	projected []Projected
}

// CycleMode advances to the next render mode, skipping textured mode when
// no texture is loaded.
func (st *State) CycleMode() {
	st.Mode = st.Mode.Next()
	if st.Mode == render.ModeTextured && !st.textured {
		st.Mode = st.Mode.Next()
	}
}

// Framebuffer returns the buffer RenderFrame draws into.
func (st *State) Framebuffer() *render.Framebuffer {
	return st.fb
}

// Engine renders one mesh with one texture and one light.
type Engine struct {
	cfg  Config
	mesh *models.Mesh
	tex  render.Sampler
}

var _ Renderer = (*Engine)(nil)

// NewEngine creates an engine. tex may be nil unless cfg.Mode is textured.
func NewEngine(cfg Config, mesh *models.Mesh, tex render.Sampler) *Engine {
	return &Engine{cfg: cfg, mesh: mesh, tex: tex}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Initialize checks the configuration and allocates the framebuffer and
// depth buffer.
func (e *Engine) Initialize() (*State, error) {
	if e.cfg.Width <= 0 || e.cfg.Height <= 0 {
		return nil, fmt.Errorf("initialize: %w: %dx%d", ErrInvalidViewport, e.cfg.Width, e.cfg.Height)
	}
	if e.mesh == nil || e.mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("initialize: %w", models.ErrEmptyMesh)
	}
	if e.cfg.Mode == render.ModeTextured && e.tex == nil {
		return nil, fmt.Errorf("initialize: %w", ErrNoTexture)
	}
	e.mesh.CalculateBounds()

	cam := NewCamera()
	cam.FOV = e.cfg.FOV
	cam.Near = e.cfg.Near
	cam.Far = e.cfg.Far

	fb := render.NewFramebuffer(e.cfg.Width, e.cfg.Height)
	st := &State{
		Camera:    cam,
		Mode:      e.cfg.Mode,
		Wireframe: e.cfg.Wireframe,
		textured:  e.tex != nil,
		fb:        fb,
		raster:    render.NewRasterizer(fb),
	}
	st.raster.WireColor = e.cfg.WireColor

	Logger().Info("engine initialized",
		"mesh", e.mesh.Name,
		"triangles", e.mesh.TriangleCount(),
		"width", e.cfg.Width,
		"height", e.cfg.Height,
		"mode", st.Mode)
	return st, nil
}

// WorldMatrix returns the mesh transform for a spin angle: rotate about Z,
// then about X by half the angle, then move to the offset.
func (e *Engine) WorldMatrix(angle float64) math3d.Mat4 {
	return math3d.Translate(e.cfg.Offset).
		Mul(math3d.RotateX(angle * 0.5)).
		Mul(math3d.RotateZ(angle))
}

// RenderFrame applies in to the camera and spin, then draws the mesh.
// Triangles the clipper rejects are dropped and counted; the frame always
// completes.
func (e *Engine) RenderFrame(st *State, in Input) *render.Framebuffer {
	e.applyInput(st, in)

	st.fb.Clear(e.cfg.Background)
	st.raster.ClearDepth()

	world := e.WorldMatrix(st.Angle)
	frame := NewFrame(st.Camera, world, e.cfg.Light, e.cfg.Width, e.cfg.Height)
	frame.Stats.Triangles = e.mesh.TriangleCount()

	aspect := float64(e.cfg.Width) / float64(e.cfg.Height)
	bounds := NewAABB(e.mesh.Bounds()).Transform(world)
	if !st.Camera.Frustum(aspect).IntersectAABB(bounds) {
		frame.Stats.MeshRejected = true
		st.Stats = frame.Stats
		Logger().Debug("frame", "stats", st.Stats)
		return st.fb
	}

	st.projected = st.projected[:0]
	for i, tri := range e.mesh.Triangles {
		var err error
		st.views, err = frame.TransformAndCull(tri, st.views[:0])
		if err != nil {
			frame.drop(i, err)
			continue
		}
		for _, vt := range st.views {
			p := frame.Project(vt)
			p.Index = i
			st.projected = append(st.projected, p)
		}
	}

	if st.Mode == render.ModeFlat {
		SortFarToNear(st.projected)
	}

	for _, p := range st.projected {
		pieces, err := frame.ClipToScreen(p.Triangle)
		if err != nil {
			frame.drop(p.Index, err)
			continue
		}
		for _, tri := range pieces {
			e.draw(st, tri)
			frame.Stats.Drawn++
		}
	}

	st.Stats = frame.Stats
	Logger().Debug("frame", "stats", st.Stats)
	return st.fb
}

func (e *Engine) applyInput(st *State, in Input) {
	dt := in.Elapsed
	cam := st.Camera
	cam.Turn(in.Turn * e.cfg.TurnSpeed * dt)
	cam.MoveForward(in.Forward * e.cfg.MoveSpeed * dt)
	cam.Strafe(in.Strafe * e.cfg.MoveSpeed * dt)
	cam.Lift(in.Lift * e.cfg.MoveSpeed * dt)
	st.Angle += e.cfg.SpinRate * dt
}

func (e *Engine) draw(st *State, tri geometry.Triangle) {
	r := st.raster
	switch st.Mode {
	case render.ModeWireframe:
		r.DrawTriangleWire(tri, r.WireColor)
		return
	case render.ModeTextured:
		if e.tex != nil {
			r.DrawTriangleTextured(tri, e.tex)
		}
	default:
		r.FillTriangle(tri)
	}
	if st.Wireframe {
		r.DrawTriangleWire(tri, r.WireColor)
	}
}

func (f *Frame) drop(index int, err error) {
	f.Stats.Dropped++
	Logger().Debug("triangle dropped", "index", index, "err", err)
}
