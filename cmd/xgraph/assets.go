package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/xgraph-go/xgraph/pkg/models"
	"github.com/xgraph-go/xgraph/pkg/pipeline"
	"github.com/xgraph-go/xgraph/pkg/render"
)

// loadMesh loads an OBJ or glTF/GLB file, or the unit cube when path is
// empty. Zero-area triangles are removed. A glTF file may also return its
// first embedded image.
func loadMesh(path string, invertUV bool) (*models.Mesh, image.Image, error) {
	var (
		mesh     *models.Mesh
		embedded image.Image
		err      error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "":
		if path != "" {
			return nil, nil, fmt.Errorf("unsupported format: %s (use .obj, .glb or .gltf)", path)
		}
		mesh = models.NewCube()
		if invertUV {
			mesh.FlipV()
		}
	case ".obj":
		mesh, err = models.LoadOBJ(path, models.OBJOptions{InvertV: invertUV})
	case ".glb", ".gltf":
		mesh, embedded, err = models.LoadGLBWithTexture(path)
		if err == nil && invertUV {
			mesh.FlipV()
		}
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .obj, .glb or .gltf)", ext)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}

	if removed := mesh.RemoveDegenerate(); removed > 0 {
		pipeline.Logger().Info("removed degenerate triangles", "mesh", mesh.Name, "count", removed)
	}
	if err := mesh.Validate(); err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	mesh.CalculateBounds()
	return mesh, embedded, nil
}

// loadTexture loads the texture at path, falling back to an embedded mesh
// image. It returns a nil Sampler when neither exists.
func loadTexture(path string, embedded image.Image) (render.Sampler, error) {
	if path != "" {
		tex, err := render.LoadTexture(path)
		if err != nil {
			return nil, err
		}
		return tex, nil
	}
	if embedded != nil {
		return render.TextureFromImage(embedded), nil
	}
	return nil, nil
}

// writeSnapshot renders one frame after elapsed seconds of spin and saves
// it scaled up by scale.
func writeSnapshot(path string, cfg pipeline.Config, mesh *models.Mesh, tex render.Sampler, elapsed float64, scale int) error {
	engine := pipeline.NewEngine(cfg, mesh, tex)
	st, err := engine.Initialize()
	if err != nil {
		return err
	}

	fb := engine.RenderFrame(st, pipeline.Input{Elapsed: elapsed})
	pipeline.Logger().Info("snapshot", "path", path, "stats", st.Stats)

	scale = max(scale, 1)
	if err := render.Save(path, fb.Scaled(fb.Width*scale, fb.Height*scale)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
