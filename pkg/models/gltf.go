package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	_ "golang.org/x/image/webp"

	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// ConvertHandedness mirrors Z and reverses winding so right-handed
	// glTF content faces the same way in the left-handed view space.
	ConvertHandedness bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		ConvertHandedness: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.FromDocument(doc, filepath.Base(path))
}

// FromDocument converts every triangle primitive of doc into a mesh.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if err := l.addPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
		}
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// addPrimitive de-indexes one triangle list into mesh. Lines, points and
// strips are skipped.
func (l *GLTFLoader) addPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var uvs [][2]float32
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertex := func(idx uint32) (math3d.Vec3, math3d.TexCoord, error) {
		if int(idx) >= len(positions) {
			return math3d.Vec3{}, math3d.TexCoord{}, fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
		}
		p := positions[idx]
		pos := math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
		if l.ConvertHandedness {
			pos.Z = -pos.Z
		}
		// glTF puts V = 0 at the top of the image, as Sample does.
		var tc math3d.TexCoord
		if int(idx) < len(uvs) {
			tc = math3d.UV(float64(uvs[idx][0]), float64(uvs[idx][1]))
		} else {
			tc = math3d.UV(0, 0)
		}
		return pos, tc, nil
	}

	for i := 0; i+2 < len(indices); i += 3 {
		corner := [3]uint32{indices[i], indices[i+1], indices[i+2]}
		if l.ConvertHandedness {
			corner[1], corner[2] = corner[2], corner[1]
		}

		var pts [3]math3d.Vec3
		var tex [3]math3d.TexCoord
		for j, idx := range corner {
			if pts[j], tex[j], err = vertex(idx); err != nil {
				return err
			}
		}
		tri := geometry.NewTriangle(pts[0], pts[1], pts[2])
		tri.T = tex
		mesh.Add(tri)
	}
	return nil
}

// LoadGLBWithTexture loads a GLB or GLTF file and returns the mesh plus the
// first image that decodes, which may be nil.
func LoadGLBWithTexture(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := NewGLTFLoader().FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}

	for _, img := range doc.Images {
		data := imageBytes(doc, img, filepath.Dir(path))
		if len(data) == 0 {
			continue
		}
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return mesh, decoded, nil
		}
	}
	return mesh, nil, nil
}

// imageBytes returns the encoded image held in a buffer view, or read from
// an external file next to the document. Data URIs are not resolved.
func imageBytes(doc *gltf.Document, img *gltf.Image, dir string) []byte {
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		data := doc.Buffers[bv.Buffer].Data
		if end := bv.ByteOffset + bv.ByteLength; end <= len(data) {
			return data[bv.ByteOffset:end]
		}
		return nil
	}
	if img.URI == "" || img.IsEmbeddedResource() {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, img.URI))
	if err != nil {
		return nil
	}
	return data
}
