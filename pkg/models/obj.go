package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xgraph-go/xgraph/pkg/geometry"
	"github.com/xgraph-go/xgraph/pkg/math3d"
)

// OBJOptions controls how Wavefront OBJ data is mapped onto triangles.
type OBJOptions struct {
	// InvertV replaces every texture V with 1 - V, for files authored with
	// the origin at the bottom-left of the image.
	InvertV bool
}

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string, opts OBJOptions) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, opts)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads OBJ text. Only v, vt and f records are used; everything
// else is ignored. Face vertices may be written as i, i/t, i/t/n or i//n
// with 1-based or negative (relative) indices. Polygons are fanned from
// their first vertex, so a quad becomes (1, 2, 3) and (1, 3, 4).
func ParseOBJ(r io.Reader, opts OBJOptions) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		texcoords []math3d.TexCoord
	)
	mesh := NewMesh("obj")

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: vertex: %w", line, err)
			}
			positions = append(positions, math3d.V3(v[0], v[1], v[2]))

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("obj: line %d: texcoord: %w", line, err)
			}
			if opts.InvertV {
				v[1] = 1 - v[1]
			}
			texcoords = append(texcoords, math3d.UV(v[0], v[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj: line %d: face needs at least 3 vertices, got %d", line, len(fields)-1)
			}
			refs := make([]faceRef, len(fields)-1)
			for i, field := range fields[1:] {
				ref, err := parseFaceRef(field, len(positions), len(texcoords))
				if err != nil {
					return nil, fmt.Errorf("obj: line %d: %w", line, err)
				}
				refs[i] = ref
			}
			for i := 1; i+1 < len(refs); i++ {
				mesh.Add(buildTriangle(positions, texcoords, refs[0], refs[i], refs[i+1]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// faceRef holds resolved 0-based indices; tex is -1 when absent.
type faceRef struct {
	pos, tex int
}

func parseFaceRef(s string, nPos, nTex int) (faceRef, error) {
	parts := strings.Split(s, "/")
	pos, err := resolveIndex(parts[0], nPos)
	if err != nil {
		return faceRef{}, fmt.Errorf("face position %q: %w", s, err)
	}
	ref := faceRef{pos: pos, tex: -1}
	if len(parts) > 1 && parts[1] != "" {
		ref.tex, err = resolveIndex(parts[1], nTex)
		if err != nil {
			return faceRef{}, fmt.Errorf("face texcoord %q: %w", s, err)
		}
	}
	return ref, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range [1, %d]", i, n)
	}
}

func buildTriangle(positions []math3d.Vec3, texcoords []math3d.TexCoord, a, b, c faceRef) geometry.Triangle {
	tri := geometry.NewTriangle(positions[a.pos], positions[b.pos], positions[c.pos])
	for i, ref := range [3]faceRef{a, b, c} {
		if ref.tex >= 0 {
			tri.T[i] = texcoords[ref.tex]
		}
	}
	return tri
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
