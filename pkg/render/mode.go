package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseRenderMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown render mode")

// RenderMode selects how triangles are filled.
type RenderMode int

const (
	ModeWireframe RenderMode = iota // Edges only
	ModeFlat                        // One grey level per triangle, painter's order
	ModeTextured                    // Perspective-correct texture with depth test
)

var modeNames = [...]string{
	ModeWireframe: "wireframe",
	ModeFlat:      "flat",
	ModeTextured:  "textured",
}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles wireframe → flat → textured → wireframe.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % RenderMode(len(modeNames))
}

// ParseRenderMode accepts the names printed by String, case-insensitively.
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m RenderMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RenderMode) UnmarshalText(text []byte) error {
	mode, err := ParseRenderMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
