// Package config loads the xgraph host settings from an optional JSON file
// and overlays command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/xgraph-go/xgraph/pkg/math3d"
	"github.com/xgraph-go/xgraph/pkg/pipeline"
	"github.com/xgraph-go/xgraph/pkg/render"
)

// ErrInvalid is wrapped by every validation error from Resolve.
var ErrInvalid = errors.New("invalid config")

// Config holds the scene, viewport and asset settings.
type Config struct {
	// Paths
	Mesh    string `json:"mesh"`
	Texture string `json:"texture"`
	LogFile string `json:"log_file"`

	// Viewport (headless snapshots; the terminal sets its own size)
	Width  int `json:"width"`
	Height int `json:"height"`
	FPS    int `json:"fps"`

	// Scene
	FOV       float64   `json:"fov"` // degrees
	Near      float64   `json:"near"`
	Far       float64   `json:"far"`
	Light     []float64 `json:"light"`
	Offset    []float64 `json:"offset"`
	SpinRate  float64   `json:"spin_rate"`
	MoveSpeed float64   `json:"move_speed"`
	TurnSpeed float64   `json:"turn_speed"`

	// Drawing
	Mode       string `json:"mode"`
	Wireframe  bool   `json:"wireframe"`
	InvertUV   bool   `json:"invert_uv"`
	Background string `json:"background"` // "#rrggbb" or "R,G,B"
	WireColor  string `json:"wire_color"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the file setting alone.
type Flags struct {
	Mesh       string
	Texture    string
	LogFile    string
	Mode       string
	Background string
	Width      int
	Height     int
	FPS        int
	FOV        float64
	Wireframe  bool
	InvertUV   bool
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve fills them.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies flags over the file settings, fills defaults and
// validates the result.
func (c *Config) Resolve(flags Flags) error {
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	c.Wireframe = c.Wireframe || flags.Wireframe
	c.InvertUV = c.InvertUV || flags.InvertUV

	if c.Width <= 0 {
		c.Width = 160
	}
	if c.Height <= 0 {
		c.Height = 90
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.FOV <= 0 {
		c.FOV = 90
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= 0 {
		c.Far = 1000
	}
	if c.Light == nil {
		c.Light = []float64{0, 0, -1}
	}
	if c.Offset == nil {
		c.Offset = []float64{0, 0, 8}
	}
	if c.SpinRate == 0 {
		c.SpinRate = 1
	}
	if c.MoveSpeed <= 0 {
		c.MoveSpeed = 8
	}
	if c.TurnSpeed <= 0 {
		c.TurnSpeed = 2
	}
	if c.Mode == "" {
		c.Mode = render.ModeFlat.String()
		if c.Texture != "" {
			c.Mode = render.ModeTextured.String()
		}
	}
	if c.Background == "" {
		c.Background = "#000000"
	}
	if c.WireColor == "" {
		c.WireColor = "#ffffff"
	}

	_, err := c.Pipeline()
	return err
}

// Pipeline converts the settings into an engine configuration.
func (c Config) Pipeline() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	if c.Near >= c.Far {
		return cfg, fmt.Errorf("%w: near %v must be less than far %v", ErrInvalid, c.Near, c.Far)
	}
	if c.FOV >= 180 {
		return cfg, fmt.Errorf("%w: fov %v must be below 180 degrees", ErrInvalid, c.FOV)
	}

	mode, err := render.ParseRenderMode(c.Mode)
	if err != nil {
		return cfg, fmt.Errorf("%w: mode: %w", ErrInvalid, err)
	}
	light, err := vec3(c.Light)
	if err != nil {
		return cfg, fmt.Errorf("%w: light: %w", ErrInvalid, err)
	}
	if light.Len() == 0 {
		return cfg, fmt.Errorf("%w: light direction is zero", ErrInvalid)
	}
	offset, err := vec3(c.Offset)
	if err != nil {
		return cfg, fmt.Errorf("%w: offset: %w", ErrInvalid, err)
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return cfg, fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	wire, err := ParseColor(c.WireColor)
	if err != nil {
		return cfg, fmt.Errorf("%w: wire_color: %w", ErrInvalid, err)
	}

	cfg.Width, cfg.Height = c.Width, c.Height
	cfg.FOV = c.FOV * math.Pi / 180
	cfg.Near, cfg.Far = c.Near, c.Far
	cfg.Light = light.Normalize()
	cfg.Offset = offset
	cfg.SpinRate = c.SpinRate
	cfg.MoveSpeed = c.MoveSpeed
	cfg.TurnSpeed = c.TurnSpeed
	cfg.Mode = mode
	cfg.Wireframe = c.Wireframe
	cfg.Background = bg
	cfg.WireColor = wire
	return cfg, nil
}

// ParseColor accepts "#rrggbb" hex or comma-separated "R,G,B" decimals.
func ParseColor(s string) (render.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return render.RGB(r, g, b), nil
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return render.RGB(r, g, b), nil
}

func vec3(v []float64) (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}
