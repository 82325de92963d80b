// xgraph - software 3D pipeline in the terminal
// Spins a mesh in front of a movable camera using a scanline rasterizer,
// drawn with half blocks, or renders a single frame to an image file.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Turn left/right
//	Left/Right  - Strafe
//	Up/Down     - Move up/down
//	M           - Cycle render mode (wireframe, flat, textured)
//	X           - Toggle wireframe overlay
//	R           - Reset camera
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/xgraph-go/xgraph/internal/config"
	"github.com/xgraph-go/xgraph/pkg/pipeline"
)

var (
	configPath  = flag.String("config", "", "Path to JSON config file")
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/TGA/BMP/WebP)")
	modeName    = flag.String("mode", "", "Render mode: wireframe, flat or textured")
	targetFPS   = flag.Int("fps", 0, "Target FPS (default 60)")
	fovDegrees  = flag.Float64("fov", 0, "Vertical field of view in degrees (default 90)")
	bgColor     = flag.String("bg", "", "Background color (#rrggbb or R,G,B)")
	logPath     = flag.String("log", "", "Write debug logs to this file")
	wireframe   = flag.Bool("wireframe", false, "Overlay triangle edges")
	invertUV    = flag.Bool("invert-uv", false, "Flip texture V when loading the mesh")

	snapshotPath = flag.String("snapshot", "", "Render one frame to a .png or .webp file and exit")
	snapshotAt   = flag.Float64("time", 0, "Seconds of spin before the snapshot frame")
	snapWidth    = flag.Int("width", 0, "Snapshot width in pixels (default 160)")
	snapHeight   = flag.Int("height", 0, "Snapshot height in pixels (default 90)")
	snapScale    = flag.Int("scale", 4, "Snapshot upscale factor")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "xgraph - software 3D pipeline in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: xgraph [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a unit cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Turn left/right\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Strafe\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Move up/down\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle render mode\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe overlay\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(meshPath string) error {
	var cfg config.Config
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	err := cfg.Resolve(config.Flags{
		Mesh:       meshPath,
		Texture:    *texturePath,
		LogFile:    *logPath,
		Mode:       *modeName,
		Background: *bgColor,
		Width:      *snapWidth,
		Height:     *snapHeight,
		FPS:        *targetFPS,
		FOV:        *fovDegrees,
		Wireframe:  *wireframe,
		InvertUV:   *invertUV,
	})
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	mesh, embedded, err := loadMesh(cfg.Mesh, cfg.InvertUV)
	if err != nil {
		return err
	}
	tex, err := loadTexture(cfg.Texture, embedded)
	if err != nil {
		return err
	}

	pc, err := cfg.Pipeline()
	if err != nil {
		return err
	}

	if *snapshotPath != "" {
		return writeSnapshot(*snapshotPath, pc, mesh, tex, *snapshotAt, *snapScale)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runTerminal(ctx, cfg.FPS, pc, mesh, tex)
}

// setupLogging sends pipeline debug logs to path. The terminal owns stdout
// and stderr while running, so logs only go to a file.
func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	pipeline.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() {
		pipeline.SetLogger(nil)
		f.Close()
	}, nil
}
