package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/xgraph-go/xgraph/pkg/math3d"
	"github.com/xgraph-go/xgraph/pkg/models"
	"github.com/xgraph-go/xgraph/pkg/pipeline"
	"github.com/xgraph-go/xgraph/pkg/render"
)

// maxFrameStep caps the elapsed time fed to the engine after a stall.
const maxFrameStep = 0.1

// view is the engine and state sized to the current terminal.
type view struct {
	cfg    pipeline.Config
	mesh   *models.Mesh
	tex    render.Sampler
	term   *render.TerminalRenderer
	engine *pipeline.Engine
	state  *pipeline.State
}

// resize rebuilds the engine for a cols x rows terminal, keeping the
// camera, spin and mode of the previous state.
func (v *view) resize(scr render.DisplayScreen, cols, rows int) error {
	v.term = render.NewTerminalRenderer(scr, cols, rows)
	v.cfg.Width, v.cfg.Height = v.term.FramebufferSize()

	engine := pipeline.NewEngine(v.cfg, v.mesh, v.tex)
	st, err := engine.Initialize()
	if err != nil {
		return err
	}
	if prev := v.state; prev != nil {
		st.Camera = prev.Camera
		st.Angle = prev.Angle
		st.Mode = prev.Mode
		st.Wireframe = prev.Wireframe
	}
	v.engine, v.state = engine, st
	return nil
}

func runTerminal(ctx context.Context, fps int, cfg pipeline.Config, mesh *models.Mesh, tex render.Sampler) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	v := &view{cfg: cfg, mesh: mesh, tex: tex}
	if err := v.resize(term, cols, rows); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Events are handled on the render goroutine so the engine state is
	// never touched concurrently.
	events := make(chan uv.Event, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	controls := NewControls(fps)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				term.Erase()
				term.Resize(ev.Width, ev.Height)
				if err := v.resize(term, ev.Width, ev.Height); err != nil {
					return err
				}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					return nil
				case ev.MatchString("w"):
					controls.Forward.Press(1)
				case ev.MatchString("s"):
					controls.Forward.Press(-1)
				case ev.MatchString("a"):
					controls.Turn.Press(-1)
				case ev.MatchString("d"):
					controls.Turn.Press(1)
				case ev.MatchString("left"):
					controls.Strafe.Press(-1)
				case ev.MatchString("right"):
					controls.Strafe.Press(1)
				case ev.MatchString("up"):
					controls.Lift.Press(1)
				case ev.MatchString("down"):
					controls.Lift.Press(-1)
				case ev.MatchString("m"):
					v.state.CycleMode()
				case ev.MatchString("x"):
					v.state.Wireframe = !v.state.Wireframe
				case ev.MatchString("r"):
					v.state.Camera.Position = math3d.Vec3{}
					v.state.Camera.Yaw = 0
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w", "s"):
					controls.Forward.Release()
				case ev.MatchString("a", "d"):
					controls.Turn.Release()
				case ev.MatchString("left", "right"):
					controls.Strafe.Release()
				case ev.MatchString("up", "down"):
					controls.Lift.Release()
				}
			}

		case now := <-ticker.C:
			dt := min(now.Sub(lastFrame).Seconds(), maxFrameStep)
			lastFrame = now

			fb := v.engine.RenderFrame(v.state, controls.Input(dt))
			v.term.Render(fb)
			if err := v.term.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
		}
	}
}
