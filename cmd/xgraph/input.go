package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/xgraph-go/xgraph/pkg/pipeline"
)

// holdDecay fades a pressed key's target each frame; terminal key repeat
// refreshes it while the key is held, since release events are unreliable.
const holdDecay = 0.9

// Axis eases a movement value toward its target with a critically damped
// spring, so camera motion starts and stops smoothly.
type Axis struct {
	Value  float64
	target float64
	vel    float64
	spring harmonica.Spring
}

// NewAxis creates an axis updated fps times per second.
func NewAxis(fps int) Axis {
	// Frequency 6.0 = quick response, damping 1.0 = no overshoot
	return Axis{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Press sets the target direction, usually -1 or +1.
func (a *Axis) Press(dir float64) {
	a.target = dir
}

// Release drops the target to zero.
func (a *Axis) Release() {
	a.target = 0
}

// Update advances the spring one frame and returns the new value.
func (a *Axis) Update() float64 {
	a.Value, a.vel = a.spring.Update(a.Value, a.vel, a.target)
	a.target *= holdDecay
	return a.Value
}

// Controls holds one axis per camera movement.
type Controls struct {
	Forward, Strafe, Lift, Turn Axis
}

// NewControls creates controls for the given frame rate.
func NewControls(fps int) *Controls {
	return &Controls{
		Forward: NewAxis(fps),
		Strafe:  NewAxis(fps),
		Lift:    NewAxis(fps),
		Turn:    NewAxis(fps),
	}
}

// Input advances every axis and packages them for the engine.
func (c *Controls) Input(elapsed float64) pipeline.Input {
	return pipeline.Input{
		Elapsed: elapsed,
		Forward: c.Forward.Update(),
		Strafe:  c.Strafe.Update(),
		Lift:    c.Lift.Update(),
		Turn:    c.Turn.Update(),
	}
}
