package drake

import (
	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/registry"
)

// Demo scrolls the scenery and pipes without a drake. Pipes spawn as they
// pass the drake's start column, so the track looks like a real run. It
// never ends.
type Demo struct {
	cfg      config.DrakeConfig
	fixed    bool
	world    *World
	phantomX float64
	paused   bool
}

// NewDemo creates a background demo using the CLI config settings.
func NewDemo() *Demo {
	return &Demo{}
}

// NewDemoWithConfig creates a demo with an explicit configuration.
func NewDemoWithConfig(cfg config.DrakeConfig) *Demo {
	return &Demo{cfg: cfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (d *Demo) ID() string {
	return "drake_demo"
}

// Title returns the display name for this game.
func (d *Demo) Title() string {
	return "Drake Scenery"
}

// Reset initializes or restarts the demo.
func (d *Demo) Reset(runtime core.RuntimeConfig) {
	if !d.fixed {
		cfg, err := LoadConfig()
		if err != nil {
			cfg = config.DefaultDrakeConfig()
		}
		d.cfg = cfg
	}

	d.world = NewWorld(d.cfg, MustSprites(d.cfg), d.cfg.Pipes.FirstX, runtime.Seed)
	d.phantomX = d.cfg.Drake.StartX
	d.paused = false
}

// Step advances the scenery by one tick.
func (d *Demo) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		d.paused = !d.paused
	}
	if !d.paused {
		d.world.Advance(d.phantomX, true)
	}
	return core.StepResult{State: d.State()}
}

// Render draws the scenery.
func (d *Demo) Render(dst *core.Screen) {
	dst.Clear()

	r := NewRenderer(dst, d.world)
	r.Scenery()
	r.Ground()
	r.Score(d.world.Score)

	if d.paused {
		DrawBanner(dst, "PAUSED", "Press P to resume")
	}
}

// State returns the current demo state. The demo is never over.
func (d *Demo) State() core.GameState {
	if d.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:  d.world.Score,
		Paused: d.paused,
	}
}

// World returns the simulated world.
func (d *Demo) World() *World {
	return d.world
}

func init() {
	registry.Register("drake_demo", func() registry.Game {
		return NewDemo()
	}, registry.WithOrder(2), registry.WithSummary("Scenery and pipes scrolling on their own"))
}
