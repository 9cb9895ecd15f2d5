// Package drake implements a side-scrolling flying game: the player flaps
// a drake through gaps between pairs of pipes.
//
// The simulation runs in a fixed logical world measured in pixels with
// pixel-accurate sprite collision, and is projected onto the terminal grid
// only when rendering.
package drake

import (
	"fmt"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/registry"
)

// EndTitle is shown once the drake has crashed.
const EndTitle = "Story ends here"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var defaultPilot Pilot

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values keep
// the config file's gap.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetPilot makes newly created games fly on autopilot.
func SetPilot(p Pilot) {
	defaultPilot = p
}

// LoadConfig resolves the game config from the CLI settings.
func LoadConfig() (config.DrakeConfig, error) {
	cfg, err := config.LoadDrake(configPath)
	if err != nil {
		return config.DefaultDrakeConfig(), err
	}
	if difficultyPreset != "" {
		config.ApplyDrakePreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game implements the manually flown drake game.
type Game struct {
	cfg      config.DrakeConfig
	fixed    bool // cfg was supplied by the caller
	runtime  core.RuntimeConfig
	world    *World
	drake    *Drake
	pilot    Pilot // configured autopilot
	flying   Pilot // pilot for the current round, nil once it fails
	pilotErr error
	ended    bool
	paused   bool
}

// New creates a new drake game using the CLI config settings.
func New() *Game {
	return &Game{pilot: defaultPilot}
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.DrakeConfig) *Game {
	return &Game{cfg: cfg, fixed: true, pilot: defaultPilot}
}

// SetPilot sets or clears the autopilot of this game.
func (g *Game) SetPilot(p Pilot) {
	g.pilot = p
	g.flying = p
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "drake"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Drake"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixed {
		cfg, err := LoadConfig()
		if err != nil {
			cfg = config.DefaultDrakeConfig()
		}
		g.cfg = cfg
	}

	sprites := MustSprites(g.cfg)
	g.world = NewWorld(g.cfg, sprites, g.cfg.Pipes.FirstX, runtime.Seed)
	g.drake = NewDrake(g.cfg.Drake, sprites)
	g.ended = false
	g.paused = false
	g.flying = g.pilot
	g.pilotErr = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.ended {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) || g.autopilot() {
		g.drake.Flap()
	}

	g.drake.Advance()
	g.drake.Animate()

	if g.world.Collides(g.drake) || g.world.OutOfBounds(g.drake) {
		g.ended = true
		return core.StepResult{State: g.State()}
	}

	g.world.Advance(g.drake.X, true)

	return core.StepResult{State: g.State()}
}

// autopilot asks the pilot for a decision. A failing pilot is dropped and
// the error is kept for the HUD.
func (g *Game) autopilot() bool {
	if g.flying == nil {
		return false
	}
	target, ok := g.world.Target(g.drake.X)
	if !ok {
		return false
	}
	flap, err := g.flying.Decide(Sense(g.drake, target))
	if err != nil {
		g.pilotErr = err
		g.flying = nil
		return false
	}
	return flap
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	r := NewRenderer(dst, g.world)
	r.Scenery()
	r.Ground()
	if !g.ended {
		r.Drake(g.drake, core.ColorDrake)
	}
	r.Score(g.world.Score)

	if g.pilotErr != nil {
		r.Lines(fmt.Sprintf("pilot disabled: %v", g.pilotErr))
	}

	if g.paused {
		DrawBanner(dst, "PAUSED", "Press P to resume")
	}

	if g.ended {
		DrawBanner(dst, EndTitle, fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score))
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.Score,
		GameOver: g.ended,
		Paused:   g.paused,
	}
}

// World returns the simulated world.
func (g *Game) World() *World {
	return g.world
}

// Drake returns the player drake.
func (g *Game) Drake() *Drake {
	return g.drake
}

// Register the game with the registry
func init() {
	registry.Register("drake", func() registry.Game {
		return New()
	}, registry.WithOrder(0), registry.WithSummary("Flap through the pipes yourself"))
}
