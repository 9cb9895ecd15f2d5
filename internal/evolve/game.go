package evolve

import (
	"context"
	"fmt"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
	"github.com/vovakirdan/drake-arcade/internal/registry"
)

// neatConfigPath stores the custom NEAT config path set via CLI
var neatConfigPath string

// SetNEATConfigPath sets the custom NEAT config path for loading.
func SetNEATConfigPath(path string) {
	neatConfigPath = path
}

// defaultObservers are attached to every trainer the game creates.
var defaultObservers []Observer

// SetObservers registers observers for games created afterwards.
func SetObservers(obs ...Observer) {
	defaultObservers = obs
}

// flockColors tints drakes so individuals can be told apart.
var flockColors = []core.Color{
	core.ColorDrake,
	core.ColorBrightYellow,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
	core.ColorBrightGreen,
	core.ColorWhite,
}

// Game watches a population learn to fly, one generation after another.
type Game struct {
	cfg      config.DrakeConfig
	neatCfg  config.NEATConfig
	fixed    bool
	trainer  *Trainer
	session  *Session
	last     *GenerationReport
	err      error
	finished bool
	paused   bool
}

// NewGame creates an evolution game using the CLI config settings.
func NewGame() *Game {
	return &Game{}
}

// NewGameWithConfig creates an evolution game with explicit configs.
func NewGameWithConfig(cfg config.DrakeConfig, neatCfg config.NEATConfig) *Game {
	return &Game{cfg: cfg, neatCfg: neatCfg, fixed: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "drake_ai"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Drake Evolution"
}

// Reset starts a new population from scratch.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.fixed {
		cfg, err := drake.LoadConfig()
		if err != nil {
			cfg = config.DefaultDrakeConfig()
		}
		neatCfg, err := config.LoadNEAT(neatConfigPath)
		if err != nil {
			neatCfg = config.DefaultNEATConfig()
		}
		g.cfg, g.neatCfg = cfg, neatCfg
	}

	g.trainer, g.session, g.last = nil, nil, nil
	g.err = nil
	g.finished = false
	g.paused = false

	settings, err := neuro.NewSettings(g.neatCfg, g.cfg.Evolution.Population)
	if err != nil {
		g.fail(err)
		return
	}
	g.trainer, err = NewTrainer(g.cfg, settings, runtime.Seed)
	if err != nil {
		g.fail(err)
		return
	}
	for _, o := range defaultObservers {
		g.trainer.Observe(o)
	}
	g.session, err = g.trainer.NextSession()
	if err != nil {
		g.fail(err)
	}
}

func (g *Game) fail(err error) {
	g.err = err
	g.finished = true
}

// Step advances the current generation by one tick and moves on to the
// next generation when it ends.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.finished {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.session.Step() {
		return core.StepResult{State: g.State()}
	}

	r, err := g.trainer.Conclude(context.Background(), g.session)
	g.last = &r
	if err != nil {
		g.fail(err)
		return core.StepResult{State: g.State()}
	}
	if r.Solved || r.Stats.Generation >= g.cfg.Evolution.Generations {
		g.finished = true
		return core.StepResult{State: g.State()}
	}

	g.session, err = g.trainer.NextSession()
	if err != nil {
		g.fail(err)
	}
	return core.StepResult{State: g.State()}
}

// Render draws the flock, the guide lines to each drake's target gap and
// the training HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		if g.err != nil {
			drake.DrawBanner(dst, "Evolution failed", g.err.Error())
		}
		return
	}

	w := g.session.World
	r := drake.NewRenderer(dst, w)
	r.Scenery()

	entries := g.session.Flock.Entries()
	if lead := g.session.Flock.Lead(); lead != nil {
		index := w.Pipes.TargetIndex(lead.Drake.X)
		for _, e := range entries {
			r.Guide(e.Drake, index)
		}
	}
	for _, e := range entries {
		r.Drake(e.Drake, flockColors[e.ID%len(flockColors)])
	}
	r.Ground()
	r.Score(w.Score)

	lines := []string{
		fmt.Sprintf("Gen %d", g.trainer.Population().Generation()),
		fmt.Sprintf("Alive %d/%d", g.session.Flock.Len(), g.session.Size()),
	}
	if g.last != nil {
		lines = append(lines, fmt.Sprintf("Best %.1f", g.last.Stats.Best))
	}
	r.Lines(lines...)

	if g.paused {
		drake.DrawBanner(dst, "PAUSED", "Press P to resume")
	}
	if g.finished {
		title := "Evolution complete"
		if g.err != nil {
			title = "Evolution failed"
		}
		drake.DrawBanner(dst, title, g.summary())
	}
}

func (g *Game) summary() string {
	switch {
	case g.err != nil:
		return g.err.Error()
	case g.last == nil:
		return "Press R to restart"
	case g.last.Solved:
		return fmt.Sprintf("Solved in generation %d  |  Press R to restart", g.last.Stats.Generation)
	default:
		return fmt.Sprintf("Best fitness %.1f  |  Press R to restart", g.trainer.Champion().Fitness)
	}
}

// State returns the current training state. Score is the number of pipes
// passed in the current generation.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: g.finished}
	}
	return core.GameState{
		Score:      g.session.World.Score,
		GameOver:   g.finished,
		Paused:     g.paused,
		Generation: g.trainer.Population().Generation(),
		Alive:      g.session.Flock.Len(),
	}
}

// Trainer returns the trainer behind the game.
func (g *Game) Trainer() *Trainer {
	return g.trainer
}

// Session returns the generation currently flying.
func (g *Game) Session() *Session {
	return g.session
}

func init() {
	registry.Register("drake_ai", func() registry.Game {
		return NewGame()
	}, registry.WithOrder(1), registry.WithSummary("Watch a flock evolve to fly"))
}
