package drake

import "github.com/vovakirdan/drake-arcade/internal/config"

// World is the scrolling play-field: scenery layers, the pipe track and
// the score. Drakes live outside the world so that one or many can fly
// through it.
type World struct {
	Background *Scroller
	Ground     *Scroller
	Sky        *Scroller
	Pipes      *PipeTrack
	Shape      *PipeShape
	Sprites    *Sprites
	Score      int
	Ticks      int

	cfg config.DrakeConfig
}

// NewWorld creates a world with its first pipe at firstPipeX.
func NewWorld(cfg config.DrakeConfig, sprites *Sprites, firstPipeX int, seed int64) *World {
	shape := NewPipeShape(cfg.Pipes, sprites)
	vel := cfg.Scenery.Velocity

	return &World{
		Background: NewScroller(LayerBackground, 0, cfg.Scenery.BackgroundWidth, vel),
		Ground:     NewScroller(LayerGround, cfg.GroundY(), cfg.Scenery.GroundWidth, vel),
		Sky:        NewScroller(LayerSky, 0, cfg.Scenery.SkyWidth, vel),
		Pipes:      NewPipeTrack(shape, firstPipeX, cfg.Pipes.SpawnX, seed),
		Shape:      shape,
		Sprites:    sprites,
		cfg:        cfg,
	}
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.DrakeConfig {
	return w.cfg
}

// Collides reports whether the drake overlaps any active pipe.
func (w *World) Collides(d *Drake) bool {
	for _, p := range w.Pipes.Pipes() {
		if p.Collide(d) {
			return true
		}
	}
	return false
}

// OutOfBounds reports whether the drake has left the vertical play-field:
// its sprite reaches below the ground line, or it rises within one sprite
// height of the sky line.
func (w *World) OutOfBounds(d *Drake) bool {
	h := float64(d.SpriteHeight())
	return d.Y+h > w.Ground.Y || d.Y-h < w.Sky.Y
}

// Advance runs the spawn/despawn policy and scrolls the scenery.
// Passed pipes are added to the score. Returns the pipes passed this tick.
func (w *World) Advance(leadX float64, spawn bool) int {
	passed := w.Pipes.Advance(leadX, spawn)
	w.Score += passed
	w.Scroll()
	return passed
}

// Scroll moves the scenery layers by one tick.
func (w *World) Scroll() {
	w.Ticks++
	w.Background.Advance()
	w.Ground.Advance()
	w.Sky.Advance()
}

// Target returns the pipe in front of a drake at leadX.
func (w *World) Target(leadX float64) (*Pipe, bool) {
	return w.Pipes.At(w.Pipes.TargetIndex(leadX))
}
