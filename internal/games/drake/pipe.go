package drake

import (
	"math/rand"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
)

// PipeShape is the geometry shared by every pipe of a world.
type PipeShape struct {
	Width     int
	Height    int // height of one segment image
	Gap       int
	Velocity  int
	MinHeight int
	MaxHeight int // exclusive

	top    *core.Mask
	bottom *core.Mask
}

// NewPipeShape builds the shared pipe geometry.
func NewPipeShape(cfg config.PipeConfig, sprites *Sprites) *PipeShape {
	return &PipeShape{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Gap:       cfg.Gap,
		Velocity:  cfg.Velocity,
		MinHeight: cfg.MinHeight,
		MaxHeight: cfg.MaxHeight,
		top:       sprites.PipeTop,
		bottom:    sprites.PipeBottom,
	}
}

// RandomHeight draws a gap position uniformly from [MinHeight, MaxHeight).
func (s *PipeShape) RandomHeight(rng *rand.Rand) int {
	return rng.Intn(s.MaxHeight-s.MinHeight) + s.MinHeight
}

// Pipe is a pair of segments with a gap between them.
// Height is where the top segment ends and the gap begins.
type Pipe struct {
	X      int
	Height int
	Top    int // y of the top segment image
	Bottom int // y of the bottom segment image
	Passed bool

	shape *PipeShape
}

// NewPipe creates a pipe at x with the gap starting at height.
func NewPipe(x, height int, shape *PipeShape) *Pipe {
	return &Pipe{
		X:      x,
		Height: height,
		Top:    height - shape.Height,
		Bottom: height + shape.Gap,
		shape:  shape,
	}
}

// Advance scrolls the pipe left by one tick.
func (p *Pipe) Advance() {
	p.X -= p.shape.Velocity
}

// Collide reports whether the drake's current sprite overlaps either segment.
func (p *Pipe) Collide(d *Drake) bool {
	mask := d.Mask()
	dx := p.X - core.Round(d.X)
	dy := core.Round(d.Y)

	if mask.Overlap(p.shape.bottom, dx, p.Bottom-dy) {
		return true
	}
	return mask.Overlap(p.shape.top, dx, p.Top-dy)
}

// OffScreen reports whether the pipe has fully left the play-field.
func (p *Pipe) OffScreen() bool {
	return p.X+p.shape.Width < 0
}

// Right returns the x coordinate just past the pipe's right edge.
func (p *Pipe) Right() int {
	return p.X + p.shape.Width
}

// Shape returns the pipe geometry.
func (p *Pipe) Shape() *PipeShape {
	return p.shape
}
