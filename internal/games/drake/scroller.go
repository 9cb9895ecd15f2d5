package drake

import "math"

// Layer identifies a scrolling scenery layer.
type Layer int

const (
	LayerBackground Layer = iota
	LayerGround
	LayerSky
)

// Scroller is a horizontally tiled layer drawn twice side by side. When a
// tile scrolls fully off the left edge it is moved behind the other one.
type Scroller struct {
	Layer    Layer
	Y        float64
	X1, X2   float64
	Width    float64
	Velocity float64
}

// NewScroller creates a layer with its two tiles placed edge to edge.
func NewScroller(layer Layer, y, width, velocity float64) *Scroller {
	return &Scroller{
		Layer:    layer,
		Y:        y,
		X1:       0,
		X2:       width,
		Width:    width,
		Velocity: velocity,
	}
}

// Advance scrolls both tiles left by one tick.
func (s *Scroller) Advance() {
	s.X1 -= s.Velocity
	s.X2 -= s.Velocity

	if s.X1+s.Width < 0 {
		s.X1 = s.X2 + s.Width
	}
	if s.X2+s.Width < 0 {
		s.X2 = s.X1 + s.Width
	}
}

// Offset returns where the tiling pattern starts, in [0, Width).
func (s *Scroller) Offset() float64 {
	off := math.Mod(s.X1, s.Width)
	if off < 0 {
		off += s.Width
	}
	return off
}
