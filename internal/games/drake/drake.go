package drake

import (
	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
)

// Drake is the flying player sprite.
//
// Vertical motion follows a quadratic of the ticks elapsed since the last
// flap: d = Vel*t + Acceleration*t². Downward motion is capped at MaxDrop
// per tick and upward motion gets an extra AscentBoost.
type Drake struct {
	X, Y   float64
	Vel    float64 // velocity set by the last flap
	Ticks  int     // ticks since the last flap
	Tilt   float64 // degrees, positive is nose up
	Height float64 // Y at the last flap
	Frame  int     // sprite frame index

	frameCount int
	phys       config.DrakePhysics
	sprites    *Sprites
}

// NewDrake creates a drake at the configured start position.
func NewDrake(phys config.DrakePhysics, sprites *Sprites) *Drake {
	return NewDrakeAt(phys.StartX, phys.StartY, phys, sprites)
}

// NewDrakeAt creates a drake at an explicit position.
func NewDrakeAt(x, y float64, phys config.DrakePhysics, sprites *Sprites) *Drake {
	return &Drake{
		X:       x,
		Y:       y,
		Height:  y,
		phys:    phys,
		sprites: sprites,
	}
}

// Flap gives the drake an upward impulse.
func (d *Drake) Flap() {
	d.Vel = d.phys.FlapVelocity
	d.Ticks = 0
	d.Height = d.Y
}

// Displacement returns the raw quadratic displacement for the current tick
// count, before the drop cap and ascent boost.
func (d *Drake) Displacement() float64 {
	t := float64(d.Ticks)
	return d.Vel*t + d.phys.Acceleration*t*t
}

// Advance moves the drake by one tick and returns the applied displacement.
func (d *Drake) Advance() float64 {
	d.Ticks++

	disp := min(d.Displacement(), d.phys.MaxDrop)
	if disp < 0 {
		disp -= d.phys.AscentBoost
	}
	d.Y += disp

	if disp < 0 || d.Y < d.Height+d.phys.TiltHold {
		if d.Tilt < d.phys.MaxRotation {
			d.Tilt = d.phys.MaxRotation
		}
	} else if d.Tilt > d.phys.MinRotation {
		d.Tilt = max(d.Tilt-d.phys.RotationVelocity, d.phys.MinRotation)
	}

	return disp
}

// Animate advances the wing-beat cycle (0, 1, 2, 1, 0). The counter
// holds the last frame for one tick at the end of the cycle. A steep
// dive holds the wings level.
func (d *Drake) Animate() {
	at := d.phys.AnimationTime
	d.frameCount++

	switch {
	case d.frameCount < at:
		d.Frame = 0
	case d.frameCount < at*2:
		d.Frame = 1
	case d.frameCount < at*3:
		d.Frame = 2
	case d.frameCount < at*4:
		d.Frame = 1
	case d.frameCount > at*4:
		d.Frame = 0
		d.frameCount = 0
	}

	if d.Tilt <= -80 {
		d.Frame = 1
		d.frameCount = at * 2
	}
}

// Mask returns the collision mask of the current frame.
func (d *Drake) Mask() *core.Mask {
	return d.sprites.Frames[d.Frame]
}

// Width returns the sprite width in pixels.
func (d *Drake) Width() int {
	return d.phys.Width
}

// SpriteHeight returns the sprite height in pixels.
func (d *Drake) SpriteHeight() int {
	return d.phys.Height
}
