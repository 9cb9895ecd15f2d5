package drake

import "math"

// Sensors are the observations a pilot receives each tick.
type Sensors struct {
	Height    float64 // drake y
	GapTop    float64 // distance to the bottom edge of the top segment
	GapBottom float64 // distance to the top edge of the bottom segment
}

// Slice returns the sensors in network input order.
func (s Sensors) Slice() []float64 {
	return []float64{s.Height, s.GapTop, s.GapBottom}
}

// Sense measures the drake against a target pipe.
func Sense(d *Drake, p *Pipe) Sensors {
	return Sensors{
		Height:    d.Y,
		GapTop:    math.Abs(d.Y - float64(p.Height)),
		GapBottom: math.Abs(d.Y - float64(p.Bottom)),
	}
}

// Pilot decides whether a drake flaps this tick.
type Pilot interface {
	Decide(s Sensors) (bool, error)
}

// PilotFunc adapts a plain function to the Pilot interface.
type PilotFunc func(s Sensors) (bool, error)

// Decide calls f(s).
func (f PilotFunc) Decide(s Sensors) (bool, error) {
	return f(s)
}
