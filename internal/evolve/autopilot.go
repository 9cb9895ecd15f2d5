package evolve

import (
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
)

// Autopilot flies a drake with a network: an output above Threshold is a
// flap.
type Autopilot struct {
	Brain     *neuro.Brain
	Threshold float64
}

// NewAutopilot builds a pilot from a champion genome.
func NewAutopilot(c neuro.Champion, threshold float64) (*Autopilot, error) {
	b, err := neuro.NewBrain(c.Genome)
	if err != nil {
		return nil, err
	}
	return &Autopilot{Brain: b, Threshold: threshold}, nil
}

// Decide implements drake.Pilot.
func (a *Autopilot) Decide(s drake.Sensors) (bool, error) {
	out, err := a.Brain.Activate(s.Slice())
	if err != nil {
		return false, err
	}
	return out > a.Threshold, nil
}
