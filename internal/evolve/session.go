package evolve

import (
	"fmt"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
)

// Session flies one generation until every drake is down or the score
// cap is reached.
type Session struct {
	World *drake.World
	Flock *Flock

	cfg    config.EvolutionConfig
	startX float64
	size   int
	ticks  int
	faults int
	ended  bool
}

// NewSession creates one drake and one network per member. Member fitness
// is reset to zero.
func NewSession(members []*neuro.Member, cfg config.DrakeConfig, sprites *drake.Sprites, seed int64) (*Session, error) {
	s := &Session{
		World:  drake.NewWorld(cfg, sprites, cfg.Evolution.FirstPipeX, seed),
		Flock:  &Flock{},
		cfg:    cfg.Evolution,
		startX: cfg.Drake.StartX,
		size:   len(members),
	}

	for _, m := range members {
		brain, err := neuro.NewBrain(m.Genotype)
		if err != nil {
			return nil, fmt.Errorf("evolve: member %d: %w", m.ID, err)
		}
		m.Fitness = 0
		s.Flock.Add(&Entry{
			ID:     m.ID,
			Member: m,
			Brain:  brain,
			Drake:  drake.NewDrake(cfg.Drake, sprites),
		})
	}
	s.ended = s.Flock.Len() == 0
	return s, nil
}

// Step advances the generation by one tick. Returns false once the
// generation is over.
func (s *Session) Step() bool {
	if s.ended {
		return false
	}
	s.ticks++

	leadX := s.startX
	if lead := s.Flock.Lead(); lead != nil {
		leadX = lead.Drake.X
	}
	target, hasTarget := s.World.Target(leadX)

	for _, e := range s.Flock.Entries() {
		e.Member.Fitness += s.cfg.TickReward

		if hasTarget {
			pilot := Autopilot{Brain: e.Brain, Threshold: s.cfg.FlapThreshold}
			flap, err := pilot.Decide(drake.Sense(e.Drake, target))
			if err != nil {
				// A broken network grounds its drake
				s.faults++
				s.Flock.Remove(e.ID)
				continue
			}
			if flap {
				e.Drake.Flap()
			}
		}
		e.Drake.Advance()
		e.Drake.Animate()
	}

	for _, p := range s.World.Pipes.Pipes() {
		for _, e := range s.Flock.Entries() {
			if p.Collide(e.Drake) {
				e.Member.Fitness -= s.cfg.CrashPenalty
				s.Flock.Remove(e.ID)
			}
		}
	}

	if passed := s.World.Advance(leadX, true); passed > 0 {
		bonus := s.cfg.PassBonus * float64(passed)
		for _, e := range s.Flock.Entries() {
			e.Member.Fitness += bonus
		}
	}

	for _, e := range s.Flock.Entries() {
		if s.World.OutOfBounds(e.Drake) {
			s.Flock.Remove(e.ID)
		}
	}

	if s.Flock.Len() == 0 || (s.cfg.MaxScore > 0 && s.World.Score >= s.cfg.MaxScore) {
		s.ended = true
	}
	return !s.ended
}

// Run steps the session until it ends or stop returns true.
func (s *Session) Run(stop func() bool) {
	for s.Step() {
		if stop != nil && stop() {
			return
		}
	}
}

// Ended reports whether the generation is over.
func (s *Session) Ended() bool {
	return s.ended
}

// Ticks returns the number of ticks simulated.
func (s *Session) Ticks() int {
	return s.ticks
}

// Size returns the number of drakes the session started with.
func (s *Session) Size() int {
	return s.size
}

// Faults returns the number of drakes grounded by a failing network.
func (s *Session) Faults() int {
	return s.faults
}
