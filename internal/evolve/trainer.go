package evolve

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
	"github.com/vovakirdan/drake-arcade/internal/telemetry"
)

// GenerationReport describes one evaluated generation.
type GenerationReport struct {
	Stats    telemetry.GenerationStats
	Champion neuro.Champion // fittest member of this generation
	Solved   bool           // fitness threshold reached
	Faults   int
}

// Observer receives a report after every generation. An error stops
// training.
type Observer interface {
	OnGeneration(r GenerationReport) error
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(r GenerationReport) error

// OnGeneration calls f(r).
func (f ObserverFunc) OnGeneration(r GenerationReport) error {
	return f(r)
}

// LogObserver logs one line per generation.
func LogObserver(logger *log.Logger) Observer {
	return ObserverFunc(func(r GenerationReport) error {
		logger.Info("generation",
			"n", r.Stats.Generation,
			"best", fmt.Sprintf("%.2f", r.Stats.Best),
			"mean", fmt.Sprintf("%.2f", r.Stats.Mean),
			"score", r.Stats.Score,
			"ticks", r.Stats.Ticks,
			"species", r.Stats.Species,
		)
		if r.Faults > 0 {
			logger.Warn("networks failed to activate", "generation", r.Stats.Generation, "count", r.Faults)
		}
		return nil
	})
}

// Result summarises a training run.
type Result struct {
	Generations int
	Champion    neuro.Champion // fittest genome seen in any generation
	Solved      bool
}

// Trainer evaluates generations of a population one session at a time.
type Trainer struct {
	cfg       config.DrakeConfig
	pop       *neuro.Population
	sprites   *drake.Sprites
	seed      int64
	observers []Observer
	champion  neuro.Champion
	solved    bool
}

// NewTrainer creates a trainer over a fresh population.
func NewTrainer(cfg config.DrakeConfig, settings neuro.Settings, seed int64) (*Trainer, error) {
	sprites, err := drake.NewSprites(cfg)
	if err != nil {
		return nil, err
	}
	pop, err := neuro.NewPopulation(settings, seed)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		cfg:     cfg,
		pop:     pop,
		sprites: sprites,
		seed:    seed,
	}, nil
}

// NewTrainerFrom creates a trainer whose population descends from a saved
// champion.
func NewTrainerFrom(cfg config.DrakeConfig, settings neuro.Settings, ancestor neuro.Champion, seed int64) (*Trainer, error) {
	sprites, err := drake.NewSprites(cfg)
	if err != nil {
		return nil, err
	}
	pop, err := neuro.NewPopulationFrom(settings, ancestor.Genome)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		cfg:     cfg,
		pop:     pop,
		sprites: sprites,
		seed:    seed,
	}, nil
}

// Observe registers an observer.
func (t *Trainer) Observe(o Observer) {
	t.observers = append(t.observers, o)
}

// Population returns the evolving population.
func (t *Trainer) Population() *neuro.Population {
	return t.pop
}

// Champion returns the fittest genome evaluated so far.
func (t *Trainer) Champion() neuro.Champion {
	return t.champion
}

// Solved reports whether a generation reached the fitness threshold.
func (t *Trainer) Solved() bool {
	return t.solved
}

// NextSession builds the session for the current generation. The pipe
// sequence depends on the seed and the generation number.
func (t *Trainer) NextSession() (*Session, error) {
	return NewSession(t.pop.Members, t.cfg, t.sprites, t.seed+int64(t.pop.Generation()))
}

// Conclude reports a finished session to the observers and, unless the
// fitness threshold was reached, evolves the next generation. Statistics
// are taken before evolving since reproduction adjusts fitness in place.
func (t *Trainer) Conclude(ctx context.Context, s *Session) (GenerationReport, error) {
	best := t.pop.Best()
	stats := telemetry.Summarize(
		t.pop.Generation(),
		t.pop.Fitness(),
		s.World.Score,
		len(t.pop.Species()),
		s.Ticks(),
	)

	r := GenerationReport{
		Stats: stats,
		Champion: neuro.Champion{
			Genome:     best.Genotype,
			Fitness:    best.Fitness,
			Generation: t.pop.Generation(),
		},
		Faults: s.Faults(),
	}
	if t.champion.Genome == nil || best.Fitness > t.champion.Fitness {
		t.champion = r.Champion
	}

	threshold := t.cfg.Evolution.FitnessThreshold
	r.Solved = threshold > 0 && best.Fitness >= threshold
	t.solved = r.Solved

	for _, o := range t.observers {
		if err := o.OnGeneration(r); err != nil {
			return r, fmt.Errorf("evolve: observer: %w", err)
		}
	}

	if !r.Solved {
		if err := t.pop.Evolve(ctx); err != nil {
			return r, err
		}
	}
	return r, nil
}

// Run trains for up to the given number of generations. It stops early
// when the fitness threshold is reached or ctx is cancelled; cancellation
// is checked between ticks.
func (t *Trainer) Run(ctx context.Context, generations int) (Result, error) {
	var res Result
	stop := func() bool { return ctx.Err() != nil }

	for gen := 0; gen < generations; gen++ {
		s, err := t.NextSession()
		if err != nil {
			return res, err
		}
		s.Run(stop)
		if err := ctx.Err(); err != nil {
			res.Champion = t.champion
			return res, err
		}

		r, err := t.Conclude(ctx, s)
		res.Generations++
		res.Champion = t.champion
		if err != nil {
			return res, err
		}
		if r.Solved {
			res.Solved = true
			break
		}
	}
	return res, nil
}
