package neuro

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

// minFitness replaces non-positive fitness before reproduction.
const minFitness = 1e-4

// Member is one organism of the current generation. ID is its 1-based
// position in the generation; Fitness is written straight into the
// organism.
type Member struct {
	ID int
	*genetics.Organism
}

// SpeciesInfo is a read-only summary of one species.
type SpeciesInfo struct {
	ID          int
	Size        int
	BestFitness float64
	AvgFitness  float64
	Age         int
	Staleness   int // generations since the species last improved
}

// Population is a goNEAT population stepped one generation at a time.
// Fitness is evaluated by the caller between calls to Evolve.
type Population struct {
	Members []*Member

	settings   Settings
	pop        *genetics.Population
	epoch      genetics.PopulationEpochExecutor
	generation int
}

// NewPopulation spawns a population from a seed genome with random
// weights.
func NewPopulation(settings Settings, seed int64) (*Population, error) {
	rng := rand.New(rand.NewSource(seed))
	return spawn(settings, SeedGenome(1, rng, settings.Output))
}

// NewPopulationFrom spawns a population of perturbed copies of one genome,
// for instance to continue training a saved champion. The first member
// keeps the ancestor's weights.
func NewPopulationFrom(settings Settings, ancestor *genetics.Genome) (*Population, error) {
	if ancestor == nil {
		return nil, fmt.Errorf("neuro: cannot spawn from nil genome")
	}
	p, err := spawn(settings, ancestor)
	if err != nil {
		return nil, err
	}

	first := p.Members[0].Organism
	for i, gene := range first.Genotype.Genes {
		gene.Link.ConnectionWeight = ancestor.Genes[i].Link.ConnectionWeight
	}
	if first.Phenotype, err = first.Genotype.Genesis(first.Genotype.Id); err != nil {
		return nil, fmt.Errorf("neuro: failed to rebuild first member: %w", err)
	}
	return p, nil
}

func spawn(settings Settings, genome *genetics.Genome) (*Population, error) {
	pop, err := genetics.NewPopulation(genome, settings.NEAT)
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to spawn population: %w", err)
	}
	p := &Population{
		settings:   settings,
		pop:        pop,
		epoch:      &genetics.SequentialPopulationEpochExecutor{},
		generation: 1,
	}
	p.refresh()
	return p, nil
}

func (p *Population) refresh() {
	p.Members = make([]*Member, len(p.pop.Organisms))
	for i, org := range p.pop.Organisms {
		p.Members[i] = &Member{ID: i + 1, Organism: org}
	}
}

// Generation returns the current generation number, starting at 1.
func (p *Population) Generation() int {
	return p.generation
}

// Options returns the NEAT options in use.
func (p *Population) Options() *neat.Options {
	return p.settings.NEAT
}

// Best returns the fittest member of the current generation. Ties go to
// the lower ID.
func (p *Population) Best() *Member {
	var best *Member
	for _, m := range p.Members {
		if best == nil || m.Fitness > best.Fitness {
			best = m
		}
	}
	return best
}

// Fitness returns the fitness of every member in member order.
func (p *Population) Fitness() []float64 {
	out := make([]float64, len(p.Members))
	for i, m := range p.Members {
		out[i] = m.Fitness
	}
	return out
}

// Species returns a summary of the current species, largest first.
func (p *Population) Species() []SpeciesInfo {
	out := make([]SpeciesInfo, 0, len(p.pop.Species))
	for _, sp := range p.pop.Species {
		out = append(out, SpeciesInfo{
			ID:          sp.Id,
			Size:        len(sp.Organisms),
			BestFitness: sp.MaxFitnessEver,
			AvgFitness:  sp.AvgFitness,
			Age:         sp.Age,
			Staleness:   sp.Age - sp.AgeOfLastImprovement,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	return out
}

// Evolve replaces the current generation with its offspring through one
// goNEAT epoch. Member fitness must be set before calling; goNEAT adjusts
// it in place while reproducing, so read statistics first.
func (p *Population) Evolve(ctx context.Context) error {
	if len(p.Members) == 0 {
		return fmt.Errorf("neuro: cannot evolve an empty population")
	}

	// Offspring are allocated in proportion to fitness over the mean
	for _, m := range p.Members {
		if m.Fitness <= 0 {
			m.Fitness = minFitness
		}
	}

	ctx = neat.NewContext(ctx, p.settings.NEAT)
	if err := p.epoch.NextEpoch(ctx, p.generation, p.pop); err != nil {
		return fmt.Errorf("neuro: epoch %d: %w", p.generation, err)
	}
	p.generation++
	p.refresh()
	return nil
}
