package neuro

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Brain wraps the phenotype network built from a genome.
type Brain struct {
	Genome  *genetics.Genome
	network *network.Network
	inputs  []float64
}

// NewBrain builds the network for a genome.
func NewBrain(genome *genetics.Genome) (*Brain, error) {
	if genome == nil {
		return nil, fmt.Errorf("neuro: cannot build brain from nil genome")
	}
	phenotype, err := genome.Genesis(genome.Id)
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to build network from genome %d: %w", genome.Id, err)
	}

	return &Brain{
		Genome:  genome,
		network: phenotype,
		inputs:  make([]float64, SensorNodes),
	}, nil
}

// Activate feeds the sensor values through the network and returns the
// output. The bias sensor is filled in automatically.
func (b *Brain) Activate(sensors []float64) (float64, error) {
	if len(sensors) != Inputs {
		return 0, fmt.Errorf("neuro: expected %d inputs, got %d", Inputs, len(sensors))
	}
	copy(b.inputs, sensors)
	b.inputs[Inputs] = BiasValue

	if err := b.network.LoadSensors(b.inputs); err != nil {
		return 0, fmt.Errorf("neuro: failed to load sensors: %w", err)
	}

	// Relax the network once per layer so the signal reaches the output
	depth, err := b.network.MaxActivationDepth()
	if err != nil || depth < 1 {
		depth = b.network.NodeCount()
	}
	for i := 0; i < depth; i++ {
		if _, err := b.network.Activate(); err != nil {
			return 0, fmt.Errorf("neuro: activation failed: %w", err)
		}
	}

	outputs := b.network.ReadOutputs()
	if len(outputs) != Outputs {
		return 0, fmt.Errorf("neuro: expected %d outputs, got %d", Outputs, len(outputs))
	}
	out := outputs[0]

	if _, err := b.network.Flush(); err != nil {
		return 0, fmt.Errorf("neuro: flush failed: %w", err)
	}
	return out, nil
}

// NodeCount returns the number of nodes in the network.
func (b *Brain) NodeCount() int {
	return b.network.NodeCount()
}

// LinkCount returns the number of links in the network.
func (b *Brain) LinkCount() int {
	return b.network.LinkCount()
}
