// Package neuro adapts goNEAT genomes, networks and populations to the
// drake pilots. Reproduction, speciation and mutation are goNEAT's; this
// package builds the seed genome, maps the YAML parameters and keeps the
// network shape the drake sensors expect.
package neuro

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Network shape. The last sensor is a constant bias input.
const (
	Inputs      = 3
	SensorNodes = Inputs + 1
	Outputs     = 1
	OutputID    = SensorNodes + 1
)

// BiasValue is fed to the bias sensor on every activation.
const BiasValue = 1.0

var activations = map[string]neatmath.NodeActivationType{
	"linear":   neatmath.LinearActivation,
	"sigmoid":  neatmath.SigmoidSteepenedActivation,
	"tanh":     neatmath.TanhActivation,
	"gaussian": neatmath.GaussianActivation,
	"sine":     neatmath.SineActivation,
}

// ParseActivation resolves an activation function by name.
func ParseActivation(name string) (neatmath.NodeActivationType, error) {
	a, ok := activations[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("neuro: unknown activation %q", name)
	}
	return a, nil
}

// SeedGenome creates a minimal genome: every sensor wired straight to the
// output with a random weight in [-1, 1). Innovation numbers 1..SensorNodes
// are shared by all seed genomes. Nodes and links point at a single trait,
// which goNEAT's structural mutations expect to find.
func SeedGenome(id int, rng *rand.Rand, output neatmath.NodeActivationType) *genetics.Genome {
	trait := neat.NewTrait()
	trait.Id = 1

	nodes := make([]*network.NNode, 0, SensorNodes+Outputs)
	for i := 1; i <= SensorNodes; i++ {
		node := network.NewNNode(i, network.InputNeuron)
		node.ActivationType = neatmath.LinearActivation
		node.Trait = trait
		nodes = append(nodes, node)
	}

	out := network.NewNNode(OutputID, network.OutputNeuron)
	out.ActivationType = output
	out.Trait = trait
	nodes = append(nodes, out)

	genes := make([]*genetics.Gene, 0, SensorNodes)
	for i := 0; i < SensorNodes; i++ {
		gene := genetics.NewGeneWithTrait(
			trait, rng.Float64()*2-1,
			nodes[i], out,
			false, int64(i+1), 0,
		)
		genes = append(genes, gene)
	}

	return genetics.NewGenome(id, []*neat.Trait{trait}, nodes, genes)
}
