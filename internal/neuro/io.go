package neuro

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"
	"gopkg.in/yaml.v3"
)

// Champion is a genome saved to disk together with how it was obtained.
type Champion struct {
	Genome     *genetics.Genome
	Fitness    float64
	Generation int
}

// championHeader precedes the goNEAT genome document in a champion file.
type championHeader struct {
	Fitness    float64 `yaml:"fitness"`
	Generation int     `yaml:"generation"`
}

// MarshalChampion encodes a champion as YAML: the header keys followed
// by the genome in goNEAT's YAML encoding.
func MarshalChampion(c Champion) ([]byte, error) {
	if c.Genome == nil {
		return nil, fmt.Errorf("neuro: champion has no genome")
	}

	head, err := yaml.Marshal(championHeader{Fitness: c.Fitness, Generation: c.Generation})
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to encode champion: %w", err)
	}
	buf := bytes.NewBuffer(head)

	w, err := genetics.NewGenomeWriter(buf, genetics.YAMLGenomeEncoding)
	if err != nil {
		return nil, fmt.Errorf("neuro: failed to encode champion: %w", err)
	}
	if err := w.WriteGenome(c.Genome); err != nil {
		return nil, fmt.Errorf("neuro: failed to encode genome %d: %w", c.Genome.Id, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalChampion decodes and validates a champion. The genome must
// have exactly the sensor and output layout this package produces.
func UnmarshalChampion(data []byte) (Champion, error) {
	var head championHeader
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Champion{}, fmt.Errorf("neuro: failed to parse champion: %w", err)
	}

	r, err := genetics.NewGenomeReader(bytes.NewReader(data), genetics.YAMLGenomeEncoding)
	if err != nil {
		return Champion{}, fmt.Errorf("neuro: failed to parse champion: %w", err)
	}
	genome, err := r.Read()
	if err != nil {
		return Champion{}, fmt.Errorf("neuro: failed to parse genome: %w", err)
	}
	if err := checkLayout(genome); err != nil {
		return Champion{}, err
	}

	return Champion{
		Genome:     genome,
		Fitness:    head.Fitness,
		Generation: head.Generation,
	}, nil
}

// checkLayout rejects genomes the drake sensors cannot drive.
func checkLayout(g *genetics.Genome) error {
	seen := make(map[int]bool, len(g.Nodes))
	sensors, outputs := 0, 0
	for _, node := range g.Nodes {
		if seen[node.Id] {
			return fmt.Errorf("neuro: duplicate node %d", node.Id)
		}
		seen[node.Id] = true
		switch node.NeuronType {
		case network.InputNeuron, network.BiasNeuron:
			sensors++
		case network.OutputNeuron:
			outputs++
		}
	}
	if sensors != SensorNodes || outputs != Outputs {
		return fmt.Errorf("neuro: champion has %d sensors and %d outputs, expected %d and %d",
			sensors, outputs, SensorNodes, Outputs)
	}

	for _, gene := range g.Genes {
		in, out := gene.Link.InNode, gene.Link.OutNode
		if in == nil || out == nil || !seen[in.Id] || !seen[out.Id] {
			return fmt.Errorf("neuro: gene %d references a missing node", gene.InnovationNum)
		}
	}
	return nil
}

// SaveChampion writes a champion file, creating parent directories.
func SaveChampion(path string, c Champion) error {
	data, err := MarshalChampion(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("neuro: failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("neuro: failed to write champion: %w", err)
	}
	return nil
}

// LoadChampion reads a champion file.
func LoadChampion(path string) (Champion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Champion{}, fmt.Errorf("neuro: failed to read champion: %w", err)
	}
	c, err := UnmarshalChampion(data)
	if err != nil {
		return Champion{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
