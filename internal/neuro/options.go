package neuro

import (
	"fmt"
	"strings"

	"github.com/yaricom/goNEAT/v4/neat"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"

	"github.com/vovakirdan/drake-arcade/internal/config"
)

// Settings is the resolved evolution configuration.
type Settings struct {
	NEAT   *neat.Options
	Output neatmath.NodeActivationType
}

// NewSettings converts the YAML parameters into goNEAT options. Hidden
// nodes added by mutation all use the configured hidden activation.
func NewSettings(cfg config.NEATConfig, popSize int) (Settings, error) {
	if popSize < 1 {
		return Settings{}, fmt.Errorf("neuro: population size must be positive, got %d", popSize)
	}

	output, err := ParseActivation(cfg.Network.OutputActivation)
	if err != nil {
		return Settings{}, err
	}
	hidden, err := ParseActivation(cfg.Network.HiddenActivation)
	if err != nil {
		return Settings{}, err
	}

	level := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch level {
	case "":
		level = "error"
	case "debug", "info", "warn", "error":
	default:
		return Settings{}, fmt.Errorf("neuro: unknown log level %q", cfg.LogLevel)
	}
	if err := neat.InitLogger(level); err != nil {
		return Settings{}, fmt.Errorf("neuro: log level: %w", err)
	}

	opts := &neat.Options{
		TraitParamMutProb:  cfg.Mutation.TraitParamProb,
		TraitMutationPower: cfg.Mutation.TraitPower,

		WeightMutPower: cfg.Mutation.WeightPower,

		MutateAddNodeProb:      cfg.Mutation.AddNodeProb,
		MutateAddLinkProb:      cfg.Mutation.AddLinkProb,
		MutateToggleEnableProb: cfg.Mutation.ToggleEnableProb,
		MutateGeneReenableProb: cfg.Mutation.GeneReenableProb,
		NewLinkTries:           cfg.Mutation.LinkTries,

		MutateLinkWeightsProb: cfg.Mutation.WeightsProb,
		MutateOnlyProb:        cfg.Mutation.OnlyProb,
		MutateRandomTraitProb: cfg.Mutation.RandomTraitProb,
		MutateLinkTraitProb:   cfg.Mutation.LinkTraitProb,
		MutateNodeTraitProb:   cfg.Mutation.NodeTraitProb,

		MateMultipointProb:    cfg.Mating.MultipointProb,
		MateMultipointAvgProb: cfg.Mating.MultipointAvgProb,
		MateSinglepointProb:   cfg.Mating.SinglepointProb,
		MateOnlyProb:          cfg.Mating.OnlyProb,
		RecurOnlyProb:         cfg.Mating.RecurOnlyProb,
		InterspeciesMateRate:  cfg.Mating.InterspeciesRate,

		CompatThreshold: cfg.Speciation.CompatThreshold,
		DisjointCoeff:   cfg.Speciation.DisjointCoeff,
		ExcessCoeff:     cfg.Speciation.ExcessCoeff,
		MutdiffCoeff:    cfg.Speciation.MutdiffCoeff,

		DropOffAge:      cfg.Speciation.DropOffAge,
		SurvivalThresh:  cfg.Speciation.SurvivalThresh,
		AgeSignificance: cfg.Speciation.AgeSignificance,

		NodeActivators:     []neatmath.NodeActivationType{hidden},
		NodeActivatorsProb: []float64{1},

		PopSize:  popSize,
		LogLevel: level,
	}

	return Settings{NEAT: opts, Output: output}, nil
}
