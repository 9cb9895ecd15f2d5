package config

import (
	_ "embed"
)

//go:embed defaults/drake.yaml
var defaultDrakeYAML []byte

//go:embed defaults/neat.yaml
var defaultNEATYAML []byte

// DefaultDrakeConfig returns the default drake configuration.
func DefaultDrakeConfig() DrakeConfig {
	return DrakeConfig{
		World: WorldConfig{
			Width:  500,
			Height: 800,
		},
		Drake: DrakePhysics{
			StartX:           150,
			StartY:           350,
			Width:            120,
			Height:           100,
			FlapVelocity:     -10.5,
			Acceleration:     1.5,
			MaxDrop:          16,
			AscentBoost:      2,
			MaxRotation:      25,
			MinRotation:      -90,
			RotationVelocity: 20,
			TiltHold:         50,
			AnimationTime:    5,
		},
		Pipes: PipeConfig{
			Width:     104,
			Height:    640,
			CapHeight: 24,
			Gap:       NormalGap,
			Velocity:  5,
			MinHeight: 50,
			MaxHeight: 450,
			FirstX:    800,
			SpawnX:    600,
		},
		Scenery: SceneryConfig{
			Velocity:        5,
			GroundOffset:    4,
			GroundWidth:     672,
			SkyWidth:        672,
			BackgroundWidth: 500,
		},
		Evolution: EvolutionConfig{
			Population:       20,
			Generations:      50,
			TickReward:       0.1,
			CrashPenalty:     1,
			PassBonus:        5,
			FlapThreshold:    0.5,
			MaxScore:         50,
			FirstPipeX:       700,
			FitnessThreshold: 0,
		},
	}
}

// DefaultNEATConfig returns the default neuro-evolution parameters.
func DefaultNEATConfig() NEATConfig {
	return NEATConfig{
		Mutation: NEATMutation{
			TraitParamProb:   0.5,
			TraitPower:       1.0,
			WeightPower:      2.5,
			WeightsProb:      0.8,
			AddNodeProb:      0.03,
			AddLinkProb:      0.08,
			ToggleEnableProb: 0.01,
			RandomTraitProb:  0.1,
			LinkTraitProb:    0.1,
			NodeTraitProb:    0.1,
			GeneReenableProb: 0.05,
			OnlyProb:         0.25,
			LinkTries:        20,
		},
		Mating: NEATMating{
			MultipointProb:    0.6,
			MultipointAvgProb: 0.4,
			SinglepointProb:   0.0,
			OnlyProb:          0.2,
			RecurOnlyProb:     0.0,
			InterspeciesRate:  0.001,
		},
		Speciation: NEATSpeciation{
			CompatThreshold: 3.0,
			DisjointCoeff:   1.0,
			ExcessCoeff:     1.0,
			MutdiffCoeff:    0.5,
			DropOffAge:      15,
			SurvivalThresh:  0.2,
			AgeSignificance: 1.0,
		},
		Network: NEATNetwork{
			OutputActivation: "tanh",
			HiddenActivation: "sigmoid",
		},
		LogLevel: "error",
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "drake":
		return defaultDrakeYAML
	case "neat":
		return defaultNEATYAML
	default:
		return nil
	}
}
