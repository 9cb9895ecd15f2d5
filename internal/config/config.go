// Package config provides YAML-based configuration loading and difficulty
// presets for the drake games and the neuro-evolution trainer.
package config

import (
	"errors"
	"fmt"
)

// DrakeConfig contains all configuration for the drake games.
type DrakeConfig struct {
	World     WorldConfig     `yaml:"world"`
	Drake     DrakePhysics    `yaml:"drake"`
	Pipes     PipeConfig      `yaml:"pipes"`
	Scenery   SceneryConfig   `yaml:"scenery"`
	Evolution EvolutionConfig `yaml:"evolution"`
}

// WorldConfig defines the logical play-field in pixels.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DrakePhysics defines the drake sprite and its kinematics.
type DrakePhysics struct {
	StartX           float64 `yaml:"start_x"`
	StartY           float64 `yaml:"start_y"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	FlapVelocity     float64 `yaml:"flap_velocity"`
	Acceleration     float64 `yaml:"acceleration"`
	MaxDrop          float64 `yaml:"max_drop"`
	AscentBoost      float64 `yaml:"ascent_boost"`
	MaxRotation      float64 `yaml:"max_rotation"`
	MinRotation      float64 `yaml:"min_rotation"`
	RotationVelocity float64 `yaml:"rotation_velocity"`
	TiltHold         float64 `yaml:"tilt_hold"`
	AnimationTime    int     `yaml:"animation_time"`
}

// PipeConfig defines pipe geometry and the spawn policy.
type PipeConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	CapHeight int `yaml:"cap_height"`
	Gap       int `yaml:"gap"`
	Velocity  int `yaml:"velocity"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"` // exclusive
	FirstX    int `yaml:"first_x"`
	SpawnX    int `yaml:"spawn_x"`
}

// SceneryConfig defines the scrolling layers.
type SceneryConfig struct {
	Velocity        float64 `yaml:"velocity"`
	GroundOffset    int     `yaml:"ground_offset"` // ground y = world height - offset
	GroundWidth     float64 `yaml:"ground_width"`
	SkyWidth        float64 `yaml:"sky_width"`
	BackgroundWidth float64 `yaml:"background_width"`
}

// EvolutionConfig defines rewards and limits of the evolutionary variant.
type EvolutionConfig struct {
	Population       int     `yaml:"population"`
	Generations      int     `yaml:"generations"`
	TickReward       float64 `yaml:"tick_reward"`
	CrashPenalty     float64 `yaml:"crash_penalty"`
	PassBonus        float64 `yaml:"pass_bonus"`
	FlapThreshold    float64 `yaml:"flap_threshold"`
	MaxScore         int     `yaml:"max_score"` // 0 disables the cap
	FirstPipeX       int     `yaml:"first_pipe_x"`
	FitnessThreshold float64 `yaml:"fitness_threshold"` // 0 disables early stop
}

// GroundY returns the y coordinate of the ground line.
func (c DrakeConfig) GroundY() float64 {
	return float64(c.World.Height - c.Scenery.GroundOffset)
}

// Validate reports configuration values the simulation cannot run with.
func (c DrakeConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.Drake.Width <= 0 || c.Drake.Height <= 0 {
		errs = append(errs, fmt.Errorf("drake size must be positive, got %dx%d", c.Drake.Width, c.Drake.Height))
	}
	if c.Drake.AnimationTime <= 0 {
		errs = append(errs, fmt.Errorf("drake animation_time must be positive, got %d", c.Drake.AnimationTime))
	}
	if c.Drake.MinRotation > c.Drake.MaxRotation {
		errs = append(errs, fmt.Errorf("drake min_rotation %.0f exceeds max_rotation %.0f", c.Drake.MinRotation, c.Drake.MaxRotation))
	}
	if c.Pipes.Width <= 0 || c.Pipes.Height <= 0 {
		errs = append(errs, fmt.Errorf("pipe size must be positive, got %dx%d", c.Pipes.Width, c.Pipes.Height))
	}
	if c.Pipes.Gap <= 0 {
		errs = append(errs, fmt.Errorf("pipe gap must be positive, got %d", c.Pipes.Gap))
	}
	if c.Pipes.MinHeight >= c.Pipes.MaxHeight {
		errs = append(errs, fmt.Errorf("pipe height range [%d, %d) is empty", c.Pipes.MinHeight, c.Pipes.MaxHeight))
	}
	if c.Scenery.GroundWidth <= 0 || c.Scenery.SkyWidth <= 0 || c.Scenery.BackgroundWidth <= 0 {
		errs = append(errs, errors.New("scenery widths must be positive"))
	}
	if c.Evolution.Population < 0 {
		errs = append(errs, fmt.Errorf("evolution population must not be negative, got %d", c.Evolution.Population))
	}
	return errors.Join(errs...)
}

// NEATConfig holds the neuro-evolution parameters read from neat.yaml.
type NEATConfig struct {
	Mutation   NEATMutation   `yaml:"mutation"`
	Mating     NEATMating     `yaml:"mating"`
	Speciation NEATSpeciation `yaml:"speciation"`
	Network    NEATNetwork    `yaml:"network"`
	LogLevel   string         `yaml:"log_level"` // goNEAT's own logger
}

// NEATMutation defines mutation rates.
type NEATMutation struct {
	TraitParamProb   float64 `yaml:"trait_param_prob"`
	TraitPower       float64 `yaml:"trait_power"`
	WeightPower      float64 `yaml:"weight_power"`
	WeightsProb      float64 `yaml:"weights_prob"`
	AddNodeProb      float64 `yaml:"add_node_prob"`
	AddLinkProb      float64 `yaml:"add_link_prob"`
	ToggleEnableProb float64 `yaml:"toggle_enable_prob"`
	RandomTraitProb  float64 `yaml:"random_trait_prob"`
	LinkTraitProb    float64 `yaml:"link_trait_prob"`
	NodeTraitProb    float64 `yaml:"node_trait_prob"`
	GeneReenableProb float64 `yaml:"gene_reenable_prob"`
	OnlyProb         float64 `yaml:"only_prob"`
	LinkTries        int     `yaml:"link_tries"`
}

// NEATMating defines crossover rates.
type NEATMating struct {
	MultipointProb    float64 `yaml:"multipoint_prob"`
	MultipointAvgProb float64 `yaml:"multipoint_avg_prob"`
	SinglepointProb   float64 `yaml:"singlepoint_prob"`
	OnlyProb          float64 `yaml:"only_prob"`
	RecurOnlyProb     float64 `yaml:"recur_only_prob"`
	InterspeciesRate  float64 `yaml:"interspecies_rate"`
}

// NEATSpeciation defines compatibility and species management.
type NEATSpeciation struct {
	CompatThreshold float64 `yaml:"compat_threshold"`
	DisjointCoeff   float64 `yaml:"disjoint_coeff"`
	ExcessCoeff     float64 `yaml:"excess_coeff"`
	MutdiffCoeff    float64 `yaml:"mutdiff_coeff"`
	DropOffAge      int     `yaml:"drop_off_age"`
	SurvivalThresh  float64 `yaml:"survival_thresh"`
	AgeSignificance float64 `yaml:"age_significance"`
}

// NEATNetwork defines the phenotype shape.
type NEATNetwork struct {
	OutputActivation string `yaml:"output_activation"`
	HiddenActivation string `yaml:"hidden_activation"`
}
