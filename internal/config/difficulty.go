package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Gap sizes per preset. The gap stays constant for the whole run.
const (
	EasyGap   = 220
	NormalGap = 200
	HardGap   = 170
)

// ParseDifficulty converts a flag value into a preset.
// An empty string yields no preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// GapForPreset returns the pipe gap for a difficulty preset.
// Unknown presets return 0.
func GapForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return EasyGap
	case DifficultyNormal:
		return NormalGap
	case DifficultyHard:
		return HardGap
	default:
		return 0
	}
}

// ApplyDrakePreset modifies the config based on a difficulty preset.
func ApplyDrakePreset(cfg *DrakeConfig, preset DifficultyPreset) {
	if gap := GapForPreset(preset); gap > 0 {
		cfg.Pipes.Gap = gap
	}

	// Presets also set the score a trained flock must reach.
	switch preset {
	case DifficultyEasy:
		cfg.Evolution.MaxScore = 30
	case DifficultyHard:
		cfg.Evolution.MaxScore = 100
	}
}
