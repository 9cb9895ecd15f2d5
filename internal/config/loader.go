package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDrake loads the drake game configuration.
// Search order: customPath -> ~/.drake/configs/drake.yaml -> ./configs/drake.yaml -> embedded default
func LoadDrake(customPath string) (DrakeConfig, error) {
	cfg, err := load("drake.yaml", customPath, defaultDrakeYAML, DefaultDrakeConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid drake config: %w", err)
	}
	return cfg, nil
}

// LoadNEAT loads the neuro-evolution parameters.
// Search order: customPath -> ~/.drake/configs/neat.yaml -> ./configs/neat.yaml -> embedded default
func LoadNEAT(customPath string) (NEATConfig, error) {
	return load("neat.yaml", customPath, defaultNEATYAML, DefaultNEATConfig)
}

// load resolves a config file through the search order. Files are decoded
// over the hardcoded defaults so partial files only override what they name.
func load[T any](filename, customPath string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if parsed, ok := tryFile(userCfgPath, defaults); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryFile(filepath.Join("configs", filename), defaults); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile decodes an optional config file. Missing or malformed files are skipped.
func tryFile[T any](path string, defaults func() T) (T, bool) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drake", "configs", filename)
}
