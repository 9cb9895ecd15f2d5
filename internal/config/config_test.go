package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDrakeMatchesDefaults(t *testing.T) {
	cfg, err := LoadDrake("")
	if err != nil {
		t.Fatalf("LoadDrake() error: %v", err)
	}
	def := DefaultDrakeConfig()

	if cfg.World != def.World {
		t.Errorf("World = %+v, expected %+v", cfg.World, def.World)
	}
	if cfg.Drake != def.Drake {
		t.Errorf("Drake = %+v, expected %+v", cfg.Drake, def.Drake)
	}
	if cfg.Pipes != def.Pipes {
		t.Errorf("Pipes = %+v, expected %+v", cfg.Pipes, def.Pipes)
	}
	if cfg.Scenery != def.Scenery {
		t.Errorf("Scenery = %+v, expected %+v", cfg.Scenery, def.Scenery)
	}
	if cfg.Evolution != def.Evolution {
		t.Errorf("Evolution = %+v, expected %+v", cfg.Evolution, def.Evolution)
	}
}

func TestEmbeddedNEATMatchesDefaults(t *testing.T) {
	cfg, err := LoadNEAT("")
	if err != nil {
		t.Fatalf("LoadNEAT() error: %v", err)
	}
	if cfg != DefaultNEATConfig() {
		t.Errorf("LoadNEAT() = %+v, expected defaults", cfg)
	}
}

func TestLoadDrakeCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drake.yaml")
	data := []byte("pipes:\n  gap: 150\ndrake:\n  ascent_boost: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDrake(path)
	if err != nil {
		t.Fatalf("LoadDrake() error: %v", err)
	}
	if cfg.Pipes.Gap != 150 {
		t.Errorf("Gap = %d, expected 150", cfg.Pipes.Gap)
	}
	if cfg.Drake.AscentBoost != 0 {
		t.Errorf("AscentBoost = %v, expected 0", cfg.Drake.AscentBoost)
	}
	// Untouched keys keep their defaults
	if cfg.Pipes.Width != 104 {
		t.Errorf("Width = %d, expected 104", cfg.Pipes.Width)
	}
	if cfg.Drake.FlapVelocity != -10.5 {
		t.Errorf("FlapVelocity = %v, expected -10.5", cfg.Drake.FlapVelocity)
	}
}

func TestLoadDrakeErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDrake(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("pipes: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDrake(bad); err == nil {
		t.Error("expected error for malformed config")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("pipes:\n  gap: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDrake(invalid); err == nil {
		t.Error("expected validation error for zero gap")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DrakeConfig)
		ok     bool
	}{
		{"defaults", func(*DrakeConfig) {}, true},
		{"empty height range", func(c *DrakeConfig) { c.Pipes.MinHeight = 450 }, false},
		{"negative gap", func(c *DrakeConfig) { c.Pipes.Gap = -1 }, false},
		{"zero world", func(c *DrakeConfig) { c.World.Width = 0 }, false},
		{"inverted rotation", func(c *DrakeConfig) { c.Drake.MinRotation = 30 }, false},
		{"zero animation", func(c *DrakeConfig) { c.Drake.AnimationTime = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDrakeConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, expected ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		in  string
		gap int
	}{
		{"easy", EasyGap},
		{"Normal", NormalGap},
		{" hard ", HardGap},
	}

	for _, tt := range tests {
		p, err := ParseDifficulty(tt.in)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q) error: %v", tt.in, err)
		}
		cfg := DefaultDrakeConfig()
		ApplyDrakePreset(&cfg, p)
		if cfg.Pipes.Gap != tt.gap {
			t.Errorf("preset %q gap = %d, expected %d", tt.in, cfg.Pipes.Gap, tt.gap)
		}
	}

	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, err := ParseDifficulty(""); err != nil || p != "" {
		t.Errorf("ParseDifficulty(\"\") = %q, %v; expected empty preset", p, err)
	}
}

func TestGroundY(t *testing.T) {
	cfg := DefaultDrakeConfig()
	if got := cfg.GroundY(); got != 796 {
		t.Errorf("GroundY() = %v, expected 796", got)
	}
}
