package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"

	"github.com/vovakirdan/drake-arcade/internal/evolve"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
	"github.com/vovakirdan/drake-arcade/internal/storage"
	"github.com/vovakirdan/drake-arcade/internal/telemetry"
)

func TestRunRecorder(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	runID, err := store.StartRun(4, 7)
	if err != nil {
		t.Fatalf("StartRun() error: %v", err)
	}
	csvPath := filepath.Join(dir, "out", runID+".csv")
	w, err := telemetry.NewCSVWriter(csvPath)
	if err != nil {
		t.Fatalf("NewCSVWriter() error: %v", err)
	}

	rec := &runRecorder{store: store, runID: runID, csv: w, logger: log.New(os.Stderr)}
	for gen := 1; gen <= 3; gen++ {
		rep := evolve.GenerationReport{
			Stats:  telemetry.GenerationStats{Generation: gen, Population: 4, Best: float64(gen)},
			Solved: gen == 3,
		}
		if err := rec.OnGeneration(rep); err != nil {
			t.Fatalf("OnGeneration(%d) error: %v", gen, err)
		}
	}

	g := neuro.SeedGenome(1, rand.New(rand.NewSource(1)), neatmath.TanhActivation)
	champPath := filepath.Join(dir, "champion.yaml")
	rec.finish(neuro.Champion{Genome: g, Fitness: 3, Generation: 3}, champPath)

	run, err := store.GetRun(runID)
	if err != nil || run == nil {
		t.Fatalf("GetRun() = %v, %v", run, err)
	}
	if run.Generations != 3 || !run.Solved || run.ChampionPath != champPath {
		t.Errorf("run = %+v, expected 3 solved generations with champion %s", run, champPath)
	}

	gens, err := store.RunGenerations(runID)
	if err != nil {
		t.Fatalf("RunGenerations() error: %v", err)
	}
	if len(gens) != 3 {
		t.Errorf("stored generations = %d, expected 3", len(gens))
	}

	rows, err := telemetry.ReadCSV(csvPath)
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("CSV rows = %d, expected 3", len(rows))
	}

	if _, err := neuro.LoadChampion(champPath); err != nil {
		t.Errorf("LoadChampion() error: %v", err)
	}
}

func TestRunRecorderWithoutStore(t *testing.T) {
	rec := &runRecorder{runID: storage.NewRunID(), logger: log.New(os.Stderr)}
	if err := rec.OnGeneration(evolve.GenerationReport{}); err != nil {
		t.Fatalf("OnGeneration() error: %v", err)
	}
	rec.finish(neuro.Champion{}, filepath.Join(t.TempDir(), "champion.yaml"))
	if rec.generations != 1 {
		t.Errorf("generations = %d, expected 1", rec.generations)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"./champion.yaml", "./champion.yaml"},
		{"~/.drake/champion.yaml", filepath.Join(home, ".drake/champion.yaml")},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.expected {
			t.Errorf("expandHome(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"2222", "2222"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.expected {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}
