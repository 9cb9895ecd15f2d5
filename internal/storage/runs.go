package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/drake-arcade/internal/telemetry"
)

// Run describes one training run.
type Run struct {
	ID           int64
	RunID        string
	Population   int
	Seed         int64
	Generations  int
	BestFitness  float64
	Solved       bool
	ChampionPath string
	StartedAt    time.Time
	FinishedAt   time.Time // zero while the run is in progress
}

// RunSummary is the final outcome of a run.
type RunSummary struct {
	Generations  int
	BestFitness  float64
	Solved       bool
	ChampionPath string
}

// NewRunID returns a fresh identifier for a training run.
func NewRunID() string {
	return uuid.NewString()
}

// StartRun records the beginning of a training run and returns its ID.
func (s *Store) StartRun(population int, seed int64) (string, error) {
	runID := NewRunID()
	_, err := s.db.Exec(
		"INSERT INTO training_runs (run_id, population, seed) VALUES (?, ?, ?)",
		runID, population, seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return runID, nil
}

// FinishRun records the outcome of a run.
func (s *Store) FinishRun(runID string, sum RunSummary) error {
	res, err := s.db.Exec(
		`UPDATE training_runs
		 SET generations = ?, best_fitness = ?, solved = ?, champion_path = ?, finished_at = CURRENT_TIMESTAMP
		 WHERE run_id = ?`,
		sum.Generations, sum.BestFitness, sum.Solved, sum.ChampionPath, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown run %q", runID)
	}
	return nil
}

// SaveGeneration records the statistics of one generation of a run.
func (s *Store) SaveGeneration(runID string, g telemetry.GenerationStats) error {
	_, err := s.db.Exec(
		`INSERT INTO generations
		 (run_id, generation, best_fitness, mean_fitness, stddev_fitness, median_fitness, score, species, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, g.Generation, g.Best, g.Mean, g.StdDev, g.Median, g.Score, g.Species, g.Ticks,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save generation: %w", err)
	}
	return nil
}

// RunGenerations retrieves the generations of a run in order.
func (s *Store) RunGenerations(runID string) ([]telemetry.GenerationStats, error) {
	rows, err := s.db.Query(
		`SELECT generation, best_fitness, mean_fitness, stddev_fitness, median_fitness, score, species, ticks
		 FROM generations
		 WHERE run_id = ?
		 ORDER BY generation`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var out []telemetry.GenerationStats
	for rows.Next() {
		var g telemetry.GenerationStats
		if err := rows.Scan(&g.Generation, &g.Best, &g.Mean, &g.StdDev, &g.Median, &g.Score, &g.Species, &g.Ticks); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

const runColumns = `id, run_id, population, seed, generations, best_fitness, solved, champion_path, started_at, finished_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var startedAt, finishedAt any
	err := row.Scan(&r.ID, &r.RunID, &r.Population, &r.Seed, &r.Generations,
		&r.BestFitness, &r.Solved, &r.ChampionPath, &startedAt, &finishedAt)
	if err != nil {
		return r, err
	}
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// GetRun retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) GetRun(runID string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		"SELECT "+runColumns+" FROM training_runs WHERE run_id = ?",
		runID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM training_runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
