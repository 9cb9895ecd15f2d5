// Package telemetry summarises training generations and exports them.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one evaluated generation.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Population int     `csv:"population"`
	Best       float64 `csv:"best_fitness"`
	Mean       float64 `csv:"mean_fitness"`
	StdDev     float64 `csv:"stddev_fitness"`
	Median     float64 `csv:"median_fitness"`
	Worst      float64 `csv:"worst_fitness"`
	Score      int     `csv:"score"`
	Species    int     `csv:"species"`
	Ticks      int     `csv:"ticks"`
}

// Summarize computes fitness statistics for a generation. An empty
// fitness slice yields zero statistics.
func Summarize(generation int, fitness []float64, score, species, ticks int) GenerationStats {
	s := GenerationStats{
		Generation: generation,
		Population: len(fitness),
		Score:      score,
		Species:    species,
		Ticks:      ticks,
	}
	if len(fitness) == 0 {
		return s
	}

	sorted := make([]float64, len(fitness))
	copy(sorted, fitness)
	sort.Float64s(sorted)

	s.Worst = sorted[0]
	s.Best = sorted[len(sorted)-1]
	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}
