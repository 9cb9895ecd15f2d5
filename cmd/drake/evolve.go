package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/evolve"
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
	"github.com/vovakirdan/drake-arcade/internal/platform/tui"
	"github.com/vovakirdan/drake-arcade/internal/storage"
	"github.com/vovakirdan/drake-arcade/internal/telemetry"
)

var (
	flagGenerations int
	flagPopulation  int
	flagOutDir      string
	flagChampion    string
	flagFrom        string
	flagWatch       bool
)

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Train a population of drakes with neuro-evolution",
	Long: `Evolve neural networks that fly the drake.

Every generation flies the same pipe course together. Drakes earn fitness
for each tick survived and each pipe passed, and lose fitness on a crash.
Training stops after --generations or once the fitness threshold from the
game config is reached. The fittest genome is saved as a champion file
that 'drake play drake --pilot' can replay.

Each run is recorded in the scores database ('drake runs' lists them).
With --out, per-generation statistics are also written as CSV.

Examples:
  drake evolve
  drake evolve --generations 100 --population 50
  drake evolve --out ./runs --champion ./champion.yaml
  drake evolve --from ./champion.yaml --generations 20
  drake evolve --watch`,
	Args: cobra.NoArgs,
	RunE: runEvolve,
}

func init() {
	evolveCmd.Flags().IntVar(&flagGenerations, "generations", 0, "Generations to train (0 = config value)")
	evolveCmd.Flags().IntVar(&flagPopulation, "population", 0, "Population size (0 = config value)")
	evolveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	evolveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	evolveCmd.Flags().StringVar(&flagNEATConfig, "neat-config", "", "Path to custom NEAT config YAML")
	evolveCmd.Flags().StringVar(&flagOutDir, "out", "", "Directory for per-generation CSV statistics")
	evolveCmd.Flags().StringVar(&flagChampion, "champion", "~/.drake/champion.yaml", "Where to save the fittest genome")
	evolveCmd.Flags().StringVar(&flagFrom, "from", "", "Champion file to seed the population from")
	evolveCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch the flock fly in the terminal while it trains")
}

// runRecorder persists every generation report of one run.
type runRecorder struct {
	store  *storage.Store
	runID  string
	csv    *telemetry.CSVWriter
	logger *log.Logger

	generations int
	solved      bool
}

func (r *runRecorder) OnGeneration(rep evolve.GenerationReport) error {
	r.generations++
	r.solved = rep.Solved
	if r.store != nil {
		if err := r.store.SaveGeneration(r.runID, rep.Stats); err != nil {
			return err
		}
	}
	return r.csv.Write(rep.Stats)
}

// finish records the outcome and saves the champion.
func (r *runRecorder) finish(champion neuro.Champion, path string) {
	if champion.Genome != nil && path != "" {
		if err := neuro.SaveChampion(path, champion); err != nil {
			r.logger.Error("could not save champion", "path", path, "error", err)
			path = ""
		} else {
			r.logger.Info("champion saved", "path", path, "fitness", fmt.Sprintf("%.2f", champion.Fitness), "generation", champion.Generation)
		}
	} else {
		path = ""
	}

	if r.store != nil {
		err := r.store.FinishRun(r.runID, storage.RunSummary{
			Generations:  r.generations,
			BestFitness:  champion.Fitness,
			Solved:       r.solved,
			ChampionPath: path,
		})
		if err != nil {
			r.logger.Error("could not record run", "run", r.runID, "error", err)
		}
	}
	if err := r.csv.Close(); err != nil {
		r.logger.Error("could not close CSV output", "error", err)
	}
}

func runEvolve(cmd *cobra.Command, _ []string) error {
	logger := newLogger("drake-evolve")

	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	if flagWatch && flagFrom != "" {
		return errors.New("--from cannot be combined with --watch")
	}

	drake.SetConfigPath(flagConfig)
	drake.SetDifficultyPreset(flagDifficulty)
	cfg, err := drake.LoadConfig()
	if err != nil {
		return err
	}
	neatCfg, err := config.LoadNEAT(flagNEATConfig)
	if err != nil {
		return err
	}
	if flagGenerations > 0 {
		cfg.Evolution.Generations = flagGenerations
	}
	if flagPopulation > 0 {
		cfg.Evolution.Population = flagPopulation
	}
	settings, err := neuro.NewSettings(neatCfg, cfg.Evolution.Population)
	if err != nil {
		return err
	}
	seed := resolveSeed()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, run will not be recorded", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rec := &runRecorder{store: store, logger: logger}
	if store != nil {
		rec.runID, err = store.StartRun(cfg.Evolution.Population, seed)
		if err != nil {
			return err
		}
	} else {
		rec.runID = storage.NewRunID()
	}
	if flagOutDir != "" {
		rec.csv, err = telemetry.NewCSVWriter(filepath.Join(expandHome(flagOutDir), rec.runID+".csv"))
		if err != nil {
			return err
		}
	}

	logger.Info("training",
		"run", rec.runID,
		"population", cfg.Evolution.Population,
		"generations", cfg.Evolution.Generations,
		"seed", seed,
	)

	if flagWatch {
		return watchEvolution(cfg, neatCfg, store, seed, rec, logger)
	}

	var trainer *evolve.Trainer
	if flagFrom != "" {
		ancestor, loadErr := neuro.LoadChampion(expandHome(flagFrom))
		if loadErr != nil {
			return loadErr
		}
		trainer, err = evolve.NewTrainerFrom(cfg, settings, ancestor, seed)
	} else {
		trainer, err = evolve.NewTrainer(cfg, settings, seed)
	}
	if err != nil {
		return err
	}
	trainer.Observe(evolve.LogObserver(logger))
	trainer.Observe(rec)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := trainer.Run(ctx, cfg.Evolution.Generations)
	rec.finish(res.Champion, expandHome(flagChampion))

	switch {
	case errors.Is(runErr, context.Canceled):
		logger.Warn("training interrupted", "generations", res.Generations)
		return nil
	case runErr != nil:
		return runErr
	case res.Solved:
		logger.Info("fitness threshold reached", "generations", res.Generations)
	default:
		logger.Info("training finished", "generations", res.Generations)
	}
	return nil
}

// watchEvolution trains inside the terminal UI.
func watchEvolution(cfg config.DrakeConfig, neatCfg config.NEATConfig, store *storage.Store, seed int64, rec *runRecorder, logger *log.Logger) error {
	evolve.SetObservers(rec)
	defer evolve.SetObservers()

	game := evolve.NewGameWithConfig(cfg, neatCfg)
	rt := runtimeConfig()
	rt.Seed = seed

	runErr := tui.Run(game, store, rt)

	var champion neuro.Champion
	if t := game.Trainer(); t != nil {
		champion = t.Champion()
	}
	rec.finish(champion, expandHome(flagChampion))
	if runErr == nil {
		logger.Info("training finished", "generations", rec.generations)
	}
	return runErr
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
