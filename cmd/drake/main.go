// drake is a terminal flying game with a neuro-evolution trainer.
//
// Usage:
//
//	drake list              - List available games
//	drake play <game>       - Play a game
//	drake menu              - Start menu to pick games interactively
//	drake serve             - Start SSH server for remote play
//	drake scores <game>     - Show high scores for a game
//	drake evolve            - Train a population of drakes
//	drake runs [run-id]     - Show training runs
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.drake/scores.db)
//	--log-level <level>   - Set log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/drake-arcade/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/drake-arcade/internal/evolve"
	_ "github.com/vovakirdan/drake-arcade/internal/games/drake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drake",
	Short: "Drake - fly through the pipes, or watch a flock learn to",
	Long: `Drake is a side-scrolling flying game for the terminal. Fly it yourself,
let a trained network fly it, or watch a population evolve.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  evolve   - Train a population with neuro-evolution
  runs     - Browse recorded training runs

Examples:
  drake list
  drake play drake
  drake play drake --pilot ~/.drake/champion.yaml
  drake evolve --generations 50 --champion ./champion.yaml
  drake serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.drake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(evolveCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger returns the stderr logger configured by --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// runtimeConfig sizes the play field to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(),
	}
}

// resolveSeed returns --seed, or a time-based seed when it is zero.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
