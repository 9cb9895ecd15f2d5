package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/platform/tui"
	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  T            - Training runs
  Q            - Quit

Examples:
  drake menu
  drake menu --fps 30
  drake menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	menuCmd.Flags().StringVar(&flagPilot, "pilot", "", "Champion file that flies the drake instead of you")
	menuCmd.Flags().StringVar(&flagNEATConfig, "neat-config", "", "Path to custom NEAT config YAML (drake_ai)")
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		var goBack bool
		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		case tui.ChoiceRuns:
			goBack, err = tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
		case tui.ChoiceGame:
			goBack = true
			err = playRound(store, menuResult.GameID, cfg)
		default:
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if !goBack {
			return
		}
	}
}

// playRound runs one game picked from the menu.
func playRound(store *storage.Store, gameID string, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Fresh pipes every round unless a seed was given
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return tui.Run(game, store, cfg)
}
