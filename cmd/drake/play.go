package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/evolve"
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
	"github.com/vovakirdan/drake-arcade/internal/platform/tui"
	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPilot      string
	flagNEATConfig string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Up   - Flap
  P/Esc      - Pause
  +/-        - Speed the simulation up or down
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Difficulty options (pipe gap):
  easy   - 220 pixels
  normal - 200 pixels
  hard   - 170 pixels

Examples:
  drake play drake
  drake play drake --difficulty hard
  drake play drake --pilot ./champion.yaml
  drake play drake_ai --neat-config ./neat.yaml
  drake play drake --config ./my-drake.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagPilot, "pilot", "", "Champion file that flies the drake instead of you")
	playCmd.Flags().StringVar(&flagNEATConfig, "neat-config", "", "Path to custom NEAT config YAML (drake_ai)")
}

// applyGameFlags hands the CLI settings to the game packages before a
// game is created.
func applyGameFlags() error {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	drake.SetConfigPath(flagConfig)
	drake.SetDifficultyPreset(flagDifficulty)
	evolve.SetNEATConfigPath(flagNEATConfig)

	if flagPilot == "" {
		drake.SetPilot(nil)
		return nil
	}
	champion, err := neuro.LoadChampion(expandHome(flagPilot))
	if err != nil {
		return err
	}
	cfg, err := drake.LoadConfig()
	if err != nil {
		return err
	}
	pilot, err := evolve.NewAutopilot(champion, cfg.Evolution.FlapThreshold)
	if err != nil {
		return err
	}
	drake.SetPilot(pilot)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'drake list' to see available games.")
		os.Exit(1)
	}

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
