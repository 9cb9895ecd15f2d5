package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

Examples:
  drake scores drake
  drake scores drake --limit 25
  drake scores drake --limit 0     # every recorded round
  drake scores drake_demo --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 for all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]
	info, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'drake list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		clearScores(store, info)
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit == 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n\n", info.Title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'drake play %s' to set the first high score!\n", gameID)
		return
	}

	rows := make([][]string, len(scores))
	for i, e := range scores {
		rows[i] = []string{strconv.Itoa(i + 1), strconv.Itoa(e.Score), e.CreatedAt.Format("2006-01-02 15:04")}
	}
	printTable(os.Stdout, []string{"Rank", "Score", "Date"}, rows, 0, 1)

	if st, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.1f\n", st.HighScore, st.GamesCount, st.AvgScore)
	}
}

func clearScores(store *storage.Store, info registry.GameInfo) {
	best, err := store.HighScore(info.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n, err := store.ClearScores(info.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared %d %s scores (best was %d).\n", n, info.Title, best)
}
