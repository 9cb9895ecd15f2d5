package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drake-arcade/internal/registry"
	"github.com/vovakirdan/drake-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game variant with its best recorded score.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Scores are a bonus here; a missing database only drops the column.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	rows := make([][]string, len(games))
	for i, g := range games {
		best, played := "-", "0"
		if st := stats[g.ID]; st != nil {
			best, played = strconv.Itoa(st.HighScore), strconv.Itoa(st.GamesCount)
		}
		rows[i] = []string{g.ID, g.Title, g.Summary, best, played}
	}
	printTable(os.Stdout, []string{"ID", "Title", "About", "Best", "Played"}, rows, 3, 4)

	fmt.Println("Run 'drake play <id>' to play a game.")
}
