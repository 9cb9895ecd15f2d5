package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drake-arcade/internal/platform/tui"
	"github.com/vovakirdan/drake-arcade/internal/storage"
	"github.com/vovakirdan/drake-arcade/internal/telemetry"
)

var (
	flagRunsLimit  int
	flagRunsBrowse bool
	flagRunsCSV    string
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "Show recorded training runs",
	Long: `List recent training runs, or the per-generation history of one run.

Examples:
  drake runs
  drake runs 6f1c0f52-7d1e-4a0b-9d0c-2f4f3c1e9a10
  drake runs --browse
  drake runs --csv ~/drake-runs/6f1c0f52-7d1e-4a0b-9d0c-2f4f3c1e9a10.csv`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to list")
	runsCmd.Flags().BoolVar(&flagRunsBrowse, "browse", false, "Browse runs interactively")
	runsCmd.Flags().StringVar(&flagRunsCSV, "csv", "", "Show a generations CSV written by 'drake evolve --out'")
}

func runRuns(_ *cobra.Command, args []string) {
	if flagRunsCSV != "" {
		if err := printCSV(os.Stdout, flagRunsCSV); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsBrowse {
		cfg := runtimeConfig()
		if _, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 1 {
		printRun(store, args[0])
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No training runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'drake evolve' to train a flock.")
		return
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.RunID,
			r.StartedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(r.Population),
			strconv.Itoa(r.Generations),
			fmt.Sprintf("%.2f", r.BestFitness),
			yesNo(r.Solved),
		}
	}
	printTable(os.Stdout, []string{"Run", "Started", "Pop", "Gens", "Best", "Solved"}, rows, 2, 3, 4)
}

func printRun(store *storage.Store, runID string) {
	run, err := store.GetRun(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		return
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown run %q\n", runID)
		os.Exit(1)
	}

	fmt.Printf("Run %s\n", run.RunID)
	fmt.Printf("  Population: %d   Seed: %d   Solved: %s\n", run.Population, run.Seed, yesNo(run.Solved))
	if run.ChampionPath != "" {
		fmt.Printf("  Champion:   %s\n", run.ChampionPath)
	}
	fmt.Println()

	gens, err := store.RunGenerations(runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving generations: %v\n", err)
		return
	}
	if len(gens) == 0 {
		fmt.Println("No generations recorded.")
		return
	}

	printGenerations(os.Stdout, gens)
}

// printCSV shows the generation history stored in a CSV file.
func printCSV(w io.Writer, path string) error {
	gens, err := telemetry.ReadCSV(expandHome(path))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Generations from %s\n\n", path)
	if len(gens) == 0 {
		fmt.Fprintln(w, "No generations recorded.")
		return nil
	}
	printGenerations(w, gens)
	return nil
}

func printGenerations(w io.Writer, gens []telemetry.GenerationStats) {
	rows := make([][]string, len(gens))
	for i, g := range gens {
		rows[i] = []string{
			strconv.Itoa(g.Generation),
			fmt.Sprintf("%.2f", g.Best),
			fmt.Sprintf("%.2f", g.Mean),
			fmt.Sprintf("%.2f", g.Median),
			fmt.Sprintf("%.2f", g.StdDev),
			strconv.Itoa(g.Score),
			strconv.Itoa(g.Species),
			strconv.Itoa(g.Ticks),
		}
	}
	printTable(w, []string{"Gen", "Best", "Mean", "Median", "StdDev", "Score", "Species", "Ticks"}, rows, 0, 1, 2, 3, 4, 5, 6, 7)
}
