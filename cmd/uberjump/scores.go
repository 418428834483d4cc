package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/uberjump/internal/registry"
	"github.com/vovakirdan/uberjump/internal/state"
	"github.com/vovakirdan/uberjump/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show run history",
	Long: `Display the best runs of a level, or a summary of every level.

Examples:
  uberjump scores
  uberjump scores level01 --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	levelID := args[0]
	if !registry.Exists(levelID) {
		return fmt.Errorf("unknown level %q (run 'uberjump levels list')", levelID)
	}
	return printRuns(store, levelID)
}

func printSummary(store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	gs, err := state.Load(store.Scope(storage.DefaultScope))
	if err != nil {
		return err
	}
	fmt.Printf("High score: %d   Stars: %d\n", gs.HighScore, gs.Stars)
	fmt.Println()

	fmt.Printf("  %-12s  %-5s  %-9s  %-6s  %-8s  %s\n", "Level", "Runs", "Completed", "Best", "Avg", "Last played")
	fmt.Printf("  %-12s  %-5s  %-9s  %-6s  %-8s  %s\n", "-----", "----", "---------", "----", "---", "-----------")
	for _, l := range registry.List() {
		st, ok := stats[l.ID]
		if !ok {
			fmt.Printf("  %-12s  %-5d  %-9s  %-6s  %-8s  %s\n", l.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-12s  %-5d  %-9d  %-6d  %-8.1f  %s\n",
			l.ID, st.Runs, st.Completed, st.BestScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(store *storage.Store, levelID string) error {
	runs, err := store.TopRuns(levelID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := levelID
	if desc, err := registry.Create(levelID); err == nil && desc.Name != "" {
		title = desc.Name
	}
	fmt.Printf("Best runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'uberjump play %s' to set the first score!\n", levelID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-7s  %-5s  %-4s  %s\n", "Rank", "Player", "Score", "Stars", "Done", "Date")
	fmt.Printf("  %-4s  %-12s  %-7s  %-5s  %-4s  %s\n", "----", "------", "-----", "-----", "----", "----")
	for i, r := range runs {
		done := "no"
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-4d  %-12s  %-7d  %-5d  %-4s  %s\n",
			i+1, r.Player, r.Score, r.Stars, done, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
