package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flatworld/internal/registry"
	"github.com/vovakirdan/flatworld/internal/storage"
)

var flagScoresAll bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show best results for a board",
	Long: `Display the top 10 results for the specified board (classic by default).
A result counts the roundies knocked off the world; fewer moves win ties.

Examples:
  flatworld scores
  flatworld scores flatworld_small
  flatworld scores --all`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show totals for every board instead")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresAll {
		if err := printAllStats(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		return
	}

	gameID := resolveVariant(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'flatworld list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := printTopResults(store, gameID, game.Title()); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
}

func printTopResults(store *storage.Store, gameID, title string) error {
	results, err := store.TopResults(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Results - %s\n", title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flatworld play %s' to set the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "Rank", "Lost", "Moves", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "----", "----", "-----", "----")

	for i, r := range results {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-6d  %s\n", i+1, r.Score, r.Moves, dateStr)
	}

	stats, err := store.GetVariantStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Boards: %d  Avg lost: %.1f  Avg moves: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.AvgMoves)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllVariantStats()
	if err != nil {
		return err
	}

	fmt.Println("All Boards")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	fmt.Printf("  %-18s  %-6s  %-4s  %-8s  %s\n", "Board", "Played", "Best", "Avg lost", "Last played")
	fmt.Printf("  %-18s  %-6s  %-4s  %-8s  %s\n", "-----", "------", "----", "--------", "-----------")

	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-18s  %-6d  %-4d  %-8.1f  %s\n",
			g.ID, stats.GamesCount, stats.HighScore, stats.AvgScore,
			stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
