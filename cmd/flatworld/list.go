package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flatworld/internal/config"
	"github.com/vovakirdan/flatworld/internal/games/flatworld"
	"github.com/vovakirdan/flatworld/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every registered board variant with its size.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	cfg, err := config.LoadFlatworld(flagConfig)
	if err != nil {
		cfg = config.DefaultFlatworldConfig()
	}

	fmt.Println("Available boards:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-8s  %s\n", maxIDLen, "ID", "Grid", "Roundies", "Title")
	fmt.Printf("  %-*s  %-7s  %-8s  %s\n", maxIDLen, "--", "----", "--------", "-----")

	for _, g := range games {
		grid, roundies := "?", "?"
		variant, _ := flatworld.VariantOf(g.ID)
		if board, boardErr := cfg.BoardFor(variant); boardErr == nil {
			grid = fmt.Sprintf("%dx%d", board.GridSize, board.GridSize)
			roundies = fmt.Sprintf("%d", board.TokenCount)
		}
		fmt.Printf("  %-*s  %-7s  %-8s  %s\n", maxIDLen, g.ID, grid, roundies, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'flatworld play <id>' to play a board.")
}
