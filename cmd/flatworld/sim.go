package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flatworld/internal/config"
	"github.com/vovakirdan/flatworld/internal/games/flatworld"
	"github.com/vovakirdan/flatworld/internal/storage"
)

var (
	flagMaxMoves int
	flagSimLog   string
	flagSimSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Play a board headlessly with random flicks",
	Long: `Deal a board and keep flicking a random unhappy roundy until nothing can
move. Every chain reaction completes instantly. The reserved roundy is added
once the board first settles. The final board is printed with '.' for an
empty cell, 'o' for a happy roundy and 'x' for an unhappy one.

Examples:
  flatworld sim
  flatworld sim flatworld_large --seed 7
  flatworld sim --max-moves 3 --log-level debug
  flatworld sim --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop after this many flicks (0 = until settled)")
	simCmd.Flags().StringVar(&flagSimLog, "log-level", "info", "Log level: debug, info, warn, error")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the result in the results database")
}

func runSim(_ *cobra.Command, args []string) {
	gameID := resolveVariant(args)
	variant, ok := flatworld.VariantOf(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		os.Exit(1)
	}

	cfg, err := config.LoadFlatworld(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	board, err := cfg.BoardFor(variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(flagSimLog, "sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res, err := flatworld.Simulate(flatworld.SimOptions{
		Board:    board,
		Seed:     seed,
		MaxMoves: flagMaxMoves,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(res.Final.String())
	fmt.Println()
	fmt.Printf("Board: %s  Seed: %d\n", gameID, seed)
	fmt.Printf("Moves: %d  Lost: %d  Left: %d  Unhappy: %d\n",
		res.Moves, res.Lost, len(res.Final.Tokens), res.Final.Unhappy())
	if !res.Settled {
		fmt.Println("Stopped before the board settled.")
	}

	if !flagSimSave || res.Moves == 0 {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveResult(storage.Result{
		Variant: gameID,
		Score:   res.Lost,
		Moves:   res.Moves,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
		return
	}
	fmt.Printf("Saved result #%d\n", id)
}
