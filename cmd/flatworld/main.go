// flatworld is a terminal puzzle about roundies knocking each other off a flat world.
//
// Usage:
//
//	flatworld list               - List board variants
//	flatworld play [variant]     - Play a board (classic by default)
//	flatworld menu               - Pick a board interactively
//	flatworld serve              - Start SSH server for remote play
//	flatworld scores [variant]   - Show best results
//	flatworld sim [variant]      - Play a board headlessly with random flicks
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible boards
//	--db <path>      - Set database path (default: ~/.flatworld/results.db)
//	--config <path>  - Use a custom flatworld.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flatworld/internal/games/flatworld"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flatworld",
	Short: "Flatworld - flick roundies off a flat world in your terminal",
	Long: `Flatworld is a grid puzzle played in the terminal.

Roundies that share a row, column or diagonal are unhappy. Flick one and it
rolls into its closest neighbour, passing the push along the line until the
last roundy falls off the edge of the world.

Available commands:
  list     - Show all board variants
  play     - Play a board directly
  menu     - Interactive board picker
  serve    - Start SSH server for remote play
  scores   - View best results
  sim      - Headless run for testing boards

Examples:
  flatworld list
  flatworld play
  flatworld play flatworld_small
  flatworld menu
  flatworld serve --ssh :2222
  flatworld sim --seed 42`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		flatworld.SetConfigPath(flagConfig)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flatworld/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom flatworld.yaml")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// resolveVariant returns the registered id for args, defaulting to the classic board.
func resolveVariant(args []string) string {
	if len(args) == 0 {
		return flatworld.IDClassic
	}
	return args[0]
}
