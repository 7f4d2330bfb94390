// duel is a TUI platform for watching scripted robot duels in the terminal.
//
// Usage:
//
//	duel list                    - List available pilots
//	duel fight <left> <right>    - Run a duel between two pilots
//	duel history                 - Show recent match results
//	duel serve                   - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Reserved for randomized placements
//	--db <path>     - Set database path (default: ~/.duel/matches.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import pilots to register them
	_ "github.com/vovakirdan/tui-duel/internal/pilots"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duel",
	Short: "TUI Duel - Scripted robot combat in your terminal",
	Long: `TUI Duel is a terminal-based combat simulator where two autonomous
robots move, shoot, and destroy one another inside a bounded arena.

Pilots are either built-in behaviors or user-authored JavaScript scripts
that implement a think(self, environment) function.

Available commands:
  list     - Show all built-in pilots
  fight    - Run a duel between two pilots
  history  - View recent match results
  serve    - Start SSH server for remote viewing

Examples:
  duel list
  duel fight gunner dodger
  duel fight sniper idle --headless
  duel fight gunner gunner --right-script my_pilot.js
  duel serve --ssh :2222
  duel history --pilot gunner`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Reserved for randomized placements")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duel/matches.db", "Path to match history database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fightCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
