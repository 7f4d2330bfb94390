package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-duel/internal/storage"
)

var flagPilot string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent match results",
	Long: `Display the most recent match results, newest first.

With --pilot, also shows that pilot's overall win/loss/tie record.

Examples:
  duel history
  duel history --pilot gunner`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagPilot, "pilot", "", "Show win/loss/tie record for a pilot")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	records, err := store.RecentMatches(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent matches")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'duel fight gunner dodger' to record the first match!")
	} else {
		fmt.Printf("  %-12s  %-12s  %-8s  %-6s  %s\n", "Left", "Right", "Result", "Ticks", "Date")
		fmt.Printf("  %-12s  %-12s  %-8s  %-6s  %s\n", "----", "-----", "------", "-----", "----")

		for _, rec := range records {
			result := rec.Outcome
			if rec.Winner != "" {
				result = rec.Winner
			}
			dateStr := rec.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-12s  %-12s  %-8s  %-6d  %s\n",
				rec.LeftPilot, rec.RightPilot, result, rec.Ticks, dateStr)
		}
	}

	if flagPilot != "" {
		stats, err := store.Stats(flagPilot)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Printf("%s: %d wins, %d losses, %d ties\n",
			stats.Pilot, stats.Wins, stats.Losses, stats.Ties)
	}
}
