package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntrubin/skycatch/internal/game"
	"github.com/ntrubin/skycatch/internal/leaderboard"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show the high-score tables",
	Long: `Display the top five scores, either for one difficulty or for all.

Examples:
  skycatch scores
  skycatch scores hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	tiers := game.Tiers
	if len(args) == 1 {
		tier, err := game.ParseTier(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		tiers = []game.Tier{tier}
	}

	board, err := leaderboard.Open(flagScoresDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores directory: %v\n", err)
		os.Exit(1)
	}

	for i, tier := range tiers {
		if i > 0 {
			fmt.Println()
		}
		printTier(board, tier)
	}
}

func printTier(board *leaderboard.Board, tier game.Tier) {
	fmt.Printf("High Scores - %s\n", tier)
	fmt.Println()

	entries := board.Top(tier)
	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Score")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "-----")
	for i, entry := range entries {
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, entry.Username, entry.Score)
	}
}
