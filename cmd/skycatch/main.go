// skycatch is a terminal catch-the-falling-objects game.
//
// Usage:
//
//	skycatch play                - Pick a difficulty and play
//	skycatch play -d hard        - Play a specific difficulty directly
//	skycatch scores              - Show the high-score tables
//	skycatch serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--scores-dir <path>   - Directory for score files (default: ~/.skycatch/scores)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagScoresDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skycatch",
	Short: "Skycatch - Catch falling objects in your terminal",
	Long: `Skycatch is a terminal arcade game: move the paddle to catch objects
falling from the sky. Miss three and the run is over. The top five scores
for each difficulty are kept on a shared leaderboard.

Available commands:
  play     - Play (interactive difficulty picker, or -d to choose directly)
  scores   - View the high-score tables
  serve    - Start SSH server for remote play

Examples:
  skycatch play
  skycatch play --difficulty hard
  skycatch scores medium
  skycatch serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagScoresDir, "scores-dir", "~/.skycatch/scores", "Directory for score files")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
