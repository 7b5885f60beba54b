package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ntrubin/skycatch/internal/config"
	"github.com/ntrubin/skycatch/internal/core"
	"github.com/ntrubin/skycatch/internal/game"
	"github.com/ntrubin/skycatch/internal/leaderboard"
	"github.com/ntrubin/skycatch/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start a game. Without --difficulty an interactive picker is shown;
after a run ends you return to the picker to play again.

Controls:
  A/D, arrows, H/L  - Move paddle
  P                 - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Examples:
  skycatch play
  skycatch play --difficulty hard
  skycatch play -d easy --name alice
  skycatch play --config ./my-skycatch.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "Difficulty: easy, medium, hard")
	playCmd.Flags().StringVar(&flagName, "name", "", "Name to record scores under")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	board, err := leaderboard.Open(flagScoresDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores directory: %v\n", err)
		os.Exit(1)
	}

	// Terminal size, with a fallback for non-terminal stdout.
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Direct play when a difficulty is given.
	if flagDifficulty != "" {
		tier, parseErr := game.ParseTier(flagDifficulty)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			os.Exit(1)
		}
		if runErr := tui.Run(board, gameCfg, runtime, tier, flagName); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Menu loop: picker -> game -> picker, until the user quits.
	for {
		result, menuErr := tui.RunMenu(board, runtime.ScreenW, runtime.ScreenH)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			return
		}

		if result.Quit {
			return
		}

		if result.WantScores {
			if sbErr := tui.RunScoreboard(board, game.TierEasy, runtime.ScreenW, runtime.ScreenH); sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			continue
		}

		if result.Tier == nil {
			return
		}

		runtime.Seed = time.Now().UnixNano()
		if runErr := tui.Run(board, gameCfg, runtime, *result.Tier, flagName); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
	}
}
