// merge is a falling-fruit merge puzzle for the terminal.
//
// Usage:
//
//	merge play [variant]     - Play a game
//	merge menu               - Start menu with difficulty picker and scores
//	merge list               - List difficulty variants
//	merge scores [variant]   - Show high scores
//	merge serve              - Start SSH server for remote play
//	merge sim                - Play seeded games with a bot and report statistics
//	merge odds               - Print the spawn distribution for a board state
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Log file for interactive play (default: ~/.arcade/merge.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string

	// preset is flagDifficulty after validation
	preset = config.DifficultyNormal
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "merge",
	Short: "Fruit Merge - drop and merge fruit in your terminal",
	Long: `Fruit Merge is a physics puzzle: drop fruit into a container,
two of the same kind merge into the next larger one. Keep the pile
below the deadline.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu with difficulty picker and scores
  list     - Show the difficulty variants
  scores   - View high scores
  serve    - Start SSH server for remote play
  sim      - Run seeded bot games and report statistics
  odds     - Print the spawn distribution for a board state

Examples:
  merge play
  merge play --difficulty hard
  merge menu
  merge serve --ssh :2222
  merge sim --runs 200 --workers 8
  merge odds --max-tier 6 --active 20`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/merge.log", "Log file for interactive play")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(oddsCmd)
}

// setup validates the global flags and points the game at the config file.
func setup(_ *cobra.Command, _ []string) error {
	preset = config.ParsePreset(flagDifficulty)
	if preset == "" {
		return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	fruitmerge.SetConfigPath(flagConfig)
	return nil
}
