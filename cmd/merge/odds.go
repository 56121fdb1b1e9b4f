package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
)

var (
	flagMaxTier int
	flagActive  int
	flagStreak  int
)

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Print the spawn distribution for a board state",
	Long: `Print which fruit the top slot delivers, given the largest fruit
reached so far, the number of fruit in play and the number of drops
since the last merge. Honors --config and --difficulty.

Examples:
  merge odds
  merge odds --max-tier 6
  merge odds --max-tier 4 --active 25 --streak 5 --difficulty easy`,
	Run: runOdds,
}

func init() {
	oddsCmd.Flags().IntVar(&flagMaxTier, "max-tier", 0, "Largest tier reached")
	oddsCmd.Flags().IntVar(&flagActive, "active", 0, "Fruit in play")
	oddsCmd.Flags().IntVar(&flagStreak, "streak", 0, "Drops since the last merge")
}

func runOdds(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := fruitmerge.LoadConfig(flagConfig, preset, logger)

	if flagMaxTier < 0 || flagMaxTier >= len(cfg.Tiers) {
		fmt.Fprintf(os.Stderr, "Error: --max-tier must be in [0, %d]\n", len(cfg.Tiers)-1)
		os.Exit(1)
	}

	// Weights never draw, the source only satisfies the constructor
	spawn := engine.NewSpawnEngine(cfg.Probability, len(cfg.Tiers), rand.New(rand.NewSource(0)))
	weights, matched := spawn.Weights(engine.Tier(flagMaxTier), flagActive, flagStreak)
	probs := engine.Normalize(slices.Clone(weights))

	printOdds(os.Stdout, cfg.Tiers, weights, probs)
	if !matched {
		fmt.Println()
		fmt.Println("No probability band applies, every spawn is the smallest fruit.")
	}
}

// printOdds writes one line per spawnable tier.
func printOdds(w io.Writer, tiers []config.TierConfig, weights, probs []float64) {
	fmt.Fprintf(w, "Spawn odds (max tier %d, %d in play, %d drops without merge, %s)\n\n",
		flagMaxTier, flagActive, flagStreak, preset)
	fmt.Fprintf(w, "  %-2s  %-12s  %7s  %6s\n", "#", "Fruit", "Weight", "Odds")
	for t, p := range probs {
		name := fmt.Sprintf("tier %d", t)
		if t < len(tiers) && tiers[t].Name != "" {
			name = tiers[t].Name
		}
		fmt.Fprintf(w, "  %-2d  %-12s  %7.3f  %5.1f%%  %s\n",
			t, name, weights[t], p*100, strings.Repeat("█", int(p*40+0.5)))
	}
}
