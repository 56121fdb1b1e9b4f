package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge"
)

var (
	flagRuns       int
	flagWorkers    int
	flagMaxSeconds float64
	flagThink      float64
	flagVerbose    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play seeded games with a bot and report statistics",
	Long: `Run headless games with a bot that drops each fruit at a random
position. Game i uses seed --seed+i, so a batch is reproducible and
does not depend on the worker count.

Reports mean and standard deviation of the score, mean duration and
merges, and how many games reached each fruit.

Examples:
  merge sim
  merge sim --runs 500 --workers 8 --seed 1
  merge sim --difficulty hard --max-seconds 300
  merge sim --config ./tuned.yaml --think 0.2`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 100, "Number of games")
	simCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Concurrent games")
	simCmd.Flags().Float64Var(&flagMaxSeconds, "max-seconds", 600, "Simulated time limit per game")
	simCmd.Flags().Float64Var(&flagThink, "think", 1.5, "Longest bot pause before a drop, in seconds")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log simulation events")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	if !flagVerbose {
		logger.SetLevel(log.ErrorLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := fruitmerge.LoadConfig(flagConfig, preset, logger)
	report, err := fruitmerge.Simulate(cfg, string(preset), fruitmerge.SimOptions{
		Runs:       flagRuns,
		Workers:    flagWorkers,
		Seed:       seed,
		MaxSeconds: flagMaxSeconds,
		TickRate:   flagFPS,
		MaxThink:   flagThink,
		Progress:   os.Stderr,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	over := 0
	for _, r := range report.Runs {
		if r.GameOver {
			over++
		}
	}

	fmt.Printf("Simulated %d games (%s, seeds %d..%d) in %s\n",
		len(report.Runs), preset, seed, seed+int64(len(report.Runs))-1, report.Used.Round(time.Millisecond))
	fmt.Println()
	fmt.Printf("  Score     %.1f ± %.1f\n", report.MeanScore, report.StdScore)
	fmt.Printf("  Duration  %.1f s\n", report.MeanDuration)
	fmt.Printf("  Merges    %.1f\n", report.MeanMerges)
	fmt.Printf("  Game over %d/%d (others hit the time limit)\n", over, len(report.Runs))
	fmt.Println()
	fmt.Println("Best fruit reached:")

	peak := 0
	for _, c := range report.TierCounts {
		peak = max(peak, c)
	}
	for t, c := range report.TierCounts {
		name := fmt.Sprintf("tier %d", t)
		if t < len(cfg.Tiers) && cfg.Tiers[t].Name != "" {
			name = cfg.Tiers[t].Name
		}
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", c*30/peak)
		}
		fmt.Printf("  %2d %-12s %5d  %s\n", t, name, c, bar)
	}
}
