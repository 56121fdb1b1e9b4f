package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge"
	"github.com/vovakirdan/tui-merge/internal/registry"
	"github.com/vovakirdan/tui-merge/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 games for a variant. The variant defaults to
the --difficulty preset.

Examples:
  merge scores
  merge scores merge_hard
  merge scores --difficulty easy`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	gameID := fruitmerge.VariantID(preset)
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'merge list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	sessions, err := store.TopSessions(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'merge play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %-6s  %s\n", "Rank", "Score", "Best fruit", "Merges", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-12s  %-6s  %-6s  %s\n", "----", "-----", "----------", "------", "----", "----")

	for i, s := range sessions {
		fmt.Printf("  %-4d  %-8d  %-12s  %-6d  %-6s  %s\n",
			i+1, s.Score, s.MaxTierName, s.Merges, clock(s.Duration), s.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  |  Games: %d  |  Avg: %.0f  |  Avg merges: %.1f\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.AvgMerges)
	}
}

// clock renders seconds as m:ss.
func clock(secs float64) string {
	s := int(secs + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
