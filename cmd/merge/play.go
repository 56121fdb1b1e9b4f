package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge"
	"github.com/vovakirdan/tui-merge/internal/platform/tui"
	"github.com/vovakirdan/tui-merge/internal/registry"
	"github.com/vovakirdan/tui-merge/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing. The variant defaults to the --difficulty preset.

Controls:
  Left/Right/A/D  - Move the held fruit
  Space/Down      - Drop
  F               - Fast forward
  P/Esc           - Pause
  R               - Restart (after game over)
  Ctrl+S          - Screenshot
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Longer deadline, small fruit helps earlier
  normal - As configured
  hard   - Short deadline, weaker help
  fixed  - Plain configured odds, no adjustments

Examples:
  merge play
  merge play merge_hard
  merge play --difficulty easy
  merge play --seed 42 --config ./my-merge.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := fruitmerge.VariantID(preset)
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'merge list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog := fileLogger(flagLogFile)
	defer closeLog()
	fruitmerge.SetLogger(logger)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Continue without storage, the game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		store = nil
	}

	logger.Info("game started", "game", gameID, "seed", flagSeed)
	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
