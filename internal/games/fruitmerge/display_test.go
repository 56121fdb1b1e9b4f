package fruitmerge

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestScoreDisplayCountsUp(t *testing.T) {
	d := &ScoreDisplay{}
	d.OnScoreChanged(100)

	// diff 100, dt 1/60: ceil(100/60*100/10) = 17
	d.Tick(1.0 / 60)
	if d.Shown() != 17 {
		t.Errorf("Shown() = %d after one tick, expected 17", d.Shown())
	}

	for range 120 {
		d.Tick(1.0 / 60)
	}
	if d.Shown() != 100 {
		t.Errorf("Shown() = %d, expected to settle on 100", d.Shown())
	}
}

func TestScoreDisplayMinimumStep(t *testing.T) {
	d := &ScoreDisplay{}
	d.OnScoreChanged(2)

	d.Tick(1.0 / 60)
	if d.Shown() != 1 {
		t.Errorf("Shown() = %d, expected a step of at least 1", d.Shown())
	}
	d.Tick(1.0 / 60)
	d.Tick(1.0 / 60)
	if d.Shown() != 2 {
		t.Errorf("Shown() = %d, expected not to overshoot 2", d.Shown())
	}
}

func TestScoreDisplayDropsToLowerScore(t *testing.T) {
	d := &ScoreDisplay{}
	d.OnScoreChanged(50)
	for range 60 {
		d.Tick(1.0 / 60)
	}

	d.OnScoreChanged(0)
	if d.Shown() != 0 {
		t.Errorf("Shown() = %d after a reset, expected 0", d.Shown())
	}
}

func TestScoreDisplayPreviewAndGameOver(t *testing.T) {
	d := &ScoreDisplay{}
	d.OnNextPiecePreview(engine.Tier(3))
	d.OnGameOver(42)

	if d.Next() != 3 {
		t.Errorf("Next() = %d, expected 3", d.Next())
	}
	if !d.Over() || d.Final() != 42 {
		t.Errorf("Over() = %v, Final() = %d, expected true and 42", d.Over(), d.Final())
	}
}
