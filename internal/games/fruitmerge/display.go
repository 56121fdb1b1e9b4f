package fruitmerge

import (
	"math"

	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
)

// countUpSpeed controls how fast the shown score catches up.
const countUpSpeed = 100.0

// ScoreDisplay is the presenter the game renders from. The shown score
// counts up toward the real one instead of jumping.
type ScoreDisplay struct {
	target int
	shown  int
	next   engine.Tier
	over   bool
	final  int
}

// OnScoreChanged implements engine.Presenter.
func (d *ScoreDisplay) OnScoreChanged(score int) {
	d.target = score
	if score < d.shown {
		d.shown = score
	}
}

// OnNextPiecePreview implements engine.Presenter.
func (d *ScoreDisplay) OnNextPiecePreview(tier engine.Tier) {
	d.next = tier
}

// OnGameOver implements engine.Presenter.
func (d *ScoreDisplay) OnGameOver(finalScore int) {
	d.over = true
	d.final = finalScore
}

// Tick advances the count-up by dt seconds.
func (d *ScoreDisplay) Tick(dt float64) {
	if d.shown >= d.target {
		return
	}
	diff := float64(d.target - d.shown)
	inc := max(1, int(math.Ceil(diff*dt*countUpSpeed/10)))
	d.shown = min(d.target, d.shown+inc)
}

// Shown returns the score to draw.
func (d *ScoreDisplay) Shown() int { return d.shown }

// Next returns the last previewed tier.
func (d *ScoreDisplay) Next() engine.Tier { return d.next }

// Over reports whether game over was announced.
func (d *ScoreDisplay) Over() bool { return d.over }

// Final returns the announced final score.
func (d *ScoreDisplay) Final() int { return d.final }
