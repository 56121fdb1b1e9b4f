package engine

import "github.com/vovakirdan/tui-merge/internal/core"

// PieceState is the lifecycle stage of a piece.
type PieceState int

const (
	StateSpawning PieceState = iota // Held in the spawn slot, kinematic
	StateFalling                    // Dropped, waiting out the settle delay
	StateActive                     // Mergeable
	StateMerged                     // Consumed by a merge, terminal
)

// String returns the lowercase state name.
func (s PieceState) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateFalling:
		return "falling"
	case StateActive:
		return "active"
	case StateMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// Piece is a live game object. The session owns every piece.
type Piece struct {
	ID    PieceID
	Tier  Tier
	State PieceState
	Body  Body

	MergeEligible    bool
	GameOverEligible bool

	settleLeft float64 // Seconds until Falling -> Active
	graceLeft  float64 // Seconds until GameOverEligible
}

// Position returns the body position.
func (p *Piece) Position() core.Vec2 {
	return p.Body.Position()
}

// Radius returns the body radius.
func (p *Piece) Radius() float64 {
	return p.Body.BoundingRadius()
}

// drop releases a held piece into the world.
func (p *Piece) drop(settleDelay float64) {
	p.State = StateFalling
	p.MergeEligible = false
	p.settleLeft = settleDelay
	p.Body.SetDynamic(true)
}

// activate makes the piece mergeable and starts its grace countdown.
func (p *Piece) activate(grace float64) {
	p.State = StateActive
	p.MergeEligible = true
	p.graceLeft = grace
	if grace <= 0 {
		p.GameOverEligible = true
	}
}

// retire marks the piece as consumed by a merge.
func (p *Piece) retire() {
	p.State = StateMerged
	p.MergeEligible = false
	p.GameOverEligible = false
}

// advance runs the settle and grace countdowns by dt seconds of simulation time.
func (p *Piece) advance(dt, grace float64) {
	switch p.State {
	case StateFalling:
		p.settleLeft -= dt
		if p.settleLeft <= 0 {
			p.activate(grace)
		}
	case StateActive:
		if p.GameOverEligible {
			return
		}
		p.graceLeft -= dt
		if p.graceLeft <= 0 {
			p.GameOverEligible = true
		}
	}
}
