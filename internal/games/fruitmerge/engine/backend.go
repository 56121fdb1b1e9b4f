package engine

import "github.com/vovakirdan/tui-merge/internal/core"

// PieceID identifies a piece and its body. IDs are handed out in increasing
// order and never reused within a session.
type PieceID uint64

// Body is the physics-side handle of a piece.
type Body interface {
	ID() PieceID
	Position() core.Vec2
	SetPosition(p core.Vec2)
	BoundingRadius() float64
	ApplyImpulse(impulse core.Vec2)
	// SetDynamic switches between simulated (true) and kinematic (false).
	SetDynamic(dynamic bool)
}

// BodyDef describes a body to create.
type BodyDef struct {
	ID       PieceID
	Position core.Vec2
	Radius   float64
	Mass     float64
	Dynamic  bool
}

// Collision is a contact that began during the last backend step.
// Each contact is reported once; the session delivers both perspectives.
type Collision struct {
	A, B PieceID
}

// Backend is the physics world the simulation drives.
type Backend interface {
	CreateBody(def BodyDef) Body
	DestroyBody(id PieceID)
	// QueryRadius returns bodies whose circles intersect the query circle,
	// in a stable order.
	QueryRadius(center core.Vec2, radius float64) []Body
	Step(dt float64) []Collision
}

// Presenter receives the user-visible consequences of the simulation.
type Presenter interface {
	OnScoreChanged(score int)
	OnNextPiecePreview(tier Tier)
	OnGameOver(finalScore int)
}

// NopPresenter ignores every notification.
type NopPresenter struct{}

func (NopPresenter) OnScoreChanged(int)      {}
func (NopPresenter) OnNextPiecePreview(Tier) {}
func (NopPresenter) OnGameOver(int)          {}
