package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
)

// fakeBody is a body that only records what the simulation asks of it.
type fakeBody struct {
	id       PieceID
	pos      core.Vec2
	radius   float64
	dynamic  bool
	impulses []core.Vec2
}

func (b *fakeBody) ID() PieceID                { return b.id }
func (b *fakeBody) Position() core.Vec2        { return b.pos }
func (b *fakeBody) SetPosition(p core.Vec2)    { b.pos = p }
func (b *fakeBody) BoundingRadius() float64    { return b.radius }
func (b *fakeBody) ApplyImpulse(imp core.Vec2) { b.impulses = append(b.impulses, imp) }
func (b *fakeBody) SetDynamic(d bool)          { b.dynamic = d }

// fakeBackend never moves anything. Tests queue collisions by hand.
type fakeBackend struct {
	bodies    map[PieceID]*fakeBody
	order     []PieceID
	queued    []Collision
	destroyed []PieceID
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{bodies: make(map[PieceID]*fakeBody)}
}

func (f *fakeBackend) CreateBody(def BodyDef) Body {
	b := &fakeBody{id: def.ID, pos: def.Position, radius: def.Radius, dynamic: def.Dynamic}
	f.bodies[def.ID] = b
	f.order = append(f.order, def.ID)
	return b
}

func (f *fakeBackend) DestroyBody(id PieceID) {
	delete(f.bodies, id)
	f.destroyed = append(f.destroyed, id)
}

func (f *fakeBackend) QueryRadius(center core.Vec2, radius float64) []Body {
	var out []Body
	for _, id := range f.order {
		b, ok := f.bodies[id]
		if !ok {
			continue
		}
		if b.pos.Dist(center) < radius+b.radius {
			out = append(out, b)
		}
	}
	return out
}

func (f *fakeBackend) Step(float64) []Collision {
	out := f.queued
	f.queued = nil
	return out
}

// recordingPresenter captures presenter callbacks.
type recordingPresenter struct {
	scores   []int
	previews []Tier
	gameOver []int
}

func (r *recordingPresenter) OnScoreChanged(score int)     { r.scores = append(r.scores, score) }
func (r *recordingPresenter) OnNextPiecePreview(tier Tier) { r.previews = append(r.previews, tier) }
func (r *recordingPresenter) OnGameOver(finalScore int)    { r.gameOver = append(r.gameOver, finalScore) }

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// threeTierConfig is the Cherry/Strawberry/Grape ladder with only tier 0 spawning.
func threeTierConfig() config.MergeConfig {
	cfg := config.DefaultMergeConfig()
	cfg.Tiers = []config.TierConfig{
		{Name: "Cherry", Radius: 0.25, Mass: 1, Score: 1, PushStrength: 1, ExplosionRadiusMultiplier: 2, ExplosionForce: 1.5},
		{Name: "Strawberry", Radius: 0.33, Mass: 1.2, Score: 3, PushStrength: 1.2, ExplosionRadiusMultiplier: 2, ExplosionForce: 1.8},
		{Name: "Grape", Radius: 0.42, Mass: 1.5, Score: 6, PushStrength: 1.4, ExplosionRadiusMultiplier: 2, ExplosionForce: 2.1},
	}
	cfg.Probability = nil
	return cfg
}

func newTestSession(cfg config.MergeConfig) (*Session, *fakeBackend, *recordingPresenter) {
	backend := newFakeBackend()
	presenter := &recordingPresenter{}
	s := NewSession(cfg, backend, presenter, quietLogger(), rand.New(rand.NewSource(1)))
	return s, backend, presenter
}

// place puts an already active piece on the board, bypassing the top slot.
func place(s *Session, tier Tier, pos core.Vec2) *Piece {
	spec, _ := s.tiers.SpecFor(tier)
	p := s.pieces.create(s.backend, tier, spec, pos, true)
	p.activate(s.cfg.Timing.GracePeriod)
	s.board.setActivePieces(s.pieces.len())
	return p
}
