package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
)

func TestNewSessionFillsSlot(t *testing.T) {
	s, backend, presenter := newTestSession(threeTierConfig())

	held := s.Held()
	if held == nil {
		t.Fatal("Held() = nil, expected a piece in the top slot")
	}
	if held.Tier != 0 || held.State != StateSpawning || held.MergeEligible {
		t.Errorf("held piece = %+v, expected ineligible tier 0 in Spawning", held)
	}
	if backend.bodies[held.ID].dynamic {
		t.Error("held piece should be kinematic")
	}
	if len(presenter.previews) != 1 || presenter.previews[0] != 0 {
		t.Errorf("previews = %v, expected one preview of tier 0", presenter.previews)
	}
	if len(presenter.scores) != 1 || presenter.scores[0] != 0 {
		t.Errorf("scores = %v, expected initial score 0", presenter.scores)
	}
	if s.Board().ActivePieces() != 1 {
		t.Errorf("ActivePieces() = %d, expected the held piece to count", s.Board().ActivePieces())
	}
}

func TestDropAndCooldown(t *testing.T) {
	s, backend, _ := newTestSession(threeTierConfig())
	held := s.Held()

	if !s.Drop() {
		t.Fatal("Drop() = false with a held piece")
	}
	if s.Drop() {
		t.Error("second Drop() during cooldown should fail")
	}
	if !backend.bodies[held.ID].dynamic || held.State != StateFalling {
		t.Error("dropped piece should be dynamic and falling")
	}
	if s.Board().NoMergeStreak() != 1 || s.Board().Drops() != 1 {
		t.Errorf("streak=%d drops=%d, expected 1 and 1", s.Board().NoMergeStreak(), s.Board().Drops())
	}

	for i := range 3 {
		if r := s.Step(0.25); r.Spawned {
			t.Fatalf("spawned during cooldown at step %d", i)
		}
	}
	if r := s.Step(0.25); !r.Spawned || s.Held() == nil {
		t.Fatal("expected a new held piece once the cooldown elapsed")
	}
	if s.Held().ID == held.ID {
		t.Error("the new held piece must be a new piece")
	}
}

func TestSettleAndGraceCountdowns(t *testing.T) {
	s, _, _ := newTestSession(threeTierConfig())
	p := s.Held()
	s.Drop()

	s.Step(0.1)
	if p.MergeEligible {
		t.Fatal("piece became mergeable before the settle delay")
	}
	s.Step(0.15)
	if !p.MergeEligible || p.State != StateActive {
		t.Fatal("piece should be active after the settle delay")
	}
	if p.GameOverEligible {
		t.Fatal("grace period should not have elapsed yet")
	}
	for range 8 {
		s.Step(0.25)
	}
	if !p.GameOverEligible {
		t.Error("piece should count toward game over after the grace period")
	}
}

func TestStreakResetOnMerge(t *testing.T) {
	s, backend, presenter := newTestSession(threeTierConfig())
	for i := range 3 {
		// Keep dropped cherries apart so none of them merge.
		s.MoveHeld(float64(i) + 0.5)
		s.Drop()
		for s.Held() == nil {
			s.Step(0.25)
		}
	}
	if s.Board().NoMergeStreak() != 3 {
		t.Fatalf("NoMergeStreak() = %d, expected 3", s.Board().NoMergeStreak())
	}

	a := place(s, 0, core.V(-2, 0.25))
	b := place(s, 0, core.V(-1.5, 0.25))
	backend.queued = []Collision{{A: b.ID, B: a.ID}}

	r := s.Step(1.0 / 60)
	if len(r.Merges) != 1 {
		t.Fatalf("Step() merges = %d, expected 1", len(r.Merges))
	}
	if s.Board().NoMergeStreak() != 0 {
		t.Errorf("NoMergeStreak() = %d after merge, expected 0", s.Board().NoMergeStreak())
	}
	if last := presenter.scores[len(presenter.scores)-1]; last != 1 {
		t.Errorf("last score notification = %d, expected 1", last)
	}
}

func TestActivationMergesRestingContact(t *testing.T) {
	s, _, _ := newTestSession(threeTierConfig())
	resting := place(s, 0, core.V(0.5, 2))

	dropped := s.Held()
	s.Drop()
	dropped.Body.SetPosition(core.V(0, 2))

	r := s.Step(0.25)
	if len(r.Merges) != 1 {
		t.Fatalf("Step() merges = %d, expected the resting contact to merge on activation", len(r.Merges))
	}
	if _, alive := s.Piece(resting.ID); alive {
		t.Error("resting partner should be consumed")
	}
}

func TestDeadlineEndsSession(t *testing.T) {
	s, _, presenter := newTestSession(threeTierConfig())
	place(s, 0, core.V(0, s.Config().Deadline.Height))

	over := false
	for range 40 {
		if s.Step(0.5).GameOver {
			over = true
			break
		}
	}
	if !over || !s.GameOver() {
		t.Fatal("piece parked in the deadline zone should end the session")
	}
	if len(presenter.gameOver) != 1 {
		t.Errorf("OnGameOver called %d times, expected 1", len(presenter.gameOver))
	}

	ticks := s.Ticks()
	if r := s.Step(0.5); r.GameOver || len(r.Merges) > 0 || s.Ticks() != ticks {
		t.Error("Step() after game over should do nothing")
	}
	if s.Drop() || s.MoveHeld(1) {
		t.Error("input after game over should be ignored")
	}
	if len(presenter.gameOver) != 1 {
		t.Error("game over must be reported once")
	}
}

func TestMoveHeldClamped(t *testing.T) {
	s, _, _ := newTestSession(threeTierConfig())
	r := s.Held().Radius()
	halfWidth := s.Config().Container.Width / 2

	s.Nudge(1000)
	if !near(s.HeldX(), halfWidth-r) {
		t.Errorf("HeldX() = %v, expected %v", s.HeldX(), halfWidth-r)
	}
	s.MoveHeld(-1000)
	if !near(s.Held().Position().X, -(halfWidth - r)) {
		t.Errorf("held x = %v, expected %v", s.Held().Position().X, -(halfWidth - r))
	}
	if s.Held().Position().Y != s.Config().Spawn.Height {
		t.Error("moving must keep the held piece at spawn height")
	}
}

func TestSpawnAbortedWithoutSpec(t *testing.T) {
	cfg := threeTierConfig()
	cfg.Tiers[1].Radius = 0
	cfg.Probability = &config.ProbabilityConfig{
		Sets: []config.ProbabilitySet{{MaxLevelThreshold: 10, Probabilities: []float64{0, 1}}},
	}
	s, backend, presenter := newTestSession(cfg)

	if s.Held() != nil {
		t.Fatal("a tier without a spec must not be spawned")
	}
	if len(presenter.previews) != 1 || presenter.previews[0] != s.NextTier() {
		t.Errorf("previews = %v, expected the resampled tier %d", presenter.previews, s.NextTier())
	}
	if len(backend.bodies) != 0 {
		t.Errorf("backend has %d bodies, expected none", len(backend.bodies))
	}
	for range 10 {
		s.Step(0.5)
	}
	if s.GameOver() || s.Held() != nil {
		t.Error("session should stay steppable without spawning")
	}
	if last := presenter.previews[len(presenter.previews)-1]; last != s.NextTier() {
		t.Errorf("last preview = %d, session next is %d", last, s.NextTier())
	}
	if len(presenter.previews) < 2 {
		t.Errorf("previews = %v, expected one per aborted spawn", presenter.previews)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() Snapshot {
		cfg := config.DefaultMergeConfig()
		s := NewSession(cfg, newFakeBackend(), nil, quietLogger(), rand.New(rand.NewSource(99)))
		for i := range 300 {
			if i%7 == 0 {
				s.Nudge(i%3 - 1)
				s.Drop()
			}
			s.Step(1.0 / 60)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Drops == 0 || len(a.Pieces) == 0 {
		t.Error("run should have dropped pieces")
	}
}
