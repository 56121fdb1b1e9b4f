package engine

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
)

// StepReport summarizes one simulation step.
type StepReport struct {
	Merges   []MergeResult
	Spawned  bool // A new piece entered the top slot
	GameOver bool // The deadline tripped during this step
}

// Session owns one game: the ladder, the board, the spawn engine, the
// deadline monitor and every live piece.
type Session struct {
	cfg       config.MergeConfig
	tiers     *TierTable
	board     *BoardState
	spawner   *SpawnEngine
	deadline  *DeadlineMonitor
	coord     *MergeCoordinator
	pieces    *pieceSet
	backend   Backend
	presenter Presenter
	logger    *log.Logger

	held     *Piece
	heldX    float64
	next     Tier
	cooldown float64
	elapsed  float64
	ticks    uint64
	gameOver bool
}

// NewSession creates a session and fills the top slot.
// cfg is expected to be sanitized; a nil presenter is replaced with NopPresenter.
func NewSession(cfg config.MergeConfig, backend Backend, presenter Presenter, logger *log.Logger, rng *rand.Rand) *Session {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	halfWidth := cfg.Container.Width / 2

	s := &Session{
		cfg:       cfg,
		tiers:     NewTierTable(cfg.Tiers),
		board:     &BoardState{},
		pieces:    newPieceSet(),
		backend:   backend,
		presenter: presenter,
		logger:    logger,
	}
	s.spawner = NewSpawnEngine(cfg.Probability, s.tiers.Count(), rng)
	s.deadline = NewDeadlineMonitor(
		core.NewBox(core.V(0, cfg.Deadline.Height), halfWidth, cfg.Deadline.Thickness/2),
		cfg.Deadline.DwellSeconds,
	)
	s.coord = &MergeCoordinator{
		tiers:     s.tiers,
		board:     s.board,
		backend:   backend,
		pieces:    s.pieces,
		halfWidth: halfWidth,
		grace:     cfg.Timing.GracePeriod,
		logger:    logger,
		missing:   make(map[Tier]bool),
	}

	s.next = s.sampleNext()
	s.spawnHeld()
	s.presenter.OnScoreChanged(0)
	return s
}

// Step advances the simulation by dt seconds. After game over it does nothing.
func (s *Session) Step(dt float64) StepReport {
	var report StepReport
	if s.gameOver || dt <= 0 {
		return report
	}
	s.ticks++
	s.elapsed += dt

	for _, col := range s.backend.Step(dt) {
		if res, ok := s.coord.Resolve(col); ok {
			report.Merges = append(report.Merges, res)
		}
	}

	var activated []*Piece
	for _, p := range s.pieces.list() {
		was := p.State
		p.advance(dt, s.cfg.Timing.GracePeriod)
		if was == StateFalling && p.State == StateActive {
			activated = append(activated, p)
		}
	}
	for _, p := range activated {
		if _, alive := s.pieces.get(p.ID); !alive {
			continue
		}
		for _, col := range s.coord.touching(p) {
			if res, ok := s.coord.Resolve(col); ok {
				report.Merges = append(report.Merges, res)
				break
			}
		}
	}

	for _, m := range report.Merges {
		s.logger.Debug("merge", "from", int(m.From), "into", int(m.Into), "awarded", m.Awarded, "pushed", len(m.Impulses))
	}
	if len(report.Merges) > 0 {
		s.presenter.OnScoreChanged(s.board.Score())
	}

	if s.held == nil {
		s.cooldown -= dt
		if s.cooldown <= 0 {
			report.Spawned = s.spawnHeld()
		}
	}
	s.board.setActivePieces(s.pieces.len())

	occupied := false
	for _, p := range s.pieces.list() {
		if p.GameOverEligible && s.deadline.Overlaps(p.Position(), p.Radius()) {
			occupied = true
			break
		}
	}
	if s.deadline.Update(dt, occupied) {
		s.gameOver = true
		report.GameOver = true
		s.logger.Info("game over", "score", s.board.Score(), "max_tier", int(s.board.MaxTierReached()), "elapsed", s.elapsed)
		s.presenter.OnGameOver(s.board.Score())
	}

	return report
}

// MoveHeld moves the held piece horizontally, clamped inside the container.
func (s *Session) MoveHeld(x float64) bool {
	if s.held == nil || s.gameOver {
		return false
	}
	s.heldX = s.clampX(x, s.held.Radius())
	s.held.Body.SetPosition(core.V(s.heldX, s.cfg.Spawn.Height))
	return true
}

// Nudge moves the held piece by steps nudges (negative moves left).
func (s *Session) Nudge(steps int) bool {
	if s.held == nil {
		return false
	}
	return s.MoveHeld(s.heldX + float64(steps)*s.cfg.Spawn.Nudge)
}

// Drop releases the held piece and starts the spawn cooldown.
func (s *Session) Drop() bool {
	if s.held == nil || s.gameOver {
		return false
	}
	s.held.drop(s.cfg.Timing.SettleDelay)
	s.board.recordDrop()
	s.held = nil
	s.cooldown = s.cfg.Spawn.Cooldown
	return true
}

// spawnHeld fills the top slot with the previewed tier and samples a new preview.
func (s *Session) spawnHeld() bool {
	tier := s.next
	spec, ok := s.tiers.SpecFor(tier)
	if !ok {
		s.coord.reportMissing(tier)
		s.next = s.sampleNext()
		s.presenter.OnNextPiecePreview(s.next)
		s.cooldown = s.cfg.Spawn.Cooldown
		return false
	}

	s.heldX = s.clampX(s.heldX, spec.Radius)
	p := s.pieces.create(s.backend, tier, spec, core.V(s.heldX, s.cfg.Spawn.Height), false)
	p.State = StateSpawning
	s.held = p
	s.board.setActivePieces(s.pieces.len())

	s.next = s.sampleNext()
	s.presenter.OnNextPiecePreview(s.next)
	return true
}

func (s *Session) sampleNext() Tier {
	return s.spawner.Sample(s.board.MaxTierReached(), s.pieces.len(), s.board.NoMergeStreak())
}

func (s *Session) clampX(x, radius float64) float64 {
	limit := max(0, s.cfg.Container.Width/2-radius)
	return core.ClampF(x, -limit, limit)
}

// Held returns the piece waiting in the top slot, or nil during the cooldown.
func (s *Session) Held() *Piece { return s.held }

// HeldX returns the horizontal position of the top slot.
func (s *Session) HeldX() float64 { return s.heldX }

// NextTier returns the previewed tier.
func (s *Session) NextTier() Tier { return s.next }

// Pieces returns the live pieces in creation order, held piece included.
func (s *Session) Pieces() []*Piece { return s.pieces.list() }

// Piece looks up a live piece.
func (s *Session) Piece(id PieceID) (*Piece, bool) { return s.pieces.get(id) }

// Board returns the session counters.
func (s *Session) Board() *BoardState { return s.board }

// Tiers returns the ladder.
func (s *Session) Tiers() *TierTable { return s.tiers }

// Spawner returns the spawn engine.
func (s *Session) Spawner() *SpawnEngine { return s.spawner }

// Deadline returns the loss detector.
func (s *Session) Deadline() *DeadlineMonitor { return s.deadline }

// Coordinator returns the merge coordinator.
func (s *Session) Coordinator() *MergeCoordinator { return s.coord }

// Config returns the configuration the session runs with.
func (s *Session) Config() config.MergeConfig { return s.cfg }

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool { return s.gameOver }

// Elapsed returns simulated seconds since the session started.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Ticks returns the number of steps taken.
func (s *Session) Ticks() uint64 { return s.ticks }
