package engine

import "math"

// PieceSnapshot is the serializable state of one piece.
type PieceSnapshot struct {
	ID               uint64
	Tier             int
	State            int
	X, Y             float64
	MergeEligible    bool
	GameOverEligible bool
}

// Snapshot contains the session state for determinism tests and debugging.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick             uint64
	Elapsed          float64
	Score            int
	MaxTier          int
	NoMergeStreak    int
	ActivePieces     int
	Merges           int
	Drops            int
	NextTier         int
	HeldID           uint64 // 0 when the slot is empty
	HeldX            float64
	Cooldown         float64
	DeadlineOccupied float64
	GameOver         bool
	Pieces           []PieceSnapshot
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:             s.ticks,
		Elapsed:          s.elapsed,
		Score:            s.board.Score(),
		MaxTier:          int(s.board.MaxTierReached()),
		NoMergeStreak:    s.board.NoMergeStreak(),
		ActivePieces:     s.board.ActivePieces(),
		Merges:           s.board.Merges(),
		Drops:            s.board.Drops(),
		NextTier:         int(s.next),
		HeldX:            s.heldX,
		Cooldown:         s.cooldown,
		DeadlineOccupied: s.deadline.Occupied(),
		GameOver:         s.gameOver,
	}
	if s.held != nil {
		snap.HeldID = uint64(s.held.ID)
	}
	for _, p := range s.pieces.list() {
		pos := p.Position()
		snap.Pieces = append(snap.Pieces, PieceSnapshot{
			ID:               uint64(p.ID),
			Tier:             int(p.Tier),
			State:            int(p.State),
			X:                pos.X,
			Y:                pos.Y,
			MergeEligible:    p.MergeEligible,
			GameOverEligible: p.GameOverEligible,
		})
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + math.Float64bits(snap.Elapsed)
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MaxTier)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NoMergeStreak) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ActivePieces)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Merges)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Drops)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextTier)      //#nosec G115 -- hash computation
	h = h*31 + snap.HeldID
	h = h*31 + math.Float64bits(snap.HeldX)
	h = h*31 + math.Float64bits(snap.Cooldown)
	h = h*31 + math.Float64bits(snap.DeadlineOccupied)
	if snap.GameOver {
		h = h*31 + 1
	}

	for _, p := range snap.Pieces {
		h = h*31 + p.ID
		h = h*31 + uint64(p.Tier)  //#nosec G115 -- hash computation
		h = h*31 + uint64(p.State) //#nosec G115 -- hash computation
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + math.Float64bits(p.Y)
		if p.MergeEligible {
			h = h*31 + 1
		}
		if p.GameOverEligible {
			h = h*31 + 2
		}
	}

	return h
}
