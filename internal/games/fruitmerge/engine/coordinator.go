package engine

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-merge/internal/core"
)

// contactSlop widens neighbour queries so resting contacts are found.
const contactSlop = 0.02

// pieceSet stores live pieces in creation order.
type pieceSet struct {
	byID   map[PieceID]*Piece
	order  []PieceID
	nextID PieceID
}

func newPieceSet() *pieceSet {
	return &pieceSet{byID: make(map[PieceID]*Piece), nextID: 1}
}

func (s *pieceSet) get(id PieceID) (*Piece, bool) {
	p, ok := s.byID[id]
	return p, ok
}

func (s *pieceSet) len() int {
	return len(s.byID)
}

// create allocates a piece and its body.
func (s *pieceSet) create(backend Backend, tier Tier, spec *TierSpec, pos core.Vec2, dynamic bool) *Piece {
	id := s.nextID
	s.nextID++
	body := backend.CreateBody(BodyDef{
		ID:       id,
		Position: pos,
		Radius:   spec.Radius,
		Mass:     spec.Mass,
		Dynamic:  dynamic,
	})
	p := &Piece{ID: id, Tier: tier, Body: body}
	s.byID[id] = p
	s.order = append(s.order, id)
	return p
}

// destroy removes a piece and its body.
func (s *pieceSet) destroy(backend Backend, id PieceID) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	backend.DestroyBody(id)
}

// list returns live pieces in creation order.
func (s *pieceSet) list() []*Piece {
	out := make([]*Piece, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// MergeResult describes one resolved merge.
type MergeResult struct {
	A, B     PieceID
	Born     PieceID
	From     Tier
	Into     Tier
	Position core.Vec2
	Awarded  int
	Impulses []Impulse
}

// MergeCoordinator resolves collisions between pieces into merges.
type MergeCoordinator struct {
	tiers     *TierTable
	board     *BoardState
	backend   Backend
	pieces    *pieceSet
	forces    ForceResolver
	halfWidth float64
	grace     float64
	logger    *log.Logger
	missing   map[Tier]bool // tiers already reported as lacking a spec
}

// OnCollision handles one perspective of a contact: a touching b.
// It reports true when this perspective performed a merge.
func (c *MergeCoordinator) OnCollision(a, b PieceID) (MergeResult, bool) {
	if a == b {
		return MergeResult{}, false
	}
	pa, okA := c.pieces.get(a)
	pb, okB := c.pieces.get(b)
	if !okA || !okB {
		return MergeResult{}, false
	}
	if !pa.MergeEligible || !pb.MergeEligible || pa.Tier != pb.Tier {
		return MergeResult{}, false
	}
	next, ok := c.tiers.Next(pa.Tier)
	if !ok {
		return MergeResult{}, false
	}
	// The other perspective of the same contact performs the merge.
	if pa.ID > pb.ID {
		return MergeResult{}, false
	}

	fromSpec, ok := c.tiers.SpecFor(pa.Tier)
	if !ok {
		c.reportMissing(pa.Tier)
		return MergeResult{}, false
	}
	nextSpec, ok := c.tiers.SpecFor(next)
	if !ok {
		c.reportMissing(next)
		return MergeResult{}, false
	}

	pos := pa.Position().Midpoint(pb.Position())
	c.board.recordMerge(fromSpec.ScoreValue, next)

	impulses := c.forces.Apply(c.backend, pos, nextSpec, a, b)

	limit := max(0, c.halfWidth-nextSpec.Radius)
	pos.X = core.ClampF(pos.X, -limit, limit)
	born := c.pieces.create(c.backend, next, nextSpec, pos, true)
	born.activate(c.grace)

	pa.retire()
	pb.retire()
	c.pieces.destroy(c.backend, a)
	c.pieces.destroy(c.backend, b)

	return MergeResult{
		A:        a,
		B:        b,
		Born:     born.ID,
		From:     pa.Tier,
		Into:     next,
		Position: pos,
		Awarded:  fromSpec.ScoreValue,
		Impulses: impulses,
	}, true
}

// Resolve delivers both perspectives of a contact. At most one merges.
func (c *MergeCoordinator) Resolve(col Collision) (MergeResult, bool) {
	if res, ok := c.OnCollision(col.A, col.B); ok {
		return res, true
	}
	return c.OnCollision(col.B, col.A)
}

// touching returns contacts between p and mergeable same-tier neighbours.
// Pieces that become eligible while already resting on a partner have no
// new contact to report, so activation looks for them.
func (c *MergeCoordinator) touching(p *Piece) []Collision {
	var out []Collision
	for _, b := range c.backend.QueryRadius(p.Position(), p.Radius()+contactSlop) {
		other, ok := c.pieces.get(b.ID())
		if !ok || other.ID == p.ID || other.Tier != p.Tier || !other.MergeEligible {
			continue
		}
		out = append(out, Collision{A: p.ID, B: other.ID})
	}
	return out
}

func (c *MergeCoordinator) reportMissing(t Tier) {
	if c.missing[t] {
		return
	}
	c.missing[t] = true
	c.logger.Error("tier has no usable spec", "tier", int(t))
}
