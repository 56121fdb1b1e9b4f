// Package physics is a small deterministic circle world: gravity, damping,
// an open-top container, circle contacts with restitution, and
// collision-begin reporting. It implements engine.Backend.
package physics

import (
	"cmp"
	"slices"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
)

const (
	maxSpeed        = 20.0 // Units per second, keeps substeps from tunnelling
	touchSlop       = 0.01 // Gap still treated as touching
	solverPasses    = 3
	defaultSubsteps = 4
)

// Config holds world parameters.
type Config struct {
	HalfWidth     float64
	Gravity       float64
	LinearDamping float64
	Restitution   float64
	Substeps      int
}

// ConfigFrom extracts world parameters from the game configuration.
func ConfigFrom(c config.MergeConfig) Config {
	return Config{
		HalfWidth:     c.Container.Width / 2,
		Gravity:       c.Physics.Gravity,
		LinearDamping: c.Physics.LinearDamping,
		Restitution:   c.Physics.Restitution,
		Substeps:      c.Physics.Substeps,
	}
}

type pair struct {
	a, b engine.PieceID // a < b
}

func makePair(a, b engine.PieceID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a: a, b: b}
}

var _ engine.Backend = (*World)(nil)

// World holds bodies in creation order.
type World struct {
	cfg      Config
	bodies   map[engine.PieceID]*Body
	order    []engine.PieceID
	contacts map[pair]bool
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	if cfg.Substeps <= 0 {
		cfg.Substeps = defaultSubsteps
	}
	return &World{
		cfg:      cfg,
		bodies:   make(map[engine.PieceID]*Body),
		contacts: make(map[pair]bool),
	}
}

// CreateBody adds a circle to the world.
func (w *World) CreateBody(def engine.BodyDef) engine.Body {
	b := &Body{
		id:      def.ID,
		pos:     def.Position,
		radius:  def.Radius,
		mass:    def.Mass,
		dynamic: def.Dynamic,
	}
	if b.mass <= 0 {
		b.mass = 1
	}
	w.bodies[def.ID] = b
	w.order = append(w.order, def.ID)
	return b
}

// DestroyBody removes a body and forgets its contacts.
func (w *World) DestroyBody(id engine.PieceID) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	if i := slices.Index(w.order, id); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
	for p := range w.contacts {
		if p.a == id || p.b == id {
			delete(w.contacts, p)
		}
	}
}

// Body returns a body by ID.
func (w *World) Body(id engine.PieceID) (*Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.order)
}

// QueryRadius returns bodies whose circles intersect the query circle,
// in creation order.
func (w *World) QueryRadius(center core.Vec2, radius float64) []engine.Body {
	var out []engine.Body
	for _, id := range w.order {
		b := w.bodies[id]
		if b.pos.Dist(center) < radius+b.radius {
			out = append(out, b)
		}
	}
	return out
}

// Step advances the world by dt seconds and returns the contacts that
// began during the step, ordered by body IDs.
func (w *World) Step(dt float64) []engine.Collision {
	if dt <= 0 {
		return nil
	}
	h := dt / float64(w.cfg.Substeps)
	touching := make(map[pair]bool)

	for range w.cfg.Substeps {
		w.integrate(h)
		for range solverPasses {
			w.solveContacts(touching)
			w.solveWalls()
		}
	}

	var began []engine.Collision
	for p := range touching {
		if !w.contacts[p] {
			began = append(began, engine.Collision{A: p.a, B: p.b})
		}
	}
	slices.SortFunc(began, func(x, y engine.Collision) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	w.contacts = touching
	return began
}

// integrate applies gravity and damping, then moves dynamic bodies.
func (w *World) integrate(h float64) {
	damp := 1 / (1 + h*w.cfg.LinearDamping)
	for _, id := range w.order {
		b := w.bodies[id]
		if !b.dynamic {
			continue
		}
		b.vel.Y -= w.cfg.Gravity * h
		b.vel = b.vel.Scale(damp)
		if speed := b.vel.Len(); speed > maxSpeed {
			b.vel = b.vel.Scale(maxSpeed / speed)
		}
		b.pos = b.pos.Add(b.vel.Scale(h))
	}
}

// solveWalls keeps dynamic bodies between the walls and above the floor.
// The top is open.
func (w *World) solveWalls() {
	e := w.cfg.Restitution
	for _, id := range w.order {
		b := w.bodies[id]
		if !b.dynamic {
			continue
		}
		if left := -w.cfg.HalfWidth + b.radius; b.pos.X < left {
			b.pos.X = left
			if b.vel.X < 0 {
				b.vel.X = -b.vel.X * e
			}
		}
		if right := w.cfg.HalfWidth - b.radius; b.pos.X > right {
			b.pos.X = right
			if b.vel.X > 0 {
				b.vel.X = -b.vel.X * e
			}
		}
		if b.pos.Y < b.radius {
			b.pos.Y = b.radius
			if b.vel.Y < 0 {
				b.vel.Y = -b.vel.Y * e
			}
		}
	}
}

// solveContacts separates overlapping circles and removes approaching
// velocity along the contact normal. Pairs within touchSlop are recorded.
func (w *World) solveContacts(touching map[pair]bool) {
	e := w.cfg.Restitution
	for i, idA := range w.order {
		a := w.bodies[idA]
		for _, idB := range w.order[i+1:] {
			b := w.bodies[idB]

			delta := b.pos.Sub(a.pos)
			dist := delta.Len()
			reach := a.radius + b.radius
			if dist >= reach+touchSlop {
				continue
			}
			touching[makePair(idA, idB)] = true
			if dist >= reach {
				continue
			}

			wa, wb := a.invMass(), b.invMass()
			if wa+wb == 0 {
				continue
			}
			n := core.V(0, 1)
			if dist > 0 {
				n = delta.Scale(1 / dist)
			}

			overlap := reach - dist
			a.pos = a.pos.Sub(n.Scale(overlap * wa / (wa + wb)))
			b.pos = b.pos.Add(n.Scale(overlap * wb / (wa + wb)))

			vn := b.vel.Sub(a.vel).Dot(n)
			if vn < 0 {
				j := -(1 + e) * vn / (wa + wb)
				a.vel = a.vel.Sub(n.Scale(j * wa))
				b.vel = b.vel.Add(n.Scale(j * wb))
			}
		}
	}
}
