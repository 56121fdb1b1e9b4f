package physics

import (
	"github.com/vovakirdan/tui-merge/internal/core"
	"github.com/vovakirdan/tui-merge/internal/games/fruitmerge/engine"
)

var _ engine.Body = (*Body)(nil)

// Body is a circle in the world.
type Body struct {
	id      engine.PieceID
	pos     core.Vec2
	vel     core.Vec2
	radius  float64
	mass    float64
	dynamic bool
}

// ID returns the piece the body belongs to.
func (b *Body) ID() engine.PieceID { return b.id }

// Position returns the center.
func (b *Body) Position() core.Vec2 { return b.pos }

// SetPosition teleports the body.
func (b *Body) SetPosition(p core.Vec2) { b.pos = p }

// Velocity returns the current velocity.
func (b *Body) Velocity() core.Vec2 { return b.vel }

// BoundingRadius returns the circle radius.
func (b *Body) BoundingRadius() float64 { return b.radius }

// Dynamic reports whether the body is simulated.
func (b *Body) Dynamic() bool { return b.dynamic }

// ApplyImpulse changes velocity by impulse/mass. Kinematic bodies ignore it.
func (b *Body) ApplyImpulse(impulse core.Vec2) {
	if !b.dynamic {
		return
	}
	b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
}

// SetDynamic switches simulation on or off. A kinematic body stops moving.
func (b *Body) SetDynamic(dynamic bool) {
	b.dynamic = dynamic
	if !dynamic {
		b.vel = core.Vec2{}
	}
}

func (b *Body) invMass() float64 {
	if !b.dynamic {
		return 0
	}
	return 1 / b.mass
}
