package engine

import (
	"slices"

	"github.com/vovakirdan/tui-merge/internal/core"
)

// Directional shaping of merge impulses.
const (
	horizontalBias = 1.5 // x amplification before the first renormalization
	upwardDamping  = 0.5 // y scale for directions pointing up
	aboveScale     = 0.6 // magnitude scale for bodies above the merge point
	belowScale     = 1.2 // magnitude scale for bodies level with or below it
)

// Impulse is an instantaneous velocity change requested for one body.
type Impulse struct {
	Target PieceID
	Vector core.Vec2
}

// ForceResolver computes the shove a merge gives its neighbours.
type ForceResolver struct{}

// Compute returns the impulses a merge at center produces on bodies,
// using the force parameters of spec. Bodies in exclude and bodies that
// receive no force are skipped.
func (ForceResolver) Compute(center core.Vec2, spec *TierSpec, bodies []Body, exclude ...PieceID) []Impulse {
	var out []Impulse
	for _, b := range bodies {
		if slices.Contains(exclude, b.ID()) {
			continue
		}
		if imp, ok := impulseFor(center, spec, b.Position(), b.BoundingRadius()); ok {
			out = append(out, Impulse{Target: b.ID(), Vector: imp})
		}
	}
	return out
}

// Apply queries the backend around center and applies the computed impulses.
func (f ForceResolver) Apply(backend Backend, center core.Vec2, spec *TierSpec, exclude ...PieceID) []Impulse {
	bodies := backend.QueryRadius(center, spec.QueryRadius())
	impulses := f.Compute(center, spec, bodies, exclude...)

	byID := make(map[PieceID]Body, len(bodies))
	for _, b := range bodies {
		byID[b.ID()] = b
	}
	for _, imp := range impulses {
		byID[imp.Target].ApplyImpulse(imp.Vector)
	}
	return impulses
}

// impulseFor combines the push and explosion terms for one target.
func impulseFor(center core.Vec2, spec *TierSpec, target core.Vec2, targetRadius float64) (core.Vec2, bool) {
	offset := target.Sub(center)
	distance := offset.Len()

	magnitude := 0.0
	if required := spec.Radius + targetRadius; distance < required {
		magnitude += spec.PushStrength * (1 - distance/required)
	}
	if blast := spec.ExplosionRadius(); distance < blast {
		magnitude += spec.ExplosionForce * (1 - distance/blast)
	}
	if magnitude <= 0 {
		return core.Vec2{}, false
	}

	if target.Y > center.Y {
		magnitude *= aboveScale
	} else {
		magnitude *= belowScale
	}

	dir := offset.Normalized()
	dir.X *= horizontalBias
	dir = dir.Normalized()
	if dir.Y > 0 {
		dir.Y *= upwardDamping
		dir = dir.Normalized()
	}
	if dir.IsZero() {
		// Coincident centers have no direction to push along.
		return core.Vec2{}, false
	}

	return dir.Scale(magnitude), true
}
