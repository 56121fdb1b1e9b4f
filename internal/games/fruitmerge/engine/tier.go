// Package engine implements the merge simulation: the tier ladder, the merge
// protocol, radial merge forces, adaptive spawn odds, board counters and the
// deadline loss detector. It talks to physics only through the Backend
// interface and to the screen only through the Presenter interface.
package engine

import (
	"unicode/utf8"

	"github.com/vovakirdan/tui-merge/internal/config"
	"github.com/vovakirdan/tui-merge/internal/core"
)

// Tier is a rank in the merge ladder, 0 being the smallest piece.
type Tier int

// NoTier marks the absence of a tier.
const NoTier Tier = -1

// DefaultGlyph is drawn for tiers that configure none.
const DefaultGlyph = '●'

// TierSpec is the immutable description of one tier.
type TierSpec struct {
	Name                      string
	Radius                    float64
	Mass                      float64
	ScoreValue                int
	PushStrength              float64
	ExplosionRadiusMultiplier float64
	ExplosionForce            float64
	Color                     core.Color
	Glyph                     rune
}

// ExplosionRadius returns the radius inside which the explosion term applies.
func (s *TierSpec) ExplosionRadius() float64 {
	return s.Radius * s.ExplosionRadiusMultiplier
}

// QueryRadius returns how far a merge of this tier reaches.
func (s *TierSpec) QueryRadius() float64 {
	return max(s.Radius*2, s.ExplosionRadius())
}

// TierTable is the ordered ladder of tier specs.
// A rung whose configuration was unusable keeps its slot but has no spec,
// so the ladder order never shifts.
type TierTable struct {
	specs []*TierSpec
}

// NewTierTable builds a ladder from configuration.
func NewTierTable(tiers []config.TierConfig) *TierTable {
	t := &TierTable{specs: make([]*TierSpec, len(tiers))}
	for i, tc := range tiers {
		if tc.Validate() != nil {
			continue
		}
		color, ok := core.ParseColor(tc.Color)
		if !ok {
			color = core.ColorDefault
		}
		glyph, _ := utf8.DecodeRuneInString(tc.Glyph)
		if glyph == utf8.RuneError {
			glyph = DefaultGlyph
		}
		t.specs[i] = &TierSpec{
			Name:                      tc.Name,
			Radius:                    tc.Radius,
			Mass:                      tc.Mass,
			ScoreValue:                tc.Score,
			PushStrength:              tc.PushStrength,
			ExplosionRadiusMultiplier: tc.ExplosionRadiusMultiplier,
			ExplosionForce:            tc.ExplosionForce,
			Color:                     color,
			Glyph:                     glyph,
		}
	}
	return t
}

// Count returns the number of rungs in the ladder.
func (t *TierTable) Count() int {
	return len(t.specs)
}

// MaxTier returns the top rung, or NoTier for an empty ladder.
func (t *TierTable) MaxTier() Tier {
	return Tier(len(t.specs) - 1)
}

// Valid reports whether tier lies inside the ladder.
func (t *TierTable) Valid(tier Tier) bool {
	return tier >= 0 && int(tier) < len(t.specs)
}

// SpecFor returns the spec of a tier. It reports false for tiers outside the
// ladder and for rungs without a usable spec.
func (t *TierTable) SpecFor(tier Tier) (*TierSpec, bool) {
	if !t.Valid(tier) {
		return nil, false
	}
	spec := t.specs[tier]
	return spec, spec != nil
}

// Next returns the tier a merge of two tier pieces produces.
// The max tier and invalid tiers have no next tier.
func (t *TierTable) Next(tier Tier) (Tier, bool) {
	if !t.Valid(tier) || tier == t.MaxTier() {
		return NoTier, false
	}
	return tier + 1, true
}
