package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-merge/internal/core"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func forceSpec() *TierSpec {
	return &TierSpec{Radius: 0.5, PushStrength: 2, ExplosionRadiusMultiplier: 2, ExplosionForce: 3}
}

func TestForceBelowAndAbove(t *testing.T) {
	// push 2*(1-0.5/0.75) + explosion 3*(1-0.5/1.0) = 2.1667
	base := 2.0/3.0 + 1.5

	tests := []struct {
		name   string
		target core.Vec2
		want   core.Vec2
	}{
		{"below gets boosted downward", core.V(0, -0.5), core.V(0, -base*1.2)},
		{"above gets damped upward", core.V(0, 0.5), core.V(0, base*0.6)},
		{"level counts as below", core.V(0.5, 0), core.V(base*1.2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := impulseFor(core.V(0, 0), forceSpec(), tt.target, 0.25)
			if !ok {
				t.Fatal("impulseFor() reported no force")
			}
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("impulseFor() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestForceDirectionalBias(t *testing.T) {
	// Target up and to the right: x is amplified, then y halved.
	got, ok := impulseFor(core.V(0, 0), forceSpec(), core.V(0.3, 0.4), 0.25)
	if !ok {
		t.Fatal("impulseFor() reported no force")
	}

	if ratio := got.X / got.Y; !near(ratio, 0.9/0.4) {
		t.Errorf("x/y ratio = %v, expected %v", ratio, 0.9/0.4)
	}
	wantLen := (2.0/3.0 + 1.5) * 0.6
	if !near(got.Len(), wantLen) {
		t.Errorf("|impulse| = %v, expected %v", got.Len(), wantLen)
	}

	// Down and to the left: only the horizontal amplification applies.
	got, _ = impulseFor(core.V(0, 0), forceSpec(), core.V(-0.3, -0.4), 0.25)
	if ratio := got.X / got.Y; !near(ratio, 0.9/0.8) {
		t.Errorf("x/y ratio below = %v, expected %v", ratio, 0.9/0.8)
	}
}

func TestForceOutOfRange(t *testing.T) {
	if _, ok := impulseFor(core.V(0, 0), forceSpec(), core.V(0.6, 0.8), 0.25); ok {
		t.Error("body at the edge of both radii should get no force")
	}
	if _, ok := impulseFor(core.V(0, 0), forceSpec(), core.V(0, 0), 0.25); ok {
		t.Error("coincident body has no direction and should be skipped")
	}
}

func TestForceResolverExcludesParticipants(t *testing.T) {
	backend := newFakeBackend()
	a := backend.CreateBody(BodyDef{ID: 1, Position: core.V(-0.2, 0), Radius: 0.25}).(*fakeBody)
	b := backend.CreateBody(BodyDef{ID: 2, Position: core.V(0.2, 0), Radius: 0.25}).(*fakeBody)
	c := backend.CreateBody(BodyDef{ID: 3, Position: core.V(0, -0.5), Radius: 0.25}).(*fakeBody)
	far := backend.CreateBody(BodyDef{ID: 4, Position: core.V(5, 5), Radius: 0.25}).(*fakeBody)

	impulses := ForceResolver{}.Apply(backend, core.V(0, 0), forceSpec(), 1, 2)

	if len(impulses) != 1 || impulses[0].Target != 3 {
		t.Fatalf("Apply() = %+v, expected one impulse on body 3", impulses)
	}
	if len(a.impulses) != 0 || len(b.impulses) != 0 {
		t.Error("merge participants must not be pushed")
	}
	if len(c.impulses) != 1 || c.impulses[0].Y >= 0 {
		t.Errorf("body below should be pushed down, got %+v", c.impulses)
	}
	if len(far.impulses) != 0 {
		t.Error("distant body should not be pushed")
	}
}

func TestForceMagnitudeGrowsWithTier(t *testing.T) {
	small := &TierSpec{Radius: 0.3, PushStrength: 1, ExplosionRadiusMultiplier: 2, ExplosionForce: 1.5}
	big := &TierSpec{Radius: 0.6, PushStrength: 2, ExplosionRadiusMultiplier: 2, ExplosionForce: 3}

	s, _ := impulseFor(core.V(0, 0), small, core.V(0.4, -0.1), 0.25)
	b, _ := impulseFor(core.V(0, 0), big, core.V(0.4, -0.1), 0.25)
	if b.Len() <= s.Len()+eps {
		t.Errorf("bigger tier should push harder: %v <= %v", b.Len(), s.Len())
	}
}
