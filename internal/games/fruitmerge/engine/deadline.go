package engine

import "github.com/vovakirdan/tui-merge/internal/core"

// DeadlineMonitor trips when pieces sit in the loss zone for too long.
// Once tripped it stays tripped.
type DeadlineMonitor struct {
	zone     core.Box
	dwell    float64
	occupied float64
	tripped  bool
}

// NewDeadlineMonitor creates a monitor over zone with the given dwell threshold.
func NewDeadlineMonitor(zone core.Box, dwellSeconds float64) *DeadlineMonitor {
	return &DeadlineMonitor{zone: zone, dwell: dwellSeconds}
}

// Zone returns the watched region.
func (m *DeadlineMonitor) Zone() core.Box { return m.zone }

// Occupied returns how long the zone has been continuously occupied.
func (m *DeadlineMonitor) Occupied() float64 { return m.occupied }

// Tripped reports whether the game is lost.
func (m *DeadlineMonitor) Tripped() bool { return m.tripped }

// Overlaps reports whether a circle touches the zone.
func (m *DeadlineMonitor) Overlaps(center core.Vec2, radius float64) bool {
	return m.zone.OverlapsCircle(center, radius)
}

// Update advances the monitor by dt seconds. It returns true exactly once:
// on the tick the monitor trips.
func (m *DeadlineMonitor) Update(dt float64, occupied bool) bool {
	if !occupied {
		m.occupied = 0
		return false
	}
	m.occupied += dt
	if m.tripped || m.occupied < m.dwell {
		return false
	}
	m.tripped = true
	return true
}
