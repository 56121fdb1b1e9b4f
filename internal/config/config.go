// Package config provides YAML-based configuration loading and
// difficulty presets for the merge game.
package config

// MergeConfig contains all configuration for the Fruit Merge game.
type MergeConfig struct {
	Container   ContainerConfig    `yaml:"container"`
	Spawn       SpawnConfig        `yaml:"spawn"`
	Timing      TimingConfig       `yaml:"timing"`
	Deadline    DeadlineConfig     `yaml:"deadline"`
	Physics     PhysicsConfig      `yaml:"physics"`
	Tiers       []TierConfig       `yaml:"tiers"`
	Probability *ProbabilityConfig `yaml:"probability"` // nil fails closed to tier-0 spawning
}

// ContainerConfig defines the open-top box the pieces fall into (world units).
type ContainerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig defines the top spawn slot.
type SpawnConfig struct {
	Height   float64 `yaml:"height"`   // Y of the held piece
	Cooldown float64 `yaml:"cooldown"` // Seconds between a drop and the next held piece
	Nudge    float64 `yaml:"nudge"`    // Horizontal move per key press
}

// TimingConfig defines per-piece countdowns after a drop.
type TimingConfig struct {
	SettleDelay float64 `yaml:"settle_delay"` // Falling -> mergeable
	GracePeriod float64 `yaml:"grace_period"` // Mergeable -> counts toward game over
}

// DeadlineConfig defines the loss line near the top of the container.
type DeadlineConfig struct {
	Height       float64 `yaml:"height"`
	Thickness    float64 `yaml:"thickness"`
	DwellSeconds float64 `yaml:"dwell_seconds"`
}

// PhysicsConfig defines rigid-body world parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	LinearDamping float64 `yaml:"linear_damping"`
	Restitution   float64 `yaml:"restitution"`
	Substeps      int     `yaml:"substeps"`
}

// TierConfig is one rung of the merge ladder.
type TierConfig struct {
	Name                      string  `yaml:"name"`
	Radius                    float64 `yaml:"radius"`
	Mass                      float64 `yaml:"mass"`
	Score                     int     `yaml:"score"`
	PushStrength              float64 `yaml:"push_strength"`
	ExplosionRadiusMultiplier float64 `yaml:"explosion_radius_multiplier"`
	ExplosionForce            float64 `yaml:"explosion_force"`
	Color                     string  `yaml:"color"`
	Glyph                     string  `yaml:"glyph"`
}

// ProbabilityConfig drives which tier spawns in the top slot.
type ProbabilityConfig struct {
	Sets                []ProbabilitySet `yaml:"probability_sets"`
	EmergencyFruitCount int              `yaml:"emergency_fruit_count"`
	EmergencyBoost      float64          `yaml:"emergency_boost"`
	NoMergeThreshold    int              `yaml:"no_merge_threshold"`
	NoMergeBoost        float64          `yaml:"no_merge_boost"`
}

// ProbabilitySet is a weight band used while the highest tier reached is
// at or below MaxLevelThreshold.
type ProbabilitySet struct {
	MaxLevelThreshold int       `yaml:"max_level_threshold"`
	Probabilities     []float64 `yaml:"probabilities"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Presets lists the selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}
