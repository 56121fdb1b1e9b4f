package config

import (
	_ "embed"
)

//go:embed defaults/merge.yaml
var defaultMergeYAML []byte

// DefaultMergeConfig returns the hardcoded default configuration.
// It mirrors defaults/merge.yaml and is used when the embedded file cannot be parsed.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Container: ContainerConfig{
			Width:  6.0,
			Height: 9.0,
		},
		Spawn: SpawnConfig{
			Height:   8.3,
			Cooldown: 1.0,
			Nudge:    0.25,
		},
		Timing: TimingConfig{
			SettleDelay: 0.2,
			GracePeriod: 2.0,
		},
		Deadline: DeadlineConfig{
			Height:       7.2,
			Thickness:    0.1,
			DwellSeconds: 3.0,
		},
		Physics: PhysicsConfig{
			Gravity:       9.81,
			LinearDamping: 0.5,
			Restitution:   0.1,
			Substeps:      4,
		},
		Tiers:       DefaultTiers(),
		Probability: DefaultProbability(),
	}
}

// DefaultTiers returns the eleven-rung fruit ladder.
func DefaultTiers() []TierConfig {
	return []TierConfig{
		{Name: "Cherry", Radius: 0.25, Mass: 1.0, Score: 1, PushStrength: 1.0, ExplosionRadiusMultiplier: 2.0, ExplosionForce: 1.5, Color: "red", Glyph: "c"},
		{Name: "Strawberry", Radius: 0.33, Mass: 1.2, Score: 3, PushStrength: 1.2, ExplosionRadiusMultiplier: 2.0, ExplosionForce: 1.8, Color: "bright_red", Glyph: "s"},
		{Name: "Grape", Radius: 0.42, Mass: 1.5, Score: 6, PushStrength: 1.4, ExplosionRadiusMultiplier: 2.0, ExplosionForce: 2.1, Color: "purple", Glyph: "g"},
		{Name: "Dekopon", Radius: 0.50, Mass: 1.8, Score: 10, PushStrength: 1.6, ExplosionRadiusMultiplier: 2.0, ExplosionForce: 2.4, Color: "orange", Glyph: "d"},
		{Name: "Persimmon", Radius: 0.58, Mass: 2.2, Score: 15, PushStrength: 1.8, ExplosionRadiusMultiplier: 2.0, ExplosionForce: 2.7, Color: "bright_yellow", Glyph: "p"},
		{Name: "Apple", Radius: 0.70, Mass: 2.7, Score: 21, PushStrength: 2.0, ExplosionRadiusMultiplier: 1.9, ExplosionForce: 3.0, Color: "bright_red", Glyph: "a"},
		{Name: "Pear", Radius: 0.80, Mass: 3.2, Score: 28, PushStrength: 2.2, ExplosionRadiusMultiplier: 1.9, ExplosionForce: 3.3, Color: "yellow", Glyph: "e"},
		{Name: "Peach", Radius: 0.92, Mass: 3.8, Score: 36, PushStrength: 2.4, ExplosionRadiusMultiplier: 1.8, ExplosionForce: 3.6, Color: "pink", Glyph: "h"},
		{Name: "Pineapple", Radius: 1.05, Mass: 4.5, Score: 45, PushStrength: 2.6, ExplosionRadiusMultiplier: 1.8, ExplosionForce: 3.9, Color: "bright_yellow", Glyph: "n"},
		{Name: "Melon", Radius: 1.20, Mass: 5.3, Score: 55, PushStrength: 2.8, ExplosionRadiusMultiplier: 1.7, ExplosionForce: 4.2, Color: "bright_green", Glyph: "m"},
		{Name: "Watermelon", Radius: 1.40, Mass: 6.2, Score: 66, PushStrength: 3.0, ExplosionRadiusMultiplier: 1.7, ExplosionForce: 4.5, Color: "green", Glyph: "W"},
	}
}

// DefaultProbability returns the default spawn bands and tuning scalars.
func DefaultProbability() *ProbabilityConfig {
	return &ProbabilityConfig{
		Sets: []ProbabilitySet{
			{MaxLevelThreshold: 2, Probabilities: []float64{0.55, 0.35, 0.10, 0.00, 0.00}},
			{MaxLevelThreshold: 4, Probabilities: []float64{0.45, 0.30, 0.15, 0.10, 0.00}},
			{MaxLevelThreshold: 6, Probabilities: []float64{0.40, 0.30, 0.15, 0.10, 0.05}},
			{MaxLevelThreshold: 10, Probabilities: []float64{0.35, 0.28, 0.17, 0.12, 0.08}},
		},
		EmergencyFruitCount: 20,
		EmergencyBoost:      0.3,
		NoMergeThreshold:    5,
		NoMergeBoost:        0.2,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMergeYAML
}
