package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-merge/internal/core"
)

const configFileName = "merge.yaml"

// LoadMerge loads the Fruit Merge configuration.
// Search order: customPath -> ~/.arcade/configs/merge.yaml -> ./configs/merge.yaml -> embedded default
func LoadMerge(customPath string) (MergeConfig, error) {
	var cfg MergeConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = MergeConfig{}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = MergeConfig{}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMergeYAML, &cfg); err != nil {
		return DefaultMergeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate reports every problem found in the configuration.
// A nil Probability section is reported as well since it disables weighted spawning.
func (c MergeConfig) Validate() error {
	var errs []error

	if err := c.validateWorld(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Tiers) == 0 {
		errs = append(errs, errors.New("tiers: no tiers configured"))
	}
	for i, t := range c.Tiers {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("tiers[%d]: %w", i, err))
		}
	}
	if c.Probability == nil {
		errs = append(errs, errors.New("probability: section missing"))
	} else if err := c.Probability.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("probability: %w", err))
	}

	return errors.Join(errs...)
}

// validateWorld checks container, spawn, timing, deadline and physics values.
func (c MergeConfig) validateWorld() error {
	switch {
	case c.Container.Width <= 0 || c.Container.Height <= 0:
		return fmt.Errorf("container: invalid size %.2fx%.2f", c.Container.Width, c.Container.Height)
	case c.Spawn.Height <= 0 || c.Spawn.Cooldown < 0 || c.Spawn.Nudge <= 0:
		return errors.New("spawn: height and nudge must be positive, cooldown non-negative")
	case c.Timing.SettleDelay < 0 || c.Timing.GracePeriod < 0:
		return errors.New("timing: delays must be non-negative")
	case c.Deadline.Height <= 0 || c.Deadline.Thickness <= 0 || c.Deadline.DwellSeconds <= 0:
		return errors.New("deadline: height, thickness and dwell_seconds must be positive")
	case c.Physics.Gravity <= 0 || c.Physics.LinearDamping < 0 || c.Physics.Substeps <= 0:
		return errors.New("physics: gravity and substeps must be positive, damping non-negative")
	case c.Physics.Restitution < 0 || c.Physics.Restitution > 1:
		return fmt.Errorf("physics: restitution %.2f outside [0, 1]", c.Physics.Restitution)
	}
	return nil
}

// Validate checks that a tier can be spawned.
func (t TierConfig) Validate() error {
	if t.Radius <= 0 {
		return fmt.Errorf("%q: radius must be positive", t.Name)
	}
	if t.Mass <= 0 {
		return fmt.Errorf("%q: mass must be positive", t.Name)
	}
	if t.Score < 0 {
		return fmt.Errorf("%q: score must be non-negative", t.Name)
	}
	if t.ExplosionRadiusMultiplier < 0 || t.PushStrength < 0 || t.ExplosionForce < 0 {
		return fmt.Errorf("%q: force parameters must be non-negative", t.Name)
	}
	if t.Color != "" {
		if _, ok := core.ParseColor(t.Color); !ok {
			return fmt.Errorf("%q: unknown color %q", t.Name, t.Color)
		}
	}
	return nil
}

// Validate checks the probability bands and tuning scalars.
func (p *ProbabilityConfig) Validate() error {
	if len(p.Sets) == 0 {
		return errors.New("no probability_sets")
	}
	for i, set := range p.Sets {
		total := 0.0
		for _, w := range set.Probabilities {
			if w < 0 {
				return fmt.Errorf("probability_sets[%d]: negative weight %.3f", i, w)
			}
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("probability_sets[%d]: weights sum to zero", i)
		}
		if i > 0 && set.MaxLevelThreshold < p.Sets[i-1].MaxLevelThreshold {
			return fmt.Errorf("probability_sets[%d]: thresholds must be ascending", i)
		}
	}
	if p.EmergencyBoost < 0 || p.NoMergeBoost < 0 {
		return errors.New("boosts must be non-negative")
	}
	return nil
}

// Sanitize applies the fail-closed rules and logs every problem it repairs:
// a broken world section falls back to defaults, an empty ladder or unusable
// first tier falls back to the default ladder, and a missing or invalid
// probability section is dropped so only tier 0 spawns.
// Individually broken upper tiers are kept; the simulation refuses to spawn them.
func (c MergeConfig) Sanitize(logger *log.Logger) MergeConfig {
	def := DefaultMergeConfig()

	if err := c.validateWorld(); err != nil {
		logger.Warn("invalid world configuration, using defaults", "error", err)
		c.Container = def.Container
		c.Spawn = def.Spawn
		c.Timing = def.Timing
		c.Deadline = def.Deadline
		c.Physics = def.Physics
	}

	switch {
	case len(c.Tiers) == 0:
		logger.Warn("no tiers configured, using default ladder")
		c.Tiers = def.Tiers
	case c.Tiers[0].Validate() != nil:
		logger.Warn("first tier is not spawnable, using default ladder", "error", c.Tiers[0].Validate())
		c.Tiers = def.Tiers
	default:
		for i, t := range c.Tiers {
			if err := t.Validate(); err != nil {
				logger.Warn("tier has no usable spec", "tier", i, "error", err)
			}
		}
	}

	if c.Probability == nil {
		logger.Warn("probability configuration missing, spawning tier 0 only")
	} else if err := c.Probability.Validate(); err != nil {
		logger.Warn("invalid probability configuration, spawning tier 0 only", "error", err)
		c.Probability = nil
	}

	return c
}

// ApplyMergePreset modifies the config based on a difficulty preset.
func ApplyMergePreset(cfg *MergeConfig, preset DifficultyPreset) {
	p := cfg.Probability

	switch preset {
	case DifficultyEasy:
		cfg.Deadline.DwellSeconds += 1.5
		if p != nil {
			p.EmergencyFruitCount = max(1, p.EmergencyFruitCount-4)
			p.NoMergeThreshold = max(1, p.NoMergeThreshold-1)
		}
	case DifficultyHard:
		cfg.Deadline.DwellSeconds = max(1.0, cfg.Deadline.DwellSeconds-1.0)
		if p != nil {
			p.EmergencyBoost *= 0.5
			p.NoMergeBoost *= 0.5
		}
	case DifficultyFixed:
		// Bands only: no board-driven adaptation
		if p != nil {
			p.EmergencyBoost = 0
			p.NoMergeBoost = 0
		}
	}
}
