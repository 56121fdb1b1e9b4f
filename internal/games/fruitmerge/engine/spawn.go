package engine

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/vovakirdan/tui-merge/internal/config"
)

// MaxSpawnableTiers is how many of the smallest tiers the top slot can deliver.
const MaxSpawnableTiers = 5

// Emergency redistribution shares and stagnation decay.
const (
	emergencyShareTier0 = 0.7
	emergencyShareTier1 = 0.3
	emergencyDecay      = 0.85
	noMergeDecay        = 0.8
)

// SpawnEngine picks the tier delivered to the top slot.
// A nil configuration fails closed: every draw is tier 0.
type SpawnEngine struct {
	cfg       *config.ProbabilityConfig
	spawnable int
	rng       *rand.Rand
}

// NewSpawnEngine creates a spawn engine over a ladder of tierCount rungs.
func NewSpawnEngine(cfg *config.ProbabilityConfig, tierCount int, rng *rand.Rand) *SpawnEngine {
	return &SpawnEngine{
		cfg:       cfg,
		spawnable: max(1, min(MaxSpawnableTiers, tierCount)),
		rng:       rng,
	}
}

// Spawnable returns the length of the distribution.
func (e *SpawnEngine) Spawnable() int {
	return e.spawnable
}

// Weights returns the adjusted, not yet normalized weight vector for the
// given board signals. The second result is false when no band applies and
// the vector failed closed to tier 0.
func (e *SpawnEngine) Weights(maxTier Tier, activePieces, noMergeStreak int) ([]float64, bool) {
	w := make([]float64, e.spawnable)
	if e.cfg == nil {
		w[0] = 1
		return w, false
	}

	band := -1
	for i, set := range e.cfg.Sets {
		if set.MaxLevelThreshold >= int(maxTier) {
			band = i
			break
		}
	}
	if band < 0 {
		w[0] = 1
		return w, false
	}
	copy(w, e.cfg.Sets[band].Probabilities)

	if activePieces >= e.cfg.EmergencyFruitCount {
		w[0] += e.cfg.EmergencyBoost * emergencyShareTier0
		if len(w) > 1 {
			w[1] += e.cfg.EmergencyBoost * emergencyShareTier1
		}
		for i := 2; i < len(w); i++ {
			w[i] *= emergencyDecay
		}
	}

	if noMergeStreak >= e.cfg.NoMergeThreshold {
		w[0] += e.cfg.NoMergeBoost
		for i := 1; i < len(w); i++ {
			w[i] *= noMergeDecay
		}
	}

	return w, true
}

// Distribution returns the normalized spawn probabilities for the given
// board signals. Entries are non-negative and sum to 1.
func (e *SpawnEngine) Distribution(maxTier Tier, activePieces, noMergeStreak int) []float64 {
	w, _ := e.Weights(maxTier, activePieces, noMergeStreak)
	return Normalize(w)
}

// Sample draws the next tier for the top slot.
func (e *SpawnEngine) Sample(maxTier Tier, activePieces, noMergeStreak int) Tier {
	return Pick(e.Distribution(maxTier, activePieces, noMergeStreak), e.rng.Float64())
}

// Normalize floors negative weights to zero and scales the vector in place
// to sum to 1. A vector with no positive weight becomes all weight on tier 0.
func Normalize(w []float64) []float64 {
	if len(w) == 0 {
		return []float64{1}
	}
	for i, v := range w {
		if v < 0 {
			w[i] = 0
		}
	}
	sum := floats.Sum(w)
	if sum <= 0 {
		for i := range w {
			w[i] = 0
		}
		w[0] = 1
		return w
	}
	floats.Scale(1/sum, w)
	return w
}

// Pick walks the cumulative sum of normalized weights and returns the first
// tier whose cumulative sum reaches u. Tiers with zero weight are never
// picked. If rounding leaves u unmatched the result is tier 0.
func Pick(weights []float64, u float64) Tier {
	cum := floats.CumSum(make([]float64, len(weights)), weights)
	for i, c := range cum {
		if weights[i] > 0 && c >= u {
			return Tier(i)
		}
	}
	return 0
}
