package engine

// BoardState holds the session counters. Only the merge path and the drop
// path mutate it; everything else reads.
type BoardState struct {
	score          int
	maxTierReached Tier
	noMergeStreak  int
	activePieces   int
	merges         int
	drops          int
	bestChain      int // Merges in a row without a drop between them
	mergeRun       int
}

// Score returns the current score.
func (b *BoardState) Score() int { return b.score }

// MaxTierReached returns the highest tier seen this session.
func (b *BoardState) MaxTierReached() Tier { return b.maxTierReached }

// NoMergeStreak returns consecutive top-slot drops without a merge.
func (b *BoardState) NoMergeStreak() int { return b.noMergeStreak }

// ActivePieces returns the live piece count, held piece included.
func (b *BoardState) ActivePieces() int { return b.activePieces }

// Merges returns the number of merges resolved.
func (b *BoardState) Merges() int { return b.merges }

// Drops returns the number of pieces released from the top slot.
func (b *BoardState) Drops() int { return b.drops }

// BestMergeChain returns the longest run of merges between two drops.
func (b *BoardState) BestMergeChain() int { return b.bestChain }

// recordMerge applies a resolved merge of two pieces of tier into next.
func (b *BoardState) recordMerge(scoreValue int, next Tier) {
	b.score += scoreValue
	b.maxTierReached = max(b.maxTierReached, next)
	b.noMergeStreak = 0
	b.merges++
	b.mergeRun++
	b.bestChain = max(b.bestChain, b.mergeRun)
}

// recordDrop applies one top-slot delivery.
func (b *BoardState) recordDrop() {
	b.noMergeStreak++
	b.drops++
	b.mergeRun = 0
}

func (b *BoardState) setActivePieces(n int) {
	b.activePieces = n
}
