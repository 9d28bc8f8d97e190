// Package random provides the injectable random source used by every
// probabilistic step of the progression pipeline.
//
// Callers create one Source per invocation (seeded for reproducible runs)
// and thread it through; nothing in the pipeline reads global randomness.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the minimal generator contract. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) int
}

// New returns a deterministic source for the given seed.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Chance draws a weighted boolean that is true with probability p.
// p <= 0 never succeeds and p >= 1 always does; neither consumes a draw.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Float64() < p
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
func IntBetween(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Sample picks k distinct indices from [0, n) without replacement by
// drawing from a shrinking candidate list. k is capped at n.
func Sample(src Source, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	picked := make([]int, 0, k)
	for len(picked) < k {
		j := src.Intn(len(candidates))
		picked = append(picked, candidates[j])
		last := len(candidates) - 1
		candidates[j] = candidates[last]
		candidates = candidates[:last]
	}
	return picked
}
