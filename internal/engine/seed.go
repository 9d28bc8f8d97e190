package engine

import (
	"math"

	"github.com/ericogr/squadxp/internal/random"
)

// SeedFloorXP is assigned when early performance is poor or unknown.
const SeedFloorXP = 10

type seedBand struct {
	minKD  float64
	lo, hi int
}

// Bands are checked top-down.
var seedBands = []seedBand{
	{minKD: 3.0, lo: 30, hi: 35},
	{minKD: 2.0, lo: 20, hi: 30},
	{minKD: 1.0, lo: 15, hi: 20},
}

// ComputeSeedXP returns the initial XP for a new player from their early
// kill/death ratio.
func ComputeSeedXP(kd float64, src random.Source) int {
	if math.IsNaN(kd) || math.IsInf(kd, 0) || kd <= 0 {
		return SeedFloorXP
	}
	for _, b := range seedBands {
		if kd >= b.minKD {
			return random.IntBetween(src, b.lo, b.hi)
		}
	}
	return SeedFloorXP
}

// KDRatio is kills over deaths; with no deaths the kill count is used.
func KDRatio(kills, deaths int) float64 {
	if deaths <= 0 {
		return float64(kills)
	}
	return float64(kills) / float64(deaths)
}
