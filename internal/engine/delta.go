package engine

import (
	"math"

	"github.com/ericogr/squadxp/internal/random"
)

// MaxTeamDelta bounds the magnitude of a team delta.
const MaxTeamDelta = 2

// Gate probability bounds, in percent.
const (
	gateBasePercent  = 20
	gateSlopePercent = 70
	gateMinPercent   = 15
	gateMaxPercent   = 90
)

// BaseDelta is the ungated team delta for a given surprise.
func BaseDelta(surprise float64) int {
	return clampInt(int(math.Round(4*surprise)), -MaxTeamDelta, MaxTeamDelta)
}

// GatePercent is the chance, in percent, that a nonzero base delta is
// actually applied. Bigger surprises are more likely to move ratings.
func GatePercent(surprise float64) int {
	p := int(math.Round(gateBasePercent + math.Abs(surprise)*gateSlopePercent))
	return clampInt(p, gateMinPercent, gateMaxPercent)
}

// TeamDelta turns the gap between the expected and actual home score into
// a bounded integer rating movement. A zero base delta returns 0 without
// drawing from src.
func TeamDelta(expectedHome, actualHome float64, src random.Source) int {
	surprise := actualHome - expectedHome
	base := BaseDelta(surprise)
	if base == 0 {
		return 0
	}
	if !random.Chance(src, float64(GatePercent(surprise))/100) {
		return 0
	}
	return base
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
