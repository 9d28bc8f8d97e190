package engine

import (
	"math"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/random"
)

// MaxPlayerDelta bounds a single player's XP change per match.
const MaxPlayerDelta = 2

// Second-stage gate success rates.
const (
	gainGateProbability = 0.70
	lossGateProbability = 0.60
)

// Near-ceiling dampening: gains start shrinking at ceilingStart and reach
// ceilingFloor at MaxXP.
const (
	ceilingStart = 85
	ceilingSpan  = 15.0
	ceilingDrop  = 0.6
	ceilingFloor = 0.40
)

// AgeGainMult scales positive deltas: young players grow faster.
func AgeGainMult(age *int) float64 {
	if age == nil {
		return 1.00
	}
	switch a := *age; {
	case a <= 19:
		return 1.25
	case a <= 24:
		return 1.10
	case a <= 29:
		return 1.00
	case a <= 32:
		return 0.90
	default:
		return 0.75
	}
}

// AgeLossMult scales negative deltas: veterans decline faster.
func AgeLossMult(age *int) float64 {
	if age == nil {
		return 1.00
	}
	switch a := *age; {
	case a <= 19:
		return 0.90
	case a <= 24:
		return 0.95
	case a <= 29:
		return 1.00
	case a <= 32:
		return 1.10
	default:
		return 1.25
	}
}

// CeilingGainMult dampens gains for players close to MaxXP.
func CeilingGainMult(xp int) float64 {
	if xp < ceilingStart {
		return 1.00
	}
	t := math.Max(0, math.Min(1, float64(xp-ceilingStart)/ceilingSpan))
	return math.Max(ceilingFloor, 1-ceilingDrop*t)
}

// Multiplier picks the modifier for a base delta of the given sign.
func Multiplier(base int, st game.PlayerState) float64 {
	switch {
	case base > 0:
		return AgeGainMult(st.Age) * CeilingGainMult(st.XP)
	case base < 0:
		return AgeLossMult(st.Age)
	}
	return 1
}

// WeightedRound converts a non-negative magnitude to an integer, rounding
// up with probability equal to the fractional part so the expectation is
// preserved.
func WeightedRound(mag float64, src random.Source) int {
	whole := math.Floor(mag)
	frac := mag - whole
	n := int(whole)
	if random.Chance(src, frac) {
		n++
	}
	return n
}

// Adjustment is the outcome of running one player's base delta through
// the modifiers and gates.
type Adjustment struct {
	PlayerID uint
	Base     int
	Delta    int
	OldXP    int
	NewXP    int
}

// Changed reports whether the adjustment produces an XP write.
func (a Adjustment) Changed() bool { return a.NewXP != a.OldXP }

// AdjustPlayer applies the per-player multiplier, weighted rounding,
// clamping and the second gate to a combined base delta.
func AdjustPlayer(base int, st game.PlayerState, src random.Source) Adjustment {
	adj := Adjustment{PlayerID: st.ID, Base: base, OldXP: st.XP, NewXP: st.XP}
	if base == 0 {
		return adj
	}

	mag := math.Abs(float64(base)) * Multiplier(base, st)
	delta := WeightedRound(mag, src)
	if base < 0 {
		delta = -delta
	}
	delta = clampInt(delta, -MaxPlayerDelta, MaxPlayerDelta)

	gate := lossGateProbability
	if base > 0 {
		gate = gainGateProbability
	}
	if !random.Chance(src, gate) {
		delta = 0
	}

	adj.Delta = delta
	adj.NewXP = ClampXP(st.XP + delta)
	return adj
}

// ClampXP bounds an XP value to [game.MinXP, game.MaxXP].
func ClampXP(xp int) int {
	return clampInt(xp, game.MinXP, game.MaxXP)
}
