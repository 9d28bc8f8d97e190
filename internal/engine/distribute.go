package engine

import (
	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/random"
)

// Number of squad members touched by a magnitude-1 delta, and the number
// that receive the extra point of a magnitude-2 delta.
const (
	singlePickCount = 3
	doublePickCount = 2
)

// Distribute fans a team delta out to squad members. Every squad member
// is present in the result; untouched members map to 0.
//
//	|delta| == 1: up to 3 distinct members get sign*1.
//	|delta| == 2: everyone gets sign*1, then up to 2 distinct members get
//	              another sign*1.
func Distribute(teamDelta int, squad []game.Player, src random.Source) map[uint]int {
	out := make(map[uint]int, len(squad))
	for _, p := range squad {
		out[p.ID] = 0
	}
	if teamDelta == 0 || len(squad) == 0 {
		return out
	}

	sign := 1
	mag := teamDelta
	if teamDelta < 0 {
		sign = -1
		mag = -teamDelta
	}
	if mag > MaxTeamDelta {
		mag = MaxTeamDelta
	}

	switch mag {
	case 1:
		for _, idx := range random.Sample(src, len(squad), singlePickCount) {
			out[squad[idx].ID] += sign
		}
	case 2:
		for _, p := range squad {
			out[p.ID] += sign
		}
		for _, idx := range random.Sample(src, len(squad), doublePickCount) {
			out[squad[idx].ID] += sign
		}
	}
	return out
}

// Merge sums per-player contributions by ID, dropping zero totals.
func Merge(parts ...map[uint]int) map[uint]int {
	out := make(map[uint]int)
	for _, part := range parts {
		for id, d := range part {
			out[id] += d
		}
	}
	for id, d := range out {
		if d == 0 {
			delete(out, id)
		}
	}
	return out
}
