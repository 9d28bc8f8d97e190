package engine

import (
	"sort"

	"github.com/ericogr/squadxp/internal/game"
)

// DefaultMinSquadLength is the number of players a team fields.
const DefaultMinSquadLength = 5

// Strength is a team's scalar rating together with the squad it was
// computed from. The same squad receives the distributed deltas.
type Strength struct {
	TeamID uint
	Rating float64
	Squad  []game.Player
}

// SquadIDs returns the squad player IDs in squad order.
func (s Strength) SquadIDs() []uint {
	ids := make([]uint, len(s.Squad))
	for i := range s.Squad {
		ids[i] = s.Squad[i].ID
	}
	return ids
}

// SquadTarget returns how many players make up the squad. The user's own
// team fields one slot fewer because the user's personal player is not
// part of the computed squad.
func SquadTarget(minSquadLength int, userTeam bool) int {
	if userTeam {
		return minSquadLength - 1
	}
	return minSquadLength
}

// TotalXP is the per-player contribution to team rating.
func TotalXP(xp int) int {
	return ClampXP(xp)
}

// SelectSquad picks the squad from the roster in stable roster order
// (RosterSlot, then ID). On the user's team the user's player is skipped.
func SelectSquad(team *game.Team, user game.UserContext, minSquadLength int) []game.Player {
	if team == nil || len(team.Roster) == 0 {
		return nil
	}
	userTeam := user.IsUserTeam(team.ID)
	target := SquadTarget(minSquadLength, userTeam)
	if target <= 0 {
		return nil
	}

	roster := make([]game.Player, len(team.Roster))
	copy(roster, team.Roster)
	sort.SliceStable(roster, func(i, j int) bool {
		if roster[i].RosterSlot != roster[j].RosterSlot {
			return roster[i].RosterSlot < roster[j].RosterSlot
		}
		return roster[i].ID < roster[j].ID
	})

	squad := make([]game.Player, 0, target)
	for _, p := range roster {
		if len(squad) == target {
			break
		}
		if userTeam && user.PlayerID != nil && p.ID == *user.PlayerID {
			continue
		}
		squad = append(squad, p)
	}
	return squad
}

// TeamStrength computes rating = sum of squad TotalXP + prestige + tier.
func TeamStrength(team *game.Team, user game.UserContext, minSquadLength int) Strength {
	if team == nil {
		return Strength{}
	}
	squad := SelectSquad(team, user, minSquadLength)
	total := 0
	for _, p := range squad {
		total += TotalXP(p.XP)
	}
	return Strength{
		TeamID: team.ID,
		Rating: float64(total + team.Prestige + team.Tier),
		Squad:  squad,
	}
}
