package service

import (
	"context"
	"sort"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/engine"
	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/keys"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/random"
)

// SkipReason explains why a match produced no XP writes.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipNotCompleted  SkipReason = "not_completed"
	SkipExempt        SkipReason = "exempt_competition"
	SkipIncomplete    SkipReason = "input_incomplete"
	SkipInvalidResult SkipReason = "invalid_result"
	SkipNoTeamDelta   SkipReason = "no_team_delta"
	SkipNoChange      SkipReason = "no_xp_change"
)

// Final reports whether a skipped match can be flagged as processed.
// Incomplete input and undeterminable results may be fixed and retried.
func (r SkipReason) Final() bool {
	switch r {
	case SkipExempt, SkipNoTeamDelta, SkipNoChange:
		return true
	}
	return false
}

// MatchOutcome is the input of one progression run.
type MatchOutcome struct {
	MatchID         uint
	Home            *game.Team
	Away            *game.Team
	Result          game.Result
	Completed       bool
	CompetitionType string
}

// Report describes what a progression run computed and committed.
type Report struct {
	MatchID      uint            `json:"match_id"`
	Skipped      SkipReason      `json:"skipped,omitempty"`
	HomeRating   float64         `json:"home_rating"`
	AwayRating   float64         `json:"away_rating"`
	ExpectedHome float64         `json:"expected_home"`
	ActualHome   float64         `json:"actual_home"`
	TeamDelta    int             `json:"team_delta"`
	Updates      []game.XPUpdate `json:"updates"`
	Committed    bool            `json:"committed"`
}

// ApplyMatchOutcome runs the progression pipeline for one completed match:
// team strength, expected score, team delta, squad distribution, per-player
// adjustment and one atomic commit. Missing input is a silent no-op
// reported through Report.Skipped. A commit failure is returned unmodified.
//
// There is no idempotency check here; calling it twice for the same match
// applies progression twice.
func ApplyMatchOutcome(ctx context.Context, store XPStore, settings Settings, m MatchOutcome, user game.UserContext, src random.Source) (*Report, error) {
	settings = settings.withDefaults()
	rep := &Report{MatchID: m.MatchID}

	if !m.Completed {
		return skip(rep, SkipNotCompleted), nil
	}
	if settings.IsExempt(m.CompetitionType) {
		return skip(rep, SkipExempt), nil
	}
	if m.Home == nil || m.Away == nil {
		return skip(rep, SkipIncomplete), nil
	}

	home := engine.TeamStrength(m.Home, user, settings.MinSquadLength)
	away := engine.TeamStrength(m.Away, user, settings.MinSquadLength)
	if len(home.Squad) == 0 || len(away.Squad) == 0 {
		return skip(rep, SkipIncomplete), nil
	}
	actual, ok := m.Result.ActualScore()
	if !ok {
		return skip(rep, SkipInvalidResult), nil
	}

	rep.HomeRating = home.Rating
	rep.AwayRating = away.Rating
	rep.ExpectedHome = engine.WinProbability(home.Rating, away.Rating, settings.ScalingFactor)
	rep.ActualHome = actual

	rep.TeamDelta = engine.TeamDelta(rep.ExpectedHome, actual, src)
	if rep.TeamDelta == 0 {
		return skip(rep, SkipNoTeamDelta), nil
	}

	merged := engine.Merge(
		engine.Distribute(rep.TeamDelta, home.Squad, src),
		engine.Distribute(-rep.TeamDelta, away.Squad, src),
	)
	if len(merged) == 0 {
		return skip(rep, SkipNoChange), nil
	}

	ids := make([]uint, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	// Adjust in id order so a seeded source replays identically.
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	states, err := store.LoadPlayerStates(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]game.PlayerState, len(states))
	for _, st := range states {
		byID[st.ID] = st
	}

	for _, id := range ids {
		st, ok := byID[id]
		if !ok {
			continue
		}
		adj := engine.AdjustPlayer(merged[id], st, src)
		if adj.Changed() {
			rep.Updates = append(rep.Updates, game.XPUpdate{PlayerID: id, OldXP: adj.OldXP, NewXP: adj.NewXP})
		}
	}
	if len(rep.Updates) == 0 {
		return skip(rep, SkipNoChange), nil
	}

	if err := store.CommitXP(ctx, m.MatchID, rep.Updates); err != nil {
		logging.Error("xp commit failed", err, logging.Fields{constants.LogFieldMatchID: m.MatchID, constants.LogFieldUpdates: len(rep.Updates)})
		return nil, err
	}
	rep.Committed = true
	changed := make([]uint, len(rep.Updates))
	for i, u := range rep.Updates {
		changed[i] = u.PlayerID
	}
	logging.Info("match progression applied", logging.Fields{
		constants.LogFieldPlayers:      keys.PlayerSetKey(changed),
		constants.LogFieldMatchID:      m.MatchID,
		constants.LogFieldExpectedHome: rep.ExpectedHome,
		constants.LogFieldActualHome:   rep.ActualHome,
		constants.LogFieldTeamDelta:    rep.TeamDelta,
		constants.LogFieldUpdates:      len(rep.Updates),
	})
	return rep, nil
}

func skip(rep *Report, reason SkipReason) *Report {
	rep.Skipped = reason
	return rep
}
