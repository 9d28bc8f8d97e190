package service

import (
	"context"
	"errors"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/dedupe"
	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/keys"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/random"
)

var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrTeamNotFound          = errors.New("team not found")
	ErrMatchNotCompleted     = errors.New("match is not completed")
	ErrMatchAlreadyProcessed = errors.New("match progression already applied")
)

// Progression owns the per-player locks shared by every match completion
// running in this process.
type Progression struct {
	repo     MatchRepo
	settings Settings
	locks    *PlayerLocks
}

func NewProgression(repo MatchRepo, settings Settings) *Progression {
	return &Progression{repo: repo, settings: settings.withDefaults(), locks: NewPlayerLocks()}
}

func (p *Progression) Settings() Settings { return p.settings }

// CompleteMatch applies progression for a stored match exactly once.
// Concurrent calls for the same match share one execution; a later call
// for an already processed match returns ErrMatchAlreadyProcessed.
func (p *Progression) CompleteMatch(ctx context.Context, matchID uint, user game.UserContext, src random.Source) (*Report, error) {
	v, err, _ := dedupe.MatchGroup.Do(keys.MatchKey(matchID), func() (interface{}, error) {
		return p.completeMatch(ctx, matchID, user, src)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Report), nil
}

func (p *Progression) completeMatch(ctx context.Context, matchID uint, user game.UserContext, src random.Source) (*Report, error) {
	m, err := p.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if m.ProgressionApplied {
		return nil, ErrMatchAlreadyProcessed
	}
	if m.Status != game.MatchStatusCompleted {
		return nil, ErrMatchNotCompleted
	}

	home, away, err := p.loadTeams(ctx, m)
	if err != nil {
		return nil, err
	}
	unlock := p.locks.Lock(append(rosterIDs(home), rosterIDs(away)...))
	defer unlock()

	// Reload under the lock so ratings use XP no other match is changing.
	home, away, err = p.loadTeams(ctx, m)
	if err != nil {
		return nil, err
	}

	outcome := MatchOutcome{
		MatchID:         m.ID,
		Home:            home,
		Away:            away,
		Completed:       true,
		CompetitionType: m.CompetitionType,
	}
	if res, cerr := m.Classify(); cerr == nil {
		outcome.Result = res
	}

	rep, err := ApplyMatchOutcome(ctx, p.repo, p.settings, outcome, user, src)
	if err != nil {
		return nil, err
	}
	if !rep.Committed {
		if !rep.Skipped.Final() {
			logging.Warn("match skipped", logging.Fields{
				constants.LogFieldMatchID:    m.ID,
				constants.LogFieldHomeTeamID: m.HomeTeamID,
				constants.LogFieldAwayTeamID: m.AwayTeamID,
				constants.LogFieldReason:     string(rep.Skipped),
			})
			return rep, nil
		}
		if err := p.repo.MarkProgressionApplied(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// loadTeams returns nil for a team that does not exist; the pipeline
// treats that as incomplete input.
func (p *Progression) loadTeams(ctx context.Context, m *game.Match) (*game.Team, *game.Team, error) {
	home, err := p.repo.GetTeamWithRoster(ctx, m.HomeTeamID)
	if err != nil {
		return nil, nil, err
	}
	away, err := p.repo.GetTeamWithRoster(ctx, m.AwayTeamID)
	if err != nil {
		return nil, nil, err
	}
	return home, away, nil
}

func rosterIDs(t *game.Team) []uint {
	if t == nil {
		return nil
	}
	ids := make([]uint, len(t.Roster))
	for i := range t.Roster {
		ids[i] = t.Roster[i].ID
	}
	return ids
}
