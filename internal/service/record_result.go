package service

import (
	"context"
	"time"

	"github.com/ericogr/squadxp/internal/game"
)

// ResultInput is a finished match as reported by the simulator. Either an
// explicit Result or both scores must be present.
type ResultInput struct {
	Result      string
	HomeScore   *int
	AwayScore   *int
	Appearances []game.Appearance
}

// RecordResult stores the result of a match and marks it completed. The
// classification is validated here so a stored completed match always
// has a determinable result.
func RecordResult(ctx context.Context, repo ResultRecorder, matchID uint, in ResultInput) (*game.Match, error) {
	m, err := repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMatchNotFound
	}
	if m.ProgressionApplied {
		return nil, ErrMatchAlreadyProcessed
	}

	m.HomeScore = in.HomeScore
	m.AwayScore = in.AwayScore
	m.Result = game.ResultNone
	if in.Result != "" {
		r, err := game.ParseResult(in.Result)
		if err != nil {
			return nil, err
		}
		m.Result = r
	}
	if _, err := m.Classify(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.Status = game.MatchStatusCompleted
	m.CompletedAt = &now
	for i := range in.Appearances {
		in.Appearances[i].MatchID = m.ID
	}
	if err := repo.SaveMatchResult(ctx, m, in.Appearances); err != nil {
		return nil, err
	}
	return m, nil
}
