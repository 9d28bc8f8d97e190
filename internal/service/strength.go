package service

import (
	"context"

	"github.com/ericogr/squadxp/internal/engine"
	"github.com/ericogr/squadxp/internal/game"
)

// TeamStrength loads a team and computes its rating and squad as the
// progression pipeline would see them.
func TeamStrength(ctx context.Context, repo interface {
	GetTeamWithRoster(context.Context, uint) (*game.Team, error)
}, settings Settings, teamID uint, user game.UserContext) (*engine.Strength, error) {
	settings = settings.withDefaults()
	t, err := repo.GetTeamWithRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTeamNotFound
	}
	s := engine.TeamStrength(t, user, settings.MinSquadLength)
	return &s, nil
}
