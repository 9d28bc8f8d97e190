package storage

import (
	"context"
	"errors"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/service"
)

// ErrStaleXP is returned by CommitXP when a player's stored XP no longer
// matches the value the update was computed from.
var ErrStaleXP = errors.New("player xp changed since it was read")

// Repository is the persistence surface of the progression service. Every
// lookup returns (nil, nil) when the row does not exist.
type Repository interface {
	service.MatchRepo
	service.SeedRepo
	service.ResultRecorder

	// Fixture loading used by the operator CLI.
	UpsertTeam(ctx context.Context, t *game.Team) error
	UpsertPlayer(ctx context.Context, p *game.Player) error
	CreateMatch(ctx context.Context, m *game.Match) error
}
