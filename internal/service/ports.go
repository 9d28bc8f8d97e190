package service

import (
	"context"

	"github.com/ericogr/squadxp/internal/game"
)

// XPStore is the persistence port of the progression pipeline.
type XPStore interface {
	// LoadPlayerStates returns xp and age for the given ids. Unknown ids
	// are omitted from the result.
	LoadPlayerStates(ctx context.Context, ids []uint) ([]game.PlayerState, error)
	// CommitXP writes every update in one transaction. When matchID is
	// non-zero the match is flagged as processed in the same transaction.
	// Either everything commits or nothing does.
	CommitXP(ctx context.Context, matchID uint, updates []game.XPUpdate) error
}

// MatchRepo is what match completion needs on top of XPStore.
type MatchRepo interface {
	XPStore
	// GetMatchByID and GetTeamWithRoster return (nil, nil) when the row
	// does not exist.
	GetMatchByID(ctx context.Context, id uint) (*game.Match, error)
	GetTeamWithRoster(ctx context.Context, id uint) (*game.Team, error)
	MarkProgressionApplied(ctx context.Context, matchID uint) error
}

// SeedRepo is what player seeding needs.
type SeedRepo interface {
	// GetPlayerByID returns (nil, nil) when the player does not exist.
	GetPlayerByID(ctx context.Context, id uint) (*game.Player, error)
	// ListQualifyingAppearances returns the player's appearances in
	// completed matches whose competition type is not in exempt.
	ListQualifyingAppearances(ctx context.Context, playerID uint, exempt []string) ([]game.Appearance, error)
	// SetSeedXP writes newXP only if the player still holds expectedXP and
	// reports whether the row was updated.
	SetSeedXP(ctx context.Context, playerID uint, expectedXP, newXP int) (bool, error)
}

// ResultRecorder stores match results reported by the simulator.
type ResultRecorder interface {
	GetMatchByID(ctx context.Context, id uint) (*game.Match, error)
	SaveMatchResult(ctx context.Context, m *game.Match, appearances []game.Appearance) error
}
