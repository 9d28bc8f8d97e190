package service

import (
	"context"
	"errors"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/engine"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/random"
)

// SeedMatchCount is the number of completed qualifying matches a free
// agent must have played, exactly, for seeding to fire.
const SeedMatchCount = 3

var ErrPlayerNotFound = errors.New("player not found")

// Seed skip reasons.
const (
	SkipHasTeam      SkipReason = "has_team"
	SkipXPTouched    SkipReason = "xp_already_set"
	SkipMatchCount   SkipReason = "match_count"
	SkipLostSeedRace SkipReason = "xp_changed_concurrently"
)

type SeedResult struct {
	PlayerID uint       `json:"player_id"`
	Seeded   bool       `json:"seeded"`
	XP       int        `json:"xp"`
	KD       float64    `json:"kd"`
	Skipped  SkipReason `json:"skipped,omitempty"`
}

// SeedPlayer assigns initial XP to a teamless player from the KD ratio of
// their first qualifying matches. It fires once: afterwards the player no
// longer holds the default XP and every further call is a no-op.
func SeedPlayer(ctx context.Context, repo SeedRepo, settings Settings, playerID uint, src random.Source) (*SeedResult, error) {
	p, err := repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	res := &SeedResult{PlayerID: playerID, XP: p.XP}
	if p.TeamID != nil {
		res.Skipped = SkipHasTeam
		return res, nil
	}
	if p.XP != settings.DefaultXP {
		res.Skipped = SkipXPTouched
		return res, nil
	}

	apps, err := repo.ListQualifyingAppearances(ctx, playerID, settings.ExemptCompetitionTypes)
	if err != nil {
		return nil, err
	}
	if len(apps) != SeedMatchCount {
		res.Skipped = SkipMatchCount
		return res, nil
	}
	kills, deaths := 0, 0
	for _, a := range apps {
		kills += a.Kills
		deaths += a.Deaths
	}
	res.KD = engine.KDRatio(kills, deaths)
	xp := engine.ComputeSeedXP(res.KD, src)

	ok, err := repo.SetSeedXP(ctx, playerID, settings.DefaultXP, xp)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Skipped = SkipLostSeedRace
		return res, nil
	}
	res.Seeded = true
	res.XP = xp
	logging.Info("player seeded", logging.Fields{
		constants.LogFieldPlayerID: playerID,
		constants.LogFieldKD:       res.KD,
		constants.LogFieldSeedXP:   xp,
	})
	return res, nil
}
