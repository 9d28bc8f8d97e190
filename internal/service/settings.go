package service

import (
	"strings"

	"github.com/ericogr/squadxp/internal/engine"
	"github.com/ericogr/squadxp/internal/game"
)

// Settings tunes the progression pipeline.
type Settings struct {
	MinSquadLength int
	ScalingFactor  float64
	// ExemptCompetitionTypes lists competition types (lowercase) that never
	// move XP, e.g. casual or exhibition formats.
	ExemptCompetitionTypes []string
	// DefaultXP is the untouched XP a new player starts with.
	DefaultXP int
}

func DefaultSettings() Settings {
	return Settings{
		MinSquadLength:         engine.DefaultMinSquadLength,
		ScalingFactor:          engine.DefaultScalingFactor,
		ExemptCompetitionTypes: []string{game.CompetitionFriendly, game.CompetitionExhibition},
		DefaultXP:              game.MinXP,
	}
}

// IsExempt reports whether a competition type is excluded from progression.
func (s Settings) IsExempt(competitionType string) bool {
	c := strings.ToLower(strings.TrimSpace(competitionType))
	for _, e := range s.ExemptCompetitionTypes {
		if e == c {
			return true
		}
	}
	return false
}

func (s Settings) withDefaults() Settings {
	if s.MinSquadLength <= 0 {
		s.MinSquadLength = engine.DefaultMinSquadLength
	}
	if s.ScalingFactor <= 0 {
		s.ScalingFactor = engine.DefaultScalingFactor
	}
	return s
}
