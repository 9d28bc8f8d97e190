package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/service"
)

// Env holds process settings read from environment variables.
type Env struct {
	Addr       string `env:"PROGRESSION_ADDR" envDefault:":8080"`
	DBPath     string `env:"PROGRESSION_DB" envDefault:"./data/progression.db"`
	ConfigPath string `env:"PROGRESSION_CONFIG"`
	// Seed fixes the random source for every request when non-zero, which
	// makes a whole server run replayable. Zero draws a fresh seed per call.
	Seed int64 `env:"PROGRESSION_SEED"`
}

type rawConfig struct {
	MinSquadLength         *int     `json:"min_squad_length"`
	ScalingFactor          *float64 `json:"scaling_factor"`
	ExemptCompetitionTypes []string `json:"exempt_competition_types"`
	DefaultXP              *int     `json:"default_xp"`
	Server                 *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the process environment and the progression
// tuning derived from the optional config file.
type LoadedConfig struct {
	Env
	Settings service.Settings
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment and, when PROGRESSION_CONFIG points to a
// file, applies the tuning it contains on top of the defaults.
func Load() (*LoadedConfig, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return nil, err
	}
	cfg := &LoadedConfig{Env: e, Settings: service.DefaultSettings()}
	if strings.TrimSpace(e.ConfigPath) == "" {
		return cfg, nil
	}
	if err := applyFile(cfg, e.ConfigPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile applies the tuning file at path to the default settings.
func LoadFile(path string) (service.Settings, error) {
	cfg := &LoadedConfig{Settings: service.DefaultSettings()}
	if err := applyFile(cfg, path); err != nil {
		return service.Settings{}, err
	}
	return cfg.Settings, nil
}

func applyFile(cfg *LoadedConfig, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	s := &cfg.Settings
	if rc.MinSquadLength != nil {
		if *rc.MinSquadLength < 2 {
			return fmt.Errorf("config file %s: min_squad_length must be at least 2, got %d", path, *rc.MinSquadLength)
		}
		s.MinSquadLength = *rc.MinSquadLength
	}
	if rc.ScalingFactor != nil {
		if *rc.ScalingFactor <= 0 {
			return fmt.Errorf("config file %s: scaling_factor must be positive, got %v", path, *rc.ScalingFactor)
		}
		s.ScalingFactor = *rc.ScalingFactor
	}
	if rc.DefaultXP != nil {
		if *rc.DefaultXP < game.MinXP || *rc.DefaultXP > game.MaxXP {
			return fmt.Errorf("config file %s: default_xp must be within [%d,%d], got %d", path, game.MinXP, game.MaxXP, *rc.DefaultXP)
		}
		s.DefaultXP = *rc.DefaultXP
	}
	if rc.ExemptCompetitionTypes != nil {
		exempt := make([]string, 0, len(rc.ExemptCompetitionTypes))
		for _, c := range rc.ExemptCompetitionTypes {
			c = strings.ToLower(strings.TrimSpace(c))
			if c == "" {
				return fmt.Errorf("config file %s: exempt_competition_types contains an empty entry", path)
			}
			exempt = append(exempt, c)
		}
		s.ExemptCompetitionTypes = exempt
	}
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.Addr = rc.Server.Address
	}
	return nil
}
