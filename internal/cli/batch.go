package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/service"
	"github.com/ericogr/squadxp/internal/storage"
)

// BatchFile describes fixtures and finished matches to replay through the
// progression pipeline.
type BatchFile struct {
	// Seed is the base seed. Match i without its own seed uses Seed+i.
	Seed        int64         `yaml:"seed"`
	Concurrency int           `yaml:"concurrency"`
	Teams       []TeamEntry   `yaml:"teams"`
	FreeAgents  []PlayerEntry `yaml:"free_agents"`
	Matches     []MatchEntry  `yaml:"matches"`
}

type TeamEntry struct {
	ID       uint          `yaml:"id"`
	Name     string        `yaml:"name"`
	Prestige int           `yaml:"prestige"`
	Tier     int           `yaml:"tier"`
	Players  []PlayerEntry `yaml:"players"`
}

type PlayerEntry struct {
	ID       uint   `yaml:"id"`
	Name     string `yaml:"name"`
	XP       int    `yaml:"xp"`
	Age      *int   `yaml:"age"`
	Prestige int    `yaml:"prestige"`
	Slot     *int   `yaml:"slot"`
}

type MatchEntry struct {
	ID           uint              `yaml:"id"`
	Home         uint              `yaml:"home"`
	Away         uint              `yaml:"away"`
	Competition  string            `yaml:"competition"`
	AllowDraws   bool              `yaml:"allow_draws"`
	Result       string            `yaml:"result"`
	HomeScore    *int              `yaml:"home_score"`
	AwayScore    *int              `yaml:"away_score"`
	Appearances  []AppearanceEntry `yaml:"appearances"`
	UserTeamID   *uint             `yaml:"user_team_id"`
	UserPlayerID *uint             `yaml:"user_player_id"`
	Seed         *int64            `yaml:"seed"`
}

type AppearanceEntry struct {
	Player uint `yaml:"player"`
	Kills  int  `yaml:"kills"`
	Deaths int  `yaml:"deaths"`
}

func (m MatchEntry) hasResult() bool {
	return m.Result != "" || (m.HomeScore != nil && m.AwayScore != nil)
}

// LoadBatchFile reads and validates a batch file.
func LoadBatchFile(path string) (*BatchFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file %s: %w", path, err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(b, &bf); err != nil {
		return nil, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	if err := bf.validate(); err != nil {
		return nil, fmt.Errorf("batch file %s: %w", path, err)
	}
	return &bf, nil
}

func (bf *BatchFile) validate() error {
	seen := make(map[uint]bool)
	check := func(p PlayerEntry) error {
		if p.ID == 0 {
			return errors.New("player id is required")
		}
		if seen[p.ID] {
			return fmt.Errorf("player %d listed twice", p.ID)
		}
		seen[p.ID] = true
		if p.XP < game.MinXP || p.XP > game.MaxXP {
			return fmt.Errorf("player %d: xp %d outside [%d,%d]", p.ID, p.XP, game.MinXP, game.MaxXP)
		}
		return nil
	}
	for _, t := range bf.Teams {
		if t.ID == 0 {
			return errors.New("team id is required")
		}
		for _, p := range t.Players {
			if err := check(p); err != nil {
				return err
			}
		}
	}
	for _, p := range bf.FreeAgents {
		if err := check(p); err != nil {
			return err
		}
	}
	for i, m := range bf.Matches {
		if m.ID == 0 || m.Home == 0 || m.Away == 0 {
			return fmt.Errorf("match #%d: id, home and away are required", i+1)
		}
	}
	return nil
}

func (p PlayerEntry) model(slot int) game.Player {
	out := game.Player{Name: p.Name, XP: p.XP, Age: p.Age, Prestige: p.Prestige, RosterSlot: slot}
	if p.Slot != nil {
		out.RosterSlot = *p.Slot
	}
	out.ID = p.ID
	return out
}

// ApplyBatchFile stores the fixtures, records every reported result and
// completes the matches through the progression service.
func ApplyBatchFile(ctx context.Context, repo storage.Repository, settings service.Settings, bf *BatchFile, baseSeed int64) ([]service.BatchResult, error) {
	for _, ts := range bf.Teams {
		t := &game.Team{Name: ts.Name, Prestige: ts.Prestige, Tier: ts.Tier}
		t.ID = ts.ID
		for i, ps := range ts.Players {
			t.Roster = append(t.Roster, ps.model(i))
		}
		if err := repo.UpsertTeam(ctx, t); err != nil {
			return nil, fmt.Errorf("store team %d: %w", ts.ID, err)
		}
	}
	for _, ps := range bf.FreeAgents {
		p := ps.model(0)
		if err := repo.UpsertPlayer(ctx, &p); err != nil {
			return nil, fmt.Errorf("store player %d: %w", ps.ID, err)
		}
	}

	items := make([]service.BatchItem, 0, len(bf.Matches))
	for i, entry := range bf.Matches {
		m := &game.Match{HomeTeamID: entry.Home, AwayTeamID: entry.Away, CompetitionType: entry.Competition, AllowDraws: entry.AllowDraws}
		m.ID = entry.ID
		if err := repo.CreateMatch(ctx, m); err != nil {
			return nil, fmt.Errorf("store match %d: %w", entry.ID, err)
		}
		if entry.hasResult() {
			apps := make([]game.Appearance, len(entry.Appearances))
			for j, a := range entry.Appearances {
				apps[j] = game.Appearance{PlayerID: a.Player, Kills: a.Kills, Deaths: a.Deaths}
			}
			in := service.ResultInput{Result: entry.Result, HomeScore: entry.HomeScore, AwayScore: entry.AwayScore, Appearances: apps}
			if _, err := service.RecordResult(ctx, repo, entry.ID, in); err != nil {
				if !errors.Is(err, service.ErrMatchAlreadyProcessed) {
					return nil, fmt.Errorf("record result of match %d: %w", entry.ID, err)
				}
				logging.Warn("result of a processed match ignored", logging.Fields{constants.LogFieldMatchID: entry.ID})
			}
		}

		seed := baseSeed + int64(i)
		if entry.Seed != nil {
			seed = *entry.Seed
		}
		items = append(items, service.BatchItem{
			MatchID: entry.ID,
			User:    game.UserContext{TeamID: entry.UserTeamID, PlayerID: entry.UserPlayerID},
			Seed:    seed,
		})
	}

	p := service.NewProgression(repo, settings)
	return p.ApplyBatch(ctx, items, bf.Concurrency)
}
