package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/service"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetPlayerByID(ctx context.Context, id uint) (*game.Player, error) {
	var p game.Player
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetTeamWithRoster preloads the roster in roster order so squad selection
// sees the same players on every load.
func (r *sqliteRepository) GetTeamWithRoster(ctx context.Context, id uint) (*game.Team, error) {
	var t game.Team
	err := r.db.WithContext(ctx).
		Preload("Roster", func(db *gorm.DB) *gorm.DB { return db.Order("roster_slot ASC, id ASC") }).
		First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) GetMatchByID(ctx context.Context, id uint) (*game.Match, error) {
	var m game.Match
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *sqliteRepository) LoadPlayerStates(ctx context.Context, ids []uint) ([]game.PlayerState, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var players []game.Player
	if err := r.db.WithContext(ctx).Select("id", "xp", "age").Where("id IN ?", ids).Find(&players).Error; err != nil {
		return nil, err
	}
	out := make([]game.PlayerState, len(players))
	for i := range players {
		out[i] = game.PlayerState{ID: players[i].ID, XP: players[i].XP, Age: players[i].Age}
	}
	return out, nil
}

// CommitXP writes every update and, for a nonzero matchID, the match's
// processed flag in one transaction. Each row is guarded by its old XP;
// one stale row rolls the whole set back.
func (r *sqliteRepository) CommitXP(ctx context.Context, matchID uint, updates []game.XPUpdate) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if matchID != 0 {
		res := tx.Model(&game.Match{}).
			Where("id = ? AND progression_applied = ?", matchID, false).
			Update("progression_applied", true)
		if res.Error != nil {
			tx.Rollback()
			return res.Error
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return service.ErrMatchAlreadyProcessed
		}
	}

	for _, u := range updates {
		res := tx.Model(&game.Player{}).
			Where("id = ? AND xp = ?", u.PlayerID, u.OldXP).
			Update("xp", u.NewXP)
		if res.Error != nil {
			tx.Rollback()
			return res.Error
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return ErrStaleXP
		}
	}

	return tx.Commit().Error
}

func (r *sqliteRepository) MarkProgressionApplied(ctx context.Context, matchID uint) error {
	return r.db.WithContext(ctx).Model(&game.Match{}).Where("id = ?", matchID).Update("progression_applied", true).Error
}

// ListQualifyingAppearances returns the player's appearances in completed
// matches whose competition type is not exempt, oldest first.
func (r *sqliteRepository) ListQualifyingAppearances(ctx context.Context, playerID uint, exempt []string) ([]game.Appearance, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN matches ON matches.id = match_appearances.match_id AND matches.deleted_at IS NULL").
		Where("match_appearances.player_id = ? AND matches.status = ?", playerID, game.MatchStatusCompleted)
	if len(exempt) > 0 {
		lowered := make([]string, len(exempt))
		for i, e := range exempt {
			lowered[i] = strings.ToLower(strings.TrimSpace(e))
		}
		q = q.Where("lower(trim(matches.competition_type)) NOT IN ?", lowered)
	}
	var apps []game.Appearance
	if err := q.Order("matches.completed_at ASC, match_appearances.id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// SetSeedXP only writes when the player is still teamless and holds
// expectedXP. The boolean reports whether the row changed.
func (r *sqliteRepository) SetSeedXP(ctx context.Context, playerID uint, expectedXP, newXP int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&game.Player{}).
		Where("id = ? AND xp = ? AND team_id IS NULL", playerID, expectedXP).
		Update("xp", newXP)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SaveMatchResult stores the match row and its appearances together.
// Re-reporting a player's appearance overwrites the previous numbers.
func (r *sqliteRepository) SaveMatchResult(ctx context.Context, m *game.Match, appearances []game.Appearance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		if len(appearances) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "match_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kills", "deaths", "updated_at"}),
		}).Create(&appearances).Error
	})
}

// UpsertTeam creates or replaces the team row. Roster players are upserted
// with their team id set.
func (r *sqliteRepository) UpsertTeam(ctx context.Context, t *game.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roster := t.Roster
		t.Roster = nil
		defer func() { t.Roster = roster }()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "prestige", "tier", "updated_at"}),
		}).Create(t).Error; err != nil {
			return err
		}
		for i := range roster {
			roster[i].TeamID = &t.ID
			if err := upsertPlayer(tx, &roster[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) UpsertPlayer(ctx context.Context, p *game.Player) error {
	return upsertPlayer(r.db.WithContext(ctx), p)
}

// upsertPlayer only sets XP on insert; afterwards XP belongs to the
// progression pipeline.
func upsertPlayer(db *gorm.DB, p *game.Player) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "age", "prestige", "team_id", "roster_slot", "updated_at"}),
	}).Create(p).Error
}

// CreateMatch inserts a scheduled match. An existing row with the same id
// is left untouched.
func (r *sqliteRepository) CreateMatch(ctx context.Context, m *game.Match) error {
	if m.Status == "" {
		m.Status = game.MatchStatusScheduled
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}
