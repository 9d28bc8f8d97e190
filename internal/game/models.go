package game

import (
	"time"

	"gorm.io/gorm"
)

const (
	// MinXP and MaxXP bound every persisted XP value.
	MinXP = 0
	MaxXP = 100
)

type Player struct {
	gorm.Model
	Name string `json:"name" gorm:"size:64"`
	// XP is the bounded progression score. Writes outside [MinXP, MaxXP]
	// are never issued by this service.
	XP       int  `json:"xp" gorm:"not null;default:0"`
	Age      *int `json:"age"`
	Prestige int  `json:"prestige"`
	// TeamID is nil for free agents.
	TeamID *uint `json:"team_id" gorm:"index"`
	// RosterSlot orders players inside a team roster. Squad selection
	// relies on this ordering being stable.
	RosterSlot int `json:"roster_slot"`
}

// Store players in a dedicated table name so it does not clash with
// external account tables.
func (Player) TableName() string { return "roster_players" }

type Team struct {
	gorm.Model
	Name     string   `json:"name" gorm:"size:64"`
	Prestige int      `json:"prestige"`
	Tier     int      `json:"tier"`
	Roster   []Player `json:"roster" gorm:"foreignKey:TeamID"`
}

// Match status values.
const (
	MatchStatusScheduled = "scheduled"
	MatchStatusCompleted = "completed"
)

// Competition types. Anything not listed here is still accepted; the
// exemption list in the progression settings decides what counts.
const (
	CompetitionLeague     = "league"
	CompetitionCup        = "cup"
	CompetitionFriendly   = "friendly"
	CompetitionExhibition = "exhibition"
)

type Match struct {
	gorm.Model
	HomeTeamID      uint   `json:"home_team_id" gorm:"index"`
	AwayTeamID      uint   `json:"away_team_id" gorm:"index"`
	Status          string `json:"status" gorm:"size:16"`
	CompetitionType string `json:"competition_type" gorm:"size:32"`
	Result          Result `json:"result" gorm:"size:8"`
	HomeScore       *int   `json:"home_score"`
	AwayScore       *int   `json:"away_score"`
	AllowDraws      bool   `json:"allow_draws"`
	// ProgressionApplied is the "already processed" flag. It is set in the
	// same transaction that writes the XP changes of the match.
	ProgressionApplied bool       `json:"progression_applied"`
	CompletedAt        *time.Time `json:"completed_at"`
}

func (Match) TableName() string { return "matches" }

// Appearance records one player's participation in a match. Kills and
// deaths feed the early KD ratio used for seeding.
type Appearance struct {
	gorm.Model
	PlayerID uint `json:"player_id" gorm:"index;uniqueIndex:idx_appearance_player_match"`
	MatchID  uint `json:"match_id" gorm:"index;uniqueIndex:idx_appearance_player_match"`
	Kills    int  `json:"kills"`
	Deaths   int  `json:"deaths"`
}

func (Appearance) TableName() string { return "match_appearances" }

// UserContext identifies the human user's own team and personal player.
// Both are optional.
type UserContext struct {
	TeamID   *uint `json:"team_id"`
	PlayerID *uint `json:"player_id"`
}

// IsUserTeam reports whether teamID is the user's own team.
func (u UserContext) IsUserTeam(teamID uint) bool {
	return u.TeamID != nil && *u.TeamID == teamID
}

// PlayerState is the minimal state the adjuster needs for one player.
type PlayerState struct {
	ID  uint
	XP  int
	Age *int
}

// XPUpdate is one pending XP write.
type XPUpdate struct {
	PlayerID uint `json:"player_id"`
	OldXP    int  `json:"old_xp"`
	NewXP    int  `json:"new_xp"`
}
