package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ericogr/squadxp/internal/game"
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func newPlayer(id uint, teamID *uint, slot, xp int) game.Player {
	p := game.Player{XP: xp, TeamID: teamID, RosterSlot: slot}
	p.ID = id
	return p
}

// memRepo is an in-memory MatchRepo/SeedRepo/ResultRecorder.
type memRepo struct {
	mu          sync.Mutex
	players     map[uint]*game.Player
	teams       map[uint]*game.Team
	matches     map[uint]*game.Match
	appearances []game.Appearance

	commitErr   error
	commits     int
	loadCalls   int
	markCalls   int
	lastUpdates []game.XPUpdate
}

func newMemRepo() *memRepo {
	return &memRepo{
		players: map[uint]*game.Player{},
		teams:   map[uint]*game.Team{},
		matches: map[uint]*game.Match{},
	}
}

// addTeam registers a team with n players whose ids start at firstID.
func (r *memRepo) addTeam(id uint, firstID uint, n, xp int) {
	t := &game.Team{}
	t.ID = id
	r.teams[id] = t
	for i := 0; i < n; i++ {
		p := newPlayer(firstID+uint(i), uintPtr(id), i, xp)
		r.players[p.ID] = &p
	}
}

func (r *memRepo) addMatch(id, home, away uint, result game.Result, status string) *game.Match {
	m := &game.Match{HomeTeamID: home, AwayTeamID: away, Result: result, Status: status, CompetitionType: game.CompetitionLeague}
	m.ID = id
	r.matches[id] = m
	return m
}

func (r *memRepo) xp(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.players[id].XP
}

func (r *memRepo) GetTeamWithRoster(_ context.Context, id uint) (*game.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, nil
	}
	out := *t
	out.Roster = nil
	for _, p := range r.players {
		if p.TeamID != nil && *p.TeamID == id {
			out.Roster = append(out.Roster, *p)
		}
	}
	return &out, nil
}

func (r *memRepo) GetMatchByID(_ context.Context, id uint) (*game.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) MarkProgressionApplied(_ context.Context, matchID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markCalls++
	if m, ok := r.matches[matchID]; ok {
		m.ProgressionApplied = true
	}
	return nil
}

func (r *memRepo) LoadPlayerStates(_ context.Context, ids []uint) ([]game.PlayerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadCalls++
	out := make([]game.PlayerState, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			out = append(out, game.PlayerState{ID: p.ID, XP: p.XP, Age: p.Age})
		}
	}
	return out, nil
}

var errStale = errors.New("stale xp")

// CommitXP validates every update before applying any of them, so a
// failure leaves the players untouched.
func (r *memRepo) CommitXP(_ context.Context, matchID uint, updates []game.XPUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.commitErr != nil {
		return r.commitErr
	}
	for _, u := range updates {
		if p, ok := r.players[u.PlayerID]; !ok || p.XP != u.OldXP {
			return errStale
		}
	}
	if m, ok := r.matches[matchID]; ok {
		if m.ProgressionApplied {
			return ErrMatchAlreadyProcessed
		}
		m.ProgressionApplied = true
	}
	for _, u := range updates {
		r.players[u.PlayerID].XP = u.NewXP
	}
	r.commits++
	r.lastUpdates = append([]game.XPUpdate(nil), updates...)
	return nil
}

func (r *memRepo) GetPlayerByID(_ context.Context, id uint) (*game.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) ListQualifyingAppearances(_ context.Context, playerID uint, exempt []string) ([]game.Appearance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Settings{ExemptCompetitionTypes: exempt}
	var out []game.Appearance
	for _, a := range r.appearances {
		m, ok := r.matches[a.MatchID]
		if a.PlayerID != playerID || !ok || m.Status != game.MatchStatusCompleted || s.IsExempt(m.CompetitionType) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *memRepo) SetSeedXP(_ context.Context, playerID uint, expectedXP, newXP int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok || p.XP != expectedXP {
		return false, nil
	}
	p.XP = newXP
	return true, nil
}

func (r *memRepo) SaveMatchResult(_ context.Context, m *game.Match, appearances []game.Appearance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.matches[m.ID] = &cp
	r.appearances = append(r.appearances, appearances...)
	return nil
}
