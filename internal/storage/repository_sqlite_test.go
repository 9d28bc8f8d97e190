package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/random"
	"github.com/ericogr/squadxp/internal/service"
)

func uintPtr(v uint) *uint { return &v }

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenAndMigrate(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewSQLiteRepository(db)
}

// seedTeam stores a team whose players are inserted in reverse roster order.
func seedTeam(t *testing.T, repo Repository, id, firstID uint, n, xp int) {
	t.Helper()
	team := &game.Team{Name: "team"}
	team.ID = id
	for i := n - 1; i >= 0; i-- {
		p := game.Player{Name: "p", XP: xp, RosterSlot: i}
		p.ID = firstID + uint(i)
		team.Roster = append(team.Roster, p)
	}
	if err := repo.UpsertTeam(context.Background(), team); err != nil {
		t.Fatalf("upsert team %d: %v", id, err)
	}
}

func seedMatch(t *testing.T, repo Repository, id, home, away uint, result game.Result) {
	t.Helper()
	now := time.Now().UTC()
	m := &game.Match{HomeTeamID: home, AwayTeamID: away, Status: game.MatchStatusCompleted, CompetitionType: game.CompetitionLeague, Result: result, CompletedAt: &now}
	m.ID = id
	if err := repo.CreateMatch(context.Background(), m); err != nil {
		t.Fatalf("create match %d: %v", id, err)
	}
}

func TestGetTeamWithRoster_OrdersBySlot(t *testing.T) {
	repo := newTestRepo(t)
	seedTeam(t, repo, 1, 1, 4, 10)
	team, err := repo.GetTeamWithRoster(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(team.Roster) != 4 {
		t.Fatalf("expected 4 roster players, got %d", len(team.Roster))
	}
	for i, p := range team.Roster {
		if p.RosterSlot != i || p.ID != uint(1+i) {
			t.Fatalf("roster[%d] = id %d slot %d, want slot order", i, p.ID, p.RosterSlot)
		}
	}
}

func TestLookups_MissingRowsReturnNil(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if tm, err := repo.GetTeamWithRoster(ctx, 9); tm != nil || err != nil {
		t.Fatalf("expected (nil, nil) for missing team, got %v %v", tm, err)
	}
	if m, err := repo.GetMatchByID(ctx, 9); m != nil || err != nil {
		t.Fatalf("expected (nil, nil) for missing match, got %v %v", m, err)
	}
	if p, err := repo.GetPlayerByID(ctx, 9); p != nil || err != nil {
		t.Fatalf("expected (nil, nil) for missing player, got %v %v", p, err)
	}
}

func TestCommitXP_AppliesUpdatesAndFlag(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedTeam(t, repo, 1, 1, 2, 40)
	seedMatch(t, repo, 5, 1, 1, game.ResultWin)

	updates := []game.XPUpdate{{PlayerID: 1, OldXP: 40, NewXP: 42}, {PlayerID: 2, OldXP: 40, NewXP: 39}}
	if err := repo.CommitXP(ctx, 5, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	states, err := repo.LoadPlayerStates(ctx, []uint{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := map[uint]int{}
	for _, s := range states {
		got[s.ID] = s.XP
	}
	if len(got) != 2 || got[1] != 42 || got[2] != 39 {
		t.Fatalf("unexpected states %v", got)
	}
	m, _ := repo.GetMatchByID(ctx, 5)
	if !m.ProgressionApplied {
		t.Fatalf("expected match to be flagged")
	}

	if err := repo.CommitXP(ctx, 5, []game.XPUpdate{{PlayerID: 1, OldXP: 42, NewXP: 43}}); !errors.Is(err, service.ErrMatchAlreadyProcessed) {
		t.Fatalf("expected ErrMatchAlreadyProcessed, got %v", err)
	}
	if p, _ := repo.GetPlayerByID(ctx, 1); p.XP != 42 {
		t.Fatalf("second commit must not change xp, got %d", p.XP)
	}
}

func TestCommitXP_StaleRowRollsBackEverything(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedTeam(t, repo, 1, 1, 2, 40)
	seedMatch(t, repo, 5, 1, 1, game.ResultWin)

	updates := []game.XPUpdate{{PlayerID: 1, OldXP: 40, NewXP: 42}, {PlayerID: 2, OldXP: 35, NewXP: 36}}
	if err := repo.CommitXP(ctx, 5, updates); !errors.Is(err, ErrStaleXP) {
		t.Fatalf("expected ErrStaleXP, got %v", err)
	}
	if p, _ := repo.GetPlayerByID(ctx, 1); p.XP != 40 {
		t.Fatalf("player 1 must be rolled back, got %d", p.XP)
	}
	if m, _ := repo.GetMatchByID(ctx, 5); m.ProgressionApplied {
		t.Fatalf("match flag must be rolled back")
	}
}

func TestSetSeedXP_Conditional(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	free := &game.Player{Name: "free"}
	free.ID = 50
	if err := repo.UpsertPlayer(ctx, free); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	seedTeam(t, repo, 1, 1, 1, 0)

	ok, err := repo.SetSeedXP(ctx, 50, 0, 25)
	if err != nil || !ok {
		t.Fatalf("expected first seed write to succeed, ok=%v err=%v", ok, err)
	}
	if ok, _ := repo.SetSeedXP(ctx, 50, 0, 30); ok {
		t.Fatalf("expected second seed write to be rejected")
	}
	if ok, _ := repo.SetSeedXP(ctx, 1, 0, 30); ok {
		t.Fatalf("expected a rostered player to be rejected")
	}
	if p, _ := repo.GetPlayerByID(ctx, 50); p.XP != 25 {
		t.Fatalf("expected xp 25, got %d", p.XP)
	}
}

func TestListQualifyingAppearances(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	free := &game.Player{Name: "free"}
	free.ID = 50
	if err := repo.UpsertPlayer(ctx, free); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	cases := []struct {
		id          uint
		status      string
		competition string
	}{
		{1, game.MatchStatusCompleted, game.CompetitionLeague},
		{2, game.MatchStatusCompleted, "Friendly"},
		{3, game.MatchStatusScheduled, game.CompetitionCup},
		{4, game.MatchStatusCompleted, game.CompetitionCup},
	}
	for _, c := range cases {
		m := &game.Match{HomeTeamID: 1, AwayTeamID: 2, Status: c.status, CompetitionType: c.competition}
		m.ID = c.id
		if err := repo.CreateMatch(ctx, m); err != nil {
			t.Fatalf("create match: %v", err)
		}
		m.Status = c.status
		if err := repo.SaveMatchResult(ctx, m, []game.Appearance{{PlayerID: 50, MatchID: c.id, Kills: 3, Deaths: 1}}); err != nil {
			t.Fatalf("save result: %v", err)
		}
	}

	apps, err := repo.ListQualifyingAppearances(ctx, 50, service.DefaultSettings().ExemptCompetitionTypes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected league and cup appearances only, got %+v", apps)
	}
	for _, a := range apps {
		if a.MatchID != 1 && a.MatchID != 4 {
			t.Fatalf("unexpected qualifying match %d", a.MatchID)
		}
	}
}

func TestSaveMatchResult_OverwritesAppearance(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedMatch(t, repo, 1, 1, 2, game.ResultWin)
	m, _ := repo.GetMatchByID(ctx, 1)
	if err := repo.SaveMatchResult(ctx, m, []game.Appearance{{PlayerID: 7, MatchID: 1, Kills: 1, Deaths: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveMatchResult(ctx, m, []game.Appearance{{PlayerID: 7, MatchID: 1, Kills: 4, Deaths: 2}}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	apps, err := repo.ListQualifyingAppearances(ctx, 7, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 1 || apps[0].Kills != 4 || apps[0].Deaths != 2 {
		t.Fatalf("expected one overwritten appearance, got %+v", apps)
	}
}

func TestCompleteMatch_OverSQLite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedTeam(t, repo, 1, 1, 5, 30)
	seedTeam(t, repo, 2, 11, 5, 20)
	seedMatch(t, repo, 9, 1, 2, game.ResultLoss)

	p := service.NewProgression(repo, service.DefaultSettings())
	src := &random.Scripted{Floats: []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}}
	rep, err := p.CompleteMatch(ctx, 9, game.UserContext{TeamID: uintPtr(1), PlayerID: uintPtr(1)}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.Committed || rep.TeamDelta >= 0 {
		t.Fatalf("expected a committed negative home delta, got %+v", rep)
	}
	if pl, _ := repo.GetPlayerByID(ctx, 1); pl.XP != 30 {
		t.Fatalf("user's own player must not change, got %d", pl.XP)
	}
	for _, u := range rep.Updates {
		pl, _ := repo.GetPlayerByID(ctx, u.PlayerID)
		if pl.XP != u.NewXP {
			t.Fatalf("player %d stored xp %d, report says %d", u.PlayerID, pl.XP, u.NewXP)
		}
	}
	if _, err := p.CompleteMatch(ctx, 9, game.UserContext{}, random.New(1)); !errors.Is(err, service.ErrMatchAlreadyProcessed) {
		t.Fatalf("expected ErrMatchAlreadyProcessed, got %v", err)
	}
}

func TestUpsertPlayer_KeepsProgressedXP(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seedTeam(t, repo, 1, 1, 1, 20)
	if err := repo.CommitXP(ctx, 0, []game.XPUpdate{{PlayerID: 1, OldXP: 20, NewXP: 22}}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	again := &game.Player{Name: "renamed", XP: 20, TeamID: uintPtr(1), RosterSlot: 3}
	again.ID = 1
	if err := repo.UpsertPlayer(ctx, again); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	p, _ := repo.GetPlayerByID(ctx, 1)
	if p.XP != 22 || p.Name != "renamed" || p.RosterSlot != 3 {
		t.Fatalf("expected metadata refreshed and xp kept, got %+v", p)
	}
}
