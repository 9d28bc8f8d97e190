package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ericogr/squadxp/internal/logging"
)

const sampleBatch = `
seed: 11
concurrency: 2
teams:
  - id: 1
    name: Harbor
    players:
      - {id: 1, name: Ada, xp: 30, age: 21}
      - {id: 2, name: Bo, xp: 30, age: 27}
      - {id: 3, name: Cy, xp: 30, age: 33}
      - {id: 4, name: Di, xp: 30}
      - {id: 5, name: Ed, xp: 30}
  - id: 2
    name: Ridge
    players:
      - {id: 11, name: Fa, xp: 20}
      - {id: 12, name: Gu, xp: 20}
      - {id: 13, name: Ha, xp: 20}
      - {id: 14, name: Io, xp: 20}
      - {id: 15, name: Ju, xp: 20}
free_agents:
  - {id: 50, name: Ko}
matches:
  - id: 1
    home: 1
    away: 2
    competition: league
    home_score: 13
    away_score: 16
    appearances:
      - {player: 50, kills: 12, deaths: 4}
  - id: 2
    home: 2
    away: 1
    competition: friendly
    result: WIN
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := logging.SetOutput(io.Discard)
	defer logging.SetOutput(prev)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadBatchFile(t *testing.T) {
	bf, err := LoadBatchFile(writeFile(t, "batch.yaml", sampleBatch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bf.Seed != 11 || len(bf.Teams) != 2 || len(bf.Matches) != 2 || len(bf.FreeAgents) != 1 {
		t.Fatalf("unexpected batch %+v", bf)
	}
	if bf.Teams[0].Players[0].Age == nil || *bf.Teams[0].Players[0].Age != 21 {
		t.Fatalf("expected age to be parsed")
	}
	if m := bf.Matches[0]; !m.hasResult() || *m.AwayScore != 16 || len(m.Appearances) != 1 {
		t.Fatalf("unexpected first match %+v", m)
	}
}

func TestLoadBatchFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"duplicate player": "teams:\n  - id: 1\n    players: [{id: 1}, {id: 1}]\n",
		"xp out of range":  "free_agents: [{id: 3, xp: 101}]\n",
		"match without id": "matches: [{home: 1, away: 2}]\n",
		"not yaml":         "teams: [",
	}
	for name, content := range cases {
		if _, err := LoadBatchFile(writeFile(t, "bad.yaml", content)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestApplyCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "progression.db")
	batch := writeFile(t, "batch.yaml", sampleBatch)

	out, err := run(t, "apply", "-f", batch, "--db", db)
	if err != nil {
		t.Fatalf("apply failed: %v\n%s", err, out)
	}
	var results []applyOutput
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(results) != 2 {
		t.Fatalf("expected two results, got %s", out)
	}
	if results[0].Report == nil || results[0].Error != "" {
		t.Fatalf("expected a report for the league match, got %+v", results[0])
	}
	if results[1].Report == nil || results[1].Report.Skipped != "exempt_competition" {
		t.Fatalf("expected the friendly to be exempt, got %+v", results[1])
	}

	// A replay of the same file leaves every match untouched.
	out, err = run(t, "apply", "-f", batch, "--db", db)
	if err != nil {
		t.Fatalf("second apply failed: %v\n%s", err, out)
	}
	results = nil
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	for _, r := range results {
		if r.Report != nil || r.Error != "" {
			t.Fatalf("expected processed matches to be skipped, got %+v", r)
		}
	}
}

func TestStrengthAndSeedCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "progression.db")
	if _, err := run(t, "apply", "-f", writeFile(t, "batch.yaml", sampleBatch), "--db", db); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	out, err := run(t, "strength", "--team", "2", "--db", db)
	if err != nil {
		t.Fatalf("strength failed: %v", err)
	}
	var s strengthOutput
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if s.TeamID != 2 || len(s.Squad) != 5 {
		t.Fatalf("unexpected strength %+v", s)
	}

	// Player 50 has a single qualifying appearance, so seeding does not fire.
	out, err = run(t, "seed", "--player", "50", "--db", db)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(out, `"skipped": "match_count"`) {
		t.Fatalf("expected a match_count skip, got %s", out)
	}

	if _, err := run(t, "strength", "--team", "9", "--db", db); err == nil {
		t.Fatalf("expected an error for an unknown team")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || !strings.Contains(out, `"version"`) {
		t.Fatalf("unexpected version output %q err=%v", out, err)
	}
}
