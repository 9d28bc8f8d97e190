package game

import (
	"errors"
	"strings"
)

// Result classifies a match from the home side's point of view.
type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "WIN"
	ResultDraw Result = "DRAW"
	ResultLoss Result = "LOSS"
)

// ErrInvalidResult is returned when a classification cannot be determined.
var ErrInvalidResult = errors.New("match result cannot be determined")

// ParseResult accepts WIN, DRAW or LOSS in any case.
func ParseResult(s string) (Result, error) {
	switch Result(strings.ToUpper(strings.TrimSpace(s))) {
	case ResultWin:
		return ResultWin, nil
	case ResultDraw:
		return ResultDraw, nil
	case ResultLoss:
		return ResultLoss, nil
	}
	return ResultNone, ErrInvalidResult
}

// ActualScore maps a result to the home side's actual score: WIN=1,
// DRAW=0.5, LOSS=0. ok is false for an unknown classification.
func (r Result) ActualScore() (score float64, ok bool) {
	switch r {
	case ResultWin:
		return 1, true
	case ResultDraw:
		return 0.5, true
	case ResultLoss:
		return 0, true
	}
	return 0, false
}

// ResultFromScores converts a raw score pair. Equal scores are a draw only
// when the caller's ruleset permits draws.
func ResultFromScores(home, away int, allowDraws bool) (Result, error) {
	switch {
	case home > away:
		return ResultWin, nil
	case home < away:
		return ResultLoss, nil
	case allowDraws:
		return ResultDraw, nil
	}
	return ResultNone, ErrInvalidResult
}

// Classify returns the match result, preferring an explicit classification
// and falling back to the stored scores.
func (m *Match) Classify() (Result, error) {
	if m.Result != ResultNone {
		return ParseResult(string(m.Result))
	}
	if m.HomeScore == nil || m.AwayScore == nil {
		return ResultNone, ErrInvalidResult
	}
	return ResultFromScores(*m.HomeScore, *m.AwayScore, m.AllowDraws)
}
