package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/random"
)

// BatchItem is one match to complete. Seed feeds the random source of
// that match only, so its draws never depend on the other items.
type BatchItem struct {
	MatchID uint
	User    game.UserContext
	Seed    int64
}

type BatchResult struct {
	MatchID uint
	Report  *Report
	Err     error
}

// ApplyBatch completes matches concurrently, at most limit at a time.
// Matches that share players serialize on the player locks. A failing
// match does not stop the others; its error is reported in its result.
// The returned error is only set when ctx is cancelled.
func (p *Progression) ApplyBatch(ctx context.Context, items []BatchItem, limit int) ([]BatchResult, error) {
	results := make([]BatchResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := p.CompleteMatch(gctx, it.MatchID, it.User, random.New(it.Seed))
			results[i] = BatchResult{MatchID: it.MatchID, Report: rep, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
