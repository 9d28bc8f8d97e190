package service

import (
	"sort"
	"sync"
)

// PlayerLocks serializes work on overlapping player sets. Locks are taken
// in ascending id order so two callers can never deadlock on each other.
type PlayerLocks struct {
	mu    sync.Mutex
	locks map[uint]*playerLock
}

type playerLock struct {
	mu   sync.Mutex
	refs int
}

func NewPlayerLocks() *PlayerLocks {
	return &PlayerLocks{locks: make(map[uint]*playerLock)}
}

// Lock blocks until every id is held and returns the release function.
func (l *PlayerLocks) Lock(ids []uint) (unlock func()) {
	ordered := uniqueSorted(ids)

	l.mu.Lock()
	held := make([]*playerLock, len(ordered))
	for i, id := range ordered {
		pl, ok := l.locks[id]
		if !ok {
			pl = &playerLock{}
			l.locks[id] = pl
		}
		pl.refs++
		held[i] = pl
	}
	l.mu.Unlock()

	for _, pl := range held {
		pl.mu.Lock()
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
		}
		l.mu.Lock()
		for i, id := range ordered {
			held[i].refs--
			if held[i].refs == 0 {
				delete(l.locks, id)
			}
		}
		l.mu.Unlock()
	}
}

func uniqueSorted(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
