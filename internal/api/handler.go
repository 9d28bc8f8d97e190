package api

import (
	"github.com/ericogr/squadxp/internal/random"
	"github.com/ericogr/squadxp/internal/service"
	"github.com/ericogr/squadxp/internal/storage"
)

// ProgressionHandler groups the progression HTTP handlers.
type ProgressionHandler struct {
	repo        storage.Repository
	progression *service.Progression
	// fixedSeed, when non-zero, seeds every request that does not bring
	// its own seed.
	fixedSeed int64
}

// NewProgressionHandler creates a handler backed by repo. A non-zero
// fixedSeed makes every request without an explicit seed replayable.
func NewProgressionHandler(repo storage.Repository, settings service.Settings, fixedSeed int64) *ProgressionHandler {
	return &ProgressionHandler{
		repo:        repo,
		progression: service.NewProgression(repo, settings),
		fixedSeed:   fixedSeed,
	}
}

// source picks the seed for one request: the requested one, then the
// fixed process seed, then a fresh random seed. The seed is returned so
// the caller can report it.
func (h *ProgressionHandler) source(requested *int64) (random.Source, int64, error) {
	seed := h.fixedSeed
	if requested != nil {
		seed = *requested
	}
	if seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return random.New(seed), seed, nil
}
