package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/service"
	"github.com/gin-gonic/gin"
)

// GetPlayer returns the stored state of a player.
func (h *ProgressionHandler) GetPlayer(c *gin.Context) {
	id, ok := uintParam(c, constants.ParamPlayerID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerID})
		return
	}
	p, err := h.repo.GetPlayerByID(c.Request.Context(), id)
	if err != nil {
		logging.Error("failed to fetch player", err, logging.Fields{constants.LogFieldPlayerID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPlayer})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
		return
	}
	out, err := MarshalIntoSnakeKeys(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchPlayer})
		return
	}
	c.JSON(http.StatusOK, out)
}

type seedRequest struct {
	Seed *int64 `json:"seed"`
}

// SeedPlayer assigns initial XP to a free agent after their first
// qualifying matches. Calls that do not qualify return 200 with
// seeded=false and the reason.
func (h *ProgressionHandler) SeedPlayer(c *gin.Context) {
	id, ok := uintParam(c, constants.ParamPlayerID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerID})
		return
	}
	var req seedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	src, _, err := h.source(req.Seed)
	if err != nil {
		logging.Error("failed to generate seed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGenerateSeed})
		return
	}

	res, err := service.SeedPlayer(c.Request.Context(), h.repo, h.progression.Settings(), id, src)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
			return
		}
		logging.Error("failed to seed player", err, logging.Fields{constants.LogFieldPlayerID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSeedPlayer})
		return
	}
	c.JSON(http.StatusOK, res)
}
