package api

import (
	"errors"
	"net/http"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/service"
	"github.com/gin-gonic/gin"
)

type completeMatchRequest struct {
	UserTeamID   *uint  `json:"user_team_id"`
	UserPlayerID *uint  `json:"user_player_id"`
	Seed         *int64 `json:"seed"`
}

type completeMatchResponse struct {
	*service.Report
	Seed int64 `json:"seed"`
}

// CompleteMatch applies progression for a completed match. The response
// carries the seed that drove the random draws so the run can be
// replayed.
func (h *ProgressionHandler) CompleteMatch(c *gin.Context) {
	id, ok := uintParam(c, constants.ParamMatchID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMatchID})
		return
	}
	var req completeMatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
	}
	src, seed, err := h.source(req.Seed)
	if err != nil {
		logging.Error("failed to generate seed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedGenerateSeed})
		return
	}

	user := game.UserContext{TeamID: req.UserTeamID, PlayerID: req.UserPlayerID}
	rep, err := h.progression.CompleteMatch(c.Request.Context(), id, user, src)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		case errors.Is(err, service.ErrMatchAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchAlreadyProcessed})
		case errors.Is(err, service.ErrMatchNotCompleted):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrMatchNotCompleted})
		default:
			logging.Error("failed to apply progression", err, logging.Fields{constants.LogFieldMatchID: id})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedApplyProgression})
		}
		return
	}
	c.JSON(http.StatusOK, completeMatchResponse{Report: rep, Seed: seed})
}
