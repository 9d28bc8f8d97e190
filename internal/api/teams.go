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

type strengthResponse struct {
	TeamID uint    `json:"team_id"`
	Rating float64 `json:"rating"`
	Squad  []uint  `json:"squad"`
}

// TeamStrength returns the rating and squad the progression pipeline
// would use for a team, optionally from a user's point of view.
func (h *ProgressionHandler) TeamStrength(c *gin.Context) {
	id, ok := uintParam(c, constants.ParamTeamID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidTeamID})
		return
	}
	userTeam, ok1 := optionalUintQuery(c, constants.QueryUserTeamID)
	userPlayer, ok2 := optionalUintQuery(c, constants.QueryUserPlayerID)
	if !ok1 || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	s, err := service.TeamStrength(c.Request.Context(), h.repo, h.progression.Settings(), id, game.UserContext{TeamID: userTeam, PlayerID: userPlayer})
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTeamNotFound})
			return
		}
		logging.Error("failed to compute team strength", err, logging.Fields{constants.LogFieldTeamID: id})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedComputeStrength})
		return
	}
	squad := s.SquadIDs()
	if squad == nil {
		squad = []uint{}
	}
	c.JSON(http.StatusOK, strengthResponse{TeamID: s.TeamID, Rating: s.Rating, Squad: squad})
}
