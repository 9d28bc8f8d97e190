package api

import (
	"github.com/ericogr/squadxp/internal/constants"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every progression route onto a fresh gin engine.
func NewRouter(h *ProgressionHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(constants.RouteHealth, Health)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RoutePlayerByID, h.GetPlayer)
		apiRoutes.POST(constants.RoutePlayerSeed, h.SeedPlayer)
		apiRoutes.GET(constants.RouteTeamStrength, h.TeamStrength)
		apiRoutes.POST(constants.RouteMatchComplete, h.CompleteMatch)
	}
	return router
}
