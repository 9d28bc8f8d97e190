package main

import (
	"github.com/ericogr/squadxp/internal/api"
	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := loadConfigOrExit()
	repo := createRepositoryOrExit(cfg.DBPath)
	handler := api.NewProgressionHandler(repo, cfg.Settings, cfg.Seed)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(handler)

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr:       cfg.Addr,
		constants.LogFieldConfigPath: cfg.ConfigPath,
	})
	if err := router.Run(cfg.Addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
