package main

import (
	"os"

	"github.com/ericogr/squadxp/internal/config"
	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/logging"
	"github.com/ericogr/squadxp/internal/storage"
)

func loadConfigOrExit() *config.LoadedConfig {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Missing or invalid progression configuration", err, logging.Fields{constants.LogFieldConfigPath: os.Getenv(constants.EnvConfigPath)})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDBPath: dbPath})
	}
	return storage.NewSQLiteRepository(db)
}
