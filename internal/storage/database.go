package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and keeps the
// schema current with AutoMigrate. The parent directory of a file path is
// created when missing.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	if dir := filepath.Dir(dataSourceName); !isMemory(dataSourceName) && !strings.HasPrefix(dataSourceName, "file:") && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows a single writer, and every pooled connection to
	// ":memory:" would open its own empty database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&game.Team{}, &game.Player{}, &game.Match{}, &game.Appearance{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	logging.Info("database ready", logging.Fields{constants.LogFieldDBPath: dataSourceName})
	return db, nil
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}
