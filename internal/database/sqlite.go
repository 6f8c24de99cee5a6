package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"github.com/wordcraft-labs/wordcraft-backend/internal/games"
	"github.com/wordcraft-labs/wordcraft-backend/internal/leaderboard"
	"github.com/wordcraft-labs/wordcraft-backend/internal/users"
	"github.com/wordcraft-labs/wordcraft-backend/internal/waitlist"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenSQLite establishes a SQLite connection and performs schema migrations.
// A single connection keeps the guest find-or-create and the leaderboard
// rebuild serialized at the storage layer.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&users.User{},
		&games.Game{},
		&leaderboard.Entry{},
		&waitlist.Signup{},
		&migrationRecord{},
	); err != nil {
		return nil, err
	}

	if err := applyMigrations(db, logger); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}
