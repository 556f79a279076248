package database

import (
	"fmt"
	"path/filepath"

	"skillsync/internal/config"
)

// DatabaseFileName is the SQLite file created under the configured data
// directory.
const DatabaseFileName = "skillsync.db"

// NewDatabaseFromConfig creates a database based on the config type.
// Both types are SQLite underneath; "memory" keeps everything in process
// and is intended for tests.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (*SQLiteDatabase, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		return NewSQLiteDatabase(filepath.Join(cfg.DataDir, DatabaseFileName))
	case "memory":
		return NewSQLiteDatabase(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}
