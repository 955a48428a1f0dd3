package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/wrokout/internal/log"
	"github.com/balkashynov/wrokout/internal/models"
)

// ErrNotFound is returned when a plan, exercise or session log does not exist.
var ErrNotFound = errors.New("not found")

var DB *gorm.DB

// Initialize opens the database in dataDir, runs migrations and installs it as DB
func Initialize(dataDir string) error {
	db, err := Open(filepath.Join(dataDir, "wrokout.db"))
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open connects to the SQLite database at path and migrates the schema
func Open(path string) (*gorm.DB, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug(log.CatDB, "database opened", "path", path)
	return db, nil
}

// runMigrations creates/updates the database schema
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Plan{},
		&models.Exercise{},
		&models.SessionLog{},
		&models.ExerciseLog{},
		&models.SnapshotSlot{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
