package database

import (
	"fmt"
	"os"

	"truthonly/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultDBPath = "truthonly.db"
	dbPathEnvVar  = "TRUTHONLY_DB_PATH"
)

// ResolvePath picks the database path: the environment variable wins, then the
// configured value, then the default.
func ResolvePath(configured string, logger zerolog.Logger) string {
	if path := os.Getenv(dbPathEnvVar); path != "" {
		logger.Info().Str("env", dbPathEnvVar).Str("path", path).Msg("Using database path from environment")
		return path
	}
	if configured != "" {
		return configured
	}
	logger.Info().Str("path", defaultDBPath).Msg("Using default database path")
	return defaultDBPath
}

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Database connection established")

	if err := Migrate(db); err != nil {
		_ = Close(db)
		return nil, err
	}
	logger.Debug().Msg("Database schema migrated")
	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.VerificationRecord{}, &models.KVEntry{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
