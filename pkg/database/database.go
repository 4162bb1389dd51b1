package database

import (
	"fmt"
	"strings"

	"rentman-service/internal/model"
	"rentman-service/pkg/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the SQLite database and runs migrations
func InitDB(config *config.Config) error {
	var err error

	logLevel := logger.Error
	if config.Server.Env == "development" {
		logLevel = logger.Info
	}

	dsn := config.Database.Path
	if !strings.Contains(dsn, "_foreign_keys") {
		// Cascade deletes rely on SQLite enforcing foreign keys
		if strings.Contains(dsn, "?") {
			dsn += "&_foreign_keys=on"
		} else {
			dsn += "?_foreign_keys=on"
		}
	}

	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.Database.ConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// Migrate runs the schema migrations for all models
func Migrate(d *gorm.DB) error {
	return d.AutoMigrate(
		&model.User{},
		&model.Tenant{},
		&model.RentLog{},
		&model.RentCollector{},
		&model.AppSettings{},
		&model.UploadedFile{},
	)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// SetDB replaces the database instance, used by tests
func SetDB(d *gorm.DB) {
	db = d
}
