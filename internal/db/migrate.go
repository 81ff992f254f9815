package db

import (
	"creditline/internal/domain" // Importing domain models
	"creditline/internal/store"  // Connection settings shared with the server

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table the MySQL store reads and writes
func Models() []any {
	return []any{&domain.Application{}, &domain.User{}}
}

// AutoMigrate creates or updates the schema on an open connection
func AutoMigrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	return db.AutoMigrate(Models()...)
}

// Migrate connects to dsn and migrates the schema
func Migrate(dsn string) {
	db, err := store.OpenMySQL(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
