package main

import (
	"creditline/internal/config" // Custom import path (Config)
	"creditline/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Migrate the MySQL schema
}
