// Command migrate applies the schema to the configured database. Production
// deployments run it explicitly; development relies on the automatic
// migration inside database.Connect.
package main

import (
	"log"

	"aerohub/internal/config"
	"aerohub/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.Models()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")
}
