// Command reconcile recomputes the denormalized like and favorite counters
// from the membership tables. Run it periodically, or after restoring from a
// backup, to repair any drift.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"aerohub/internal/config"
	"aerohub/internal/database"
	"aerohub/internal/repository"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Abort if reconciliation exceeds this duration")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo := repository.NewEngagementRepository(db)
	changed, err := repo.RecountAll(ctx)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}
	log.Printf("Reconciliation complete: %d counters corrected", changed)
}
