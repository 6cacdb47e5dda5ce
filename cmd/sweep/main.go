package main

import (
	"context"
	"log"
	"os"
	"time"

	"sportarea/internal/database"
	"sportarea/internal/modules/report"
	"sportarea/internal/repository"
	"sportarea/internal/sweeper"
)

// One-shot expiry sweep for cron-style deployments where the API
// process does not run the background sweeper itself.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	sw := sweeper.New(
		repository.NewBookingRepository(db),
		report.NewDiskStore(uploadsDir),
		time.Minute,
	)

	deleted, err := sw.SweepOnce(context.Background())
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	log.Printf("sweep completed: deleted=%d", deleted)
}
