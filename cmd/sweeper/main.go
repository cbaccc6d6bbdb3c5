// cmd/sweeper/main.go
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/wekesa/crm-maintenance/internal/config"
	"github.com/wekesa/crm-maintenance/internal/db"
	"github.com/wekesa/crm-maintenance/internal/logfile"
	"github.com/wekesa/crm-maintenance/internal/repository"
	"github.com/wekesa/crm-maintenance/internal/service"
)

// Single-shot entry point for an external scheduler (cron or equivalent).
// Takes no arguments, runs one sweep, exits non-zero on failure. An
// unreachable store aborts before anything is appended to the cleanup log.
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()

	sweeper := &service.Sweeper{
		CustomerRepo:  &repository.CustomerRepository{DB: conn},
		Log:           &logfile.File{Path: cfg.CleanupLog},
		RetentionDays: cfg.RetentionDays,
	}

	deleted, err := sweeper.Run()
	if err != nil {
		log.Fatalf("cleanup run failed: %v", err)
	}

	log.Printf("✅ Cleanup complete, deleted %d inactive customers\n", deleted)
}
