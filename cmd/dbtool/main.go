package main

import (
	"context"
	"database/sql"
	"flight-itinerary-service/internal/adapters/repositories"
	"flight-itinerary-service/internal/adapters/timetable"
	"flight-itinerary-service/internal/config"
	"flight-itinerary-service/internal/platform/db"
	"flight-itinerary-service/internal/platform/obs"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

func main() {
	hadDotEnv := config.LoadDotEnv()
	settings := config.FromEnv()

	logger := obs.NewLogger(os.Stderr, obs.ParseLevel(settings.LogLevel))
	if !hadDotEnv {
		logger.Info("No .env file found (using environment variables)")
	}

	if settings.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	ctx := obs.WithLogger(context.Background(), logger)
	db, err := db.Open(ctx, settings.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", "err", err)
	}
	defer db.Close()

	seedPath := settings.SeedPath
	if len(os.Args) > 1 {
		seedPath = os.Args[1]
	}
	if err := initAndSeed(ctx, logger, db, seedPath, settings.TimetableYear); err != nil {
		logger.Fatal("dbtool failed", "err", err)
	}
}

// initAndSeed creates the schema and loads the timetable at seedPath. JSON
// files hold a domain.Timetable; anything else is read as the text format.
func initAndSeed(ctx context.Context, logger *log.Logger, db *sql.DB, seedPath string, year int) error {
	logger.Info("Initializing database schema...")
	if err := repositories.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	logger.Info("Schema ready.")

	logger.Info("Seeding database...", "path", seedPath)
	if strings.EqualFold(filepath.Ext(seedPath), ".json") {
		if err := repositories.SeedFromJSON(ctx, db, seedPath); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	} else {
		f, err := os.Open(seedPath)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		defer f.Close()

		tt, err := timetable.Parse(f, year)
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		if err := repositories.SeedTimetable(ctx, db, tt); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}
	logger.Info("Seeding complete.")

	return nil
}
