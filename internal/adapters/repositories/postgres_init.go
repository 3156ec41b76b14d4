package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flight-itinerary-service/internal/domain"
	"fmt"
	"os"
)

// Initialize the PostgreSQL schema for the timetable and the itinerary cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCitiesQuery := `
	CREATE TABLE IF NOT EXISTS cities (
		city_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		is_base BOOLEAN NOT NULL DEFAULT FALSE,
		layover_min INTEGER,
		layover_max INTEGER
	);
	`

	createFlightsQuery := `
	CREATE TABLE IF NOT EXISTS flights (
		flight_id INTEGER PRIMARY KEY,
		origin_id INTEGER NOT NULL REFERENCES cities(city_id),
		destination_id INTEGER NOT NULL REFERENCES cities(city_id),
		day INTEGER NOT NULL,
		cost BIGINT NOT NULL,
		flight_date TEXT NOT NULL DEFAULT '',
		departure_time TEXT NOT NULL DEFAULT '',
		arrival_time TEXT NOT NULL DEFAULT ''
	);
	`

	createItineraryCacheQuery := `
	CREATE TABLE IF NOT EXISTS itinerary_cache (
		cache_key TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_flights_origin_day
	ON flights(origin_id, day);
	`

	statements := []string{
		createCitiesQuery,
		createFlightsQuery,
		createItineraryCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with a timetable stored as JSON ({"cities": [...], "flights": [...]}).
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed timetable: read %q: %w", jsonPath, err)
	}

	var tt domain.Timetable
	if err := json.Unmarshal(bytes, &tt); err != nil {
		return fmt.Errorf("seed timetable: parse json: %w", err)
	}

	return SeedTimetable(ctx, db, tt)
}

// Replace the stored timetable. The timetable is validated first so the
// tables never hold a trip the solver would reject. Flights are stored
// as given, before deduplication.
func SeedTimetable(ctx context.Context, db *sql.DB, tt domain.Timetable) error {
	if db == nil {
		return errors.New("seed timetable: DB is nil")
	}
	if _, _, err := tt.Build(); err != nil {
		return fmt.Errorf("seed timetable: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed timetable: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{`DELETE FROM flights;`, `DELETE FROM cities;`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("seed timetable: clear tables: %w", err)
		}
	}

	if err := insertCities(ctx, tx, tt.Cities); err != nil {
		return fmt.Errorf("seed timetable: %w", err)
	}
	if err := insertFlights(ctx, tx, tt.Flights); err != nil {
		return fmt.Errorf("seed timetable: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed timetable: commit tx: %w", err)
	}

	return nil
}

func insertCities(ctx context.Context, tx *sql.Tx, cities []domain.City) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO cities (city_id, code, name, is_base, layover_min, layover_max)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("prepare city insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cities {
		var lo, hi any
		if c.Layover != nil {
			lo, hi = c.Layover.Min, c.Layover.Max
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.Code, c.Name, c.IsBase, lo, hi); err != nil {
			return fmt.Errorf("insert city_id=%d: %w", c.ID, err)
		}
	}
	return nil
}

func insertFlights(ctx context.Context, tx *sql.Tx, flights []domain.Flight) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO flights (
		flight_id, origin_id, destination_id, day, cost,
		flight_date, departure_time, arrival_time
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return fmt.Errorf("prepare flight insert: %w", err)
	}
	defer stmt.Close()

	// Stored ids are input positions; the catalog renumbers after dedup.
	for i, f := range flights {
		if _, err := stmt.ExecContext(ctx, i, f.Origin, f.Destination, f.Day, f.Cost,
			f.Date, f.DepartureTime, f.ArrivalTime); err != nil {
			return fmt.Errorf("insert flight #%d: %w", i+1, err)
		}
	}
	return nil
}
