package repositories

import (
	"context"
	"database/sql"
	"errors"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"fmt"
)

// PostgreSQL-backed implementation of the TimetableRepository port.
type PostgresTimetableRepository struct{ DB *sql.DB }

func NewPostgresTimetableRepository(db *sql.DB) *PostgresTimetableRepository {
	return &PostgresTimetableRepository{DB: db}
}

// Return the stored cities ordered by id, then the flights in input order.
func (p *PostgresTimetableRepository) LoadTimetable(ctx context.Context) (_ domain.Timetable, err error) {
	defer obs.Time(ctx, "timetable.repo.LoadTimetable")(&err)

	if p.DB == nil {
		return domain.Timetable{}, errors.New("postgres timetable repository: DB is nil")
	}

	cities, err := p.listCities(ctx)
	if err != nil {
		return domain.Timetable{}, err
	}
	flights, err := p.listFlights(ctx)
	if err != nil {
		return domain.Timetable{}, err
	}

	return domain.Timetable{Cities: cities, Flights: flights}, nil
}

func (p *PostgresTimetableRepository) listCities(ctx context.Context) ([]domain.City, error) {
	query := `
	SELECT
		city_id,
		code,
		name,
		is_base,
		layover_min,
		layover_max
	FROM cities
	ORDER BY city_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load timetable: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 16)
	for rows.Next() {
		var c domain.City
		var lo, hi sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.IsBase, &lo, &hi); err != nil {
			return nil, fmt.Errorf("load timetable: scan city row: %w", err)
		}
		if lo.Valid && hi.Valid {
			c.Layover = &domain.Window{Min: int(lo.Int64), Max: int(hi.Int64)}
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load timetable: city row iteration: %w", err)
	}

	return cities, nil
}

func (p *PostgresTimetableRepository) listFlights(ctx context.Context) ([]domain.Flight, error) {
	query := `
	SELECT
		flight_id,
		origin_id,
		destination_id,
		day,
		cost,
		flight_date,
		departure_time,
		arrival_time
	FROM flights
	ORDER BY flight_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load timetable: query flights table: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0, 64)
	for rows.Next() {
		var f domain.Flight
		err := rows.Scan(&f.ID, &f.Origin, &f.Destination, &f.Day, &f.Cost,
			&f.Date, &f.DepartureTime, &f.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("load timetable: scan flight row: %w", err)
		}
		flights = append(flights, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load timetable: flight row iteration: %w", err)
	}

	return flights, nil
}
