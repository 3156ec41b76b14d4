package ports

import (
	"context"
	"flight-itinerary-service/internal/domain"
)

// Port: a boundary for retrieving the planning timetable from a data source.
type TimetableRepository interface {
	// Return the cities and flights of the stored trip. City and flight
	// endpoints are already expressed as city ids, base first.
	LoadTimetable(ctx context.Context) (domain.Timetable, error)
}
