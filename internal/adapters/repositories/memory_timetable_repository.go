package repositories

import (
	"context"
	"flight-itinerary-service/internal/domain"
	"slices"
)

// In-memory TimetableRepository for the CLI and tests.
type MemoryTimetableRepository struct {
	tt domain.Timetable
}

func NewMemoryTimetableRepository(tt domain.Timetable) *MemoryTimetableRepository {
	return &MemoryTimetableRepository{tt: tt}
}

// Return a copy so callers cannot mutate the stored timetable.
func (m *MemoryTimetableRepository) LoadTimetable(ctx context.Context) (domain.Timetable, error) {
	if err := ctx.Err(); err != nil {
		return domain.Timetable{}, err
	}

	cities := slices.Clone(m.tt.Cities)
	for i, c := range cities {
		if c.Layover != nil {
			w := *c.Layover
			cities[i].Layover = &w
		}
	}
	return domain.Timetable{Cities: cities, Flights: slices.Clone(m.tt.Flights)}, nil
}
