package services

import (
	"cmp"
	"errors"
	"flight-itinerary-service/internal/domain"
	"fmt"
	"slices"
)

var ErrInvalidRoute = errors.New("invalid route")

// Extract turns the winning travel-order route into an itinerary.
//
// The route is checked against the closed-walk rules before anything is
// returned. Flights are then ordered by day, ties by catalog id, which is the
// order consumers print them in; Route keeps the travel order.
func Extract(
	graph *domain.CityGraph,
	catalog *domain.Catalog,
	route []int,
	cost int64,
) (domain.Itinerary, error) {
	total, err := ValidateRoute(graph, catalog, route)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("extract: %w", err)
	}
	if total != cost {
		return domain.Itinerary{}, fmt.Errorf(
			"extract: %w: flights sum to %d, search reported %d", ErrInvalidRoute, total, cost,
		)
	}

	flights := make([]domain.Flight, 0, len(route))
	for _, id := range route {
		flights = append(flights, catalog.Flight(id))
	}
	slices.SortStableFunc(flights, func(a, b domain.Flight) int {
		if c := cmp.Compare(a.Day, b.Day); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return domain.Itinerary{
		Status:    domain.StatusOptimal,
		TotalCost: total,
		Flights:   flights,
		Route:     append([]int(nil), route...),
	}, nil
}

// ValidateRoute checks that route is a feasible closed walk and returns its cost.
//
// A feasible walk has one flight per city, leaves and re-enters the base,
// chains each destination to the next origin, lands on every waypoint exactly
// once, and departs each waypoint within its layover window.
func ValidateRoute(graph *domain.CityGraph, catalog *domain.Catalog, route []int) (int64, error) {
	base := graph.Base()
	if len(route) != graph.Len() {
		return 0, fmt.Errorf("%w: %d flights for %d cities", ErrInvalidRoute, len(route), graph.Len())
	}

	var (
		total   int64
		visited uint64
	)
	for i, id := range route {
		if id < 0 || id >= catalog.Len() {
			return 0, fmt.Errorf("%w: leg %d: unknown flight id %d", ErrInvalidRoute, i, id)
		}
		f := catalog.Flight(id)
		total += f.Cost

		if i == 0 {
			if f.Origin != base {
				return 0, fmt.Errorf("%w: first flight %d does not leave the base", ErrInvalidRoute, id)
			}
		} else {
			prev := catalog.Flight(route[i-1])
			if prev.Destination != f.Origin {
				return 0, fmt.Errorf(
					"%w: leg %d: flight %d leaves city %d but traveler is in city %d",
					ErrInvalidRoute, i, id, f.Origin, prev.Destination,
				)
			}
			lo, hi, _ := graph.LayoverWindow(f.Origin)
			if stay := f.Day - prev.Day; stay < lo || stay > hi {
				return 0, fmt.Errorf(
					"%w: leg %d: stay of %d days in city %d outside [%d, %d]",
					ErrInvalidRoute, i, stay, f.Origin, lo, hi,
				)
			}
		}

		last := i == len(route)-1
		if f.Destination == base {
			if !last {
				return 0, fmt.Errorf("%w: leg %d returns to the base early", ErrInvalidRoute, i)
			}
			continue
		}
		if last {
			return 0, fmt.Errorf("%w: last flight %d does not reach the base", ErrInvalidRoute, id)
		}
		bit := graph.Bit(f.Destination)
		if visited&bit != 0 {
			return 0, fmt.Errorf("%w: city %d visited twice", ErrInvalidRoute, f.Destination)
		}
		visited |= bit
	}
	if visited != graph.FullMask() {
		return 0, fmt.Errorf("%w: not every waypoint is visited", ErrInvalidRoute)
	}

	return total, nil
}
