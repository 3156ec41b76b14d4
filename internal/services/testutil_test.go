package services

import (
	"flight-itinerary-service/internal/domain"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// instance is a small timetable used across the search tests.
type instance struct {
	cities  []domain.City
	flights []domain.Flight
}

func (in instance) build(t *testing.T) (*domain.CityGraph, *domain.Catalog) {
	t.Helper()
	g, err := domain.NewCityGraph(in.cities, domain.BaseID)
	require.NoError(t, err)
	c, err := domain.NewCatalog(len(in.cities), in.flights)
	require.NoError(t, err)
	return g, c
}

func window(lo, hi int) *domain.Window { return &domain.Window{Min: lo, Max: hi} }

func fl(origin, dest, day int, cost int64) domain.Flight {
	return domain.Flight{Origin: origin, Destination: dest, Day: day, Cost: cost}
}

// abcInstance is the three-city scenario where input order is not the optimum:
// A->B->C->A costs 230, A->C->B->A costs 200.
func abcInstance() instance {
	return instance{
		cities: []domain.City{
			{ID: 0, Code: "A", IsBase: true},
			{ID: 1, Code: "B", Layover: window(1, 3)},
			{ID: 2, Code: "C", Layover: window(1, 3)},
		},
		flights: []domain.Flight{
			fl(0, 1, 0, 100),
			fl(1, 2, 2, 50),
			fl(2, 0, 4, 80),
			fl(0, 2, 0, 90),
			fl(2, 1, 2, 40),
			fl(1, 0, 4, 70),
		},
	}
}

// randomInstance draws a timetable with small costs so that equal-cost
// optima are common.
func randomInstance(r *rand.Rand, waypoints, days, flights int) instance {
	n := waypoints + 1
	in := instance{cities: []domain.City{{ID: 0, Code: "BASE", IsBase: true}}}
	for id := 1; id < n; id++ {
		lo := r.IntN(3)
		in.cities = append(in.cities, domain.City{
			ID:      id,
			Code:    fmt.Sprintf("C%d", id),
			Layover: window(lo, lo+r.IntN(3)),
		})
	}

	for i := 0; i < flights; i++ {
		o := r.IntN(n)
		d := r.IntN(n - 1)
		if d >= o {
			d++
		}
		in.flights = append(in.flights, fl(o, d, r.IntN(days), int64(1+r.IntN(6))))
	}
	// Keep the days monotonic in catalog order, like a parsed timetable.
	slices.SortStableFunc(in.flights, func(a, b domain.Flight) int { return a.Day - b.Day })
	return in
}

// bruteForce enumerates every chain of len(cities) flights from the base and
// keeps the cheapest feasible one, ties broken by lexicographic flight ids.
func bruteForce(g *domain.CityGraph, c *domain.Catalog) (route []int, cost int64, found bool) {
	path := make([]int, 0, g.Len())

	var walk func(city int)
	walk = func(city int) {
		if len(path) == g.Len() {
			total, err := ValidateRoute(g, c, path)
			if err != nil {
				return
			}
			if !found || total < cost || (total == cost && slices.Compare(path, route) < 0) {
				route, cost, found = slices.Clone(path), total, true
			}
			return
		}
		for _, id := range c.FlightsFrom(city) {
			path = append(path, id)
			walk(c.Flight(id).Destination)
			path = path[:len(path)-1]
		}
	}
	walk(g.Base())

	return route, cost, found
}

// deadEndInstance has plenty of partial walks but no way home: every return
// flight leaves on day 0, before any waypoint window opens.
func deadEndInstance(waypoints, days int) instance {
	in := instance{cities: []domain.City{{ID: 0, Code: "BASE", IsBase: true}}}
	for id := 1; id <= waypoints; id++ {
		in.cities = append(in.cities, domain.City{ID: id, Code: fmt.Sprintf("C%d", id), Layover: window(1, 2)})
		in.flights = append(in.flights, fl(0, id, 0, 10), fl(id, 0, 0, 10))
	}
	for day := 1; day < days; day++ {
		for o := 1; o <= waypoints; o++ {
			for d := 1; d <= waypoints; d++ {
				if o != d {
					in.flights = append(in.flights, fl(o, d, day, int64(1+(o*d+day)%5)))
				}
			}
		}
	}
	return in
}

// greedyLaneInstance hides a closable walk behind a dead-end region. The base
// offers one cheap opening flight, late in the catalog, into a chain that
// visits every waypoint and returns home; every other opening leads into the
// region of deadEndInstance. The greedy walk follows the chain while the
// depth-first search exhausts the region first.
func greedyLaneInstance(waypoints, days int) instance {
	in := deadEndInstance(waypoints, days)
	lane := 100 + days
	in.flights = append(in.flights, fl(0, 1, lane, 1))
	for id := 1; id < waypoints; id++ {
		in.flights = append(in.flights, fl(id, id+1, lane+id, 100))
	}
	in.flights = append(in.flights, fl(waypoints, 0, lane+waypoints, 100))
	return in
}
