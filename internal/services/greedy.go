package services

import (
	"flight-itinerary-service/internal/domain"
)

// greedyRoute builds one closed walk by always taking the cheapest admissible
// next flight, the lowest id on equal cost. It never backtracks, so it may
// dead-end; ok reports whether it reached the base with every waypoint visited.
//
// The walk is only an upper bound for branch-and-bound. It is not optimal.
func greedyRoute(oracle *Oracle, graph *domain.CityGraph, catalog *domain.Catalog) (route []int, cost int64, ok bool) {
	base := graph.Base()
	route = make([]int, 0, graph.Len())

	city, day := base, 0
	var visited uint64
	for {
		legs := oracle.NextLegs(visited, city, day)
		if len(legs) == 0 {
			return nil, 0, false
		}

		best := legs[0]
		for _, id := range legs[1:] {
			if catalog.Flight(id).Cost < catalog.Flight(best).Cost {
				best = id
			}
		}

		f := catalog.Flight(best)
		route = append(route, best)
		cost += f.Cost
		if f.Destination == base {
			return route, cost, true
		}
		city, day = f.Destination, f.Day
		visited |= graph.Bit(f.Destination)
	}
}
