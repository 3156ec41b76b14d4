package services

import (
	"context"
	"flight-itinerary-service/internal/domain"
)

// dpKey is one search state: the waypoints visited so far, where the traveler
// is, and the day they arrived there.
type dpKey struct {
	visited uint64
	city    int32
	day     int32
}

// dpEntry memoizes the cheapest completion of a state and the flight that starts it.
type dpEntry struct {
	cost int64
	next int32
}

// dpSearch is a memoized subset dynamic program over reachable states.
//
//	cost(visited, city, day) = min over f in NextLegs(visited, city, day) of
//	    f.Cost                                   if f lands at the base
//	    f.Cost + cost(visited|bit(f), f.dst, f.Day) otherwise
//
// The arrival day stays in the key because the layover window of the next city
// depends on it. Only states reachable from the base are ever materialized.
type dpSearch struct {
	ctx     context.Context
	oracle  *Oracle
	graph   *domain.CityGraph
	catalog *domain.Catalog

	memo        map[dpKey]dpEntry
	expanded    int64
	interrupted bool
}

func newDPSearch(
	ctx context.Context,
	oracle *Oracle,
	graph *domain.CityGraph,
	catalog *domain.Catalog,
) *dpSearch {
	return &dpSearch{
		ctx:     ctx,
		oracle:  oracle,
		graph:   graph,
		catalog: catalog,
		memo:    make(map[dpKey]dpEntry),
	}
}

// tick counts an expansion and polls the context every checkMask+1 of them.
func (s *dpSearch) tick() bool {
	s.expanded++
	if s.expanded&checkMask == 0 && s.ctx.Err() != nil {
		s.interrupted = true
	}
	return s.interrupted
}

func (s *dpSearch) run() searchOutcome {
	base := s.graph.Base()
	total := s.costToGo(0, base, 0)

	out := searchOutcome{expanded: s.expanded, interrupted: s.interrupted}
	if s.interrupted || total == unreachable {
		return out
	}

	out.route = s.reconstruct()
	out.cost = total
	out.found = true
	return out
}

func (s *dpSearch) costToGo(visited uint64, city, day int) int64 {
	key := dpKey{visited: visited, city: int32(city), day: int32(day)}
	if e, ok := s.memo[key]; ok {
		return e.cost
	}
	if s.tick() {
		return unreachable
	}

	base := s.graph.Base()
	best, next := unreachable, int32(-1)

	// Candidates come in catalog order and only a strictly cheaper completion
	// replaces the incumbent, so ties keep the smallest flight id.
	for _, id := range s.oracle.NextLegs(visited, city, day) {
		f := s.catalog.Flight(id)
		c := f.Cost
		if f.Destination != base {
			rest := s.costToGo(visited|s.graph.Bit(f.Destination), f.Destination, f.Day)
			if s.interrupted {
				return unreachable
			}
			if rest == unreachable {
				continue
			}
			c += rest
		}
		if c < best {
			best, next = c, int32(id)
		}
	}

	s.memo[key] = dpEntry{cost: best, next: next}
	return best
}

// reconstruct follows the memoized choices from the initial state to the base.
func (s *dpSearch) reconstruct() []int {
	base := s.graph.Base()
	route := make([]int, 0, s.graph.Len())

	key := dpKey{visited: 0, city: int32(base), day: 0}
	for {
		e := s.memo[key]
		f := s.catalog.Flight(int(e.next))
		route = append(route, f.ID)
		if f.Destination == base {
			return route
		}
		key = dpKey{
			visited: key.visited | s.graph.Bit(f.Destination),
			city:    int32(f.Destination),
			day:     int32(f.Day),
		}
	}
}
