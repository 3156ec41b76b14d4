package services

import "flight-itinerary-service/internal/domain"

// Oracle answers "which flights may come next" for a partial itinerary.
// It never fails: an empty answer marks a dead branch.
type Oracle struct {
	graph   *domain.CityGraph
	catalog *domain.Catalog
}

func NewOracle(graph *domain.CityGraph, catalog *domain.Catalog) *Oracle {
	return &Oracle{graph: graph, catalog: catalog}
}

// CandidateDepartures returns the flights leaving city whose day lies in
// [arrivalDay+min, arrivalDay+max] of that city's layover window.
// The base has no window, so every flight leaving it qualifies.
func (o *Oracle) CandidateDepartures(city, arrivalDay int) []int {
	lo, hi, ok := o.graph.LayoverWindow(city)
	if !ok {
		return o.catalog.FlightsFrom(city)
	}
	return o.departuresBetween(city, arrivalDay+lo, arrivalDay+hi)
}

// CandidateDeparturesFromBase returns every flight that can open the trip.
func (o *Oracle) CandidateDeparturesFromBase() []int {
	return o.catalog.FlightsFrom(o.graph.Base())
}

// NextLegs returns the candidate departures that keep the walk valid:
// the destination is an unvisited waypoint, or the base once visited is full.
func (o *Oracle) NextLegs(visited uint64, city, arrivalDay int) []int {
	var candidates []int
	if city == o.graph.Base() && visited == 0 {
		candidates = o.CandidateDeparturesFromBase()
	} else {
		candidates = o.CandidateDepartures(city, arrivalDay)
	}

	full := o.graph.FullMask()
	out := make([]int, 0, len(candidates))
	for _, id := range candidates {
		dest := o.catalog.Flight(id).Destination
		if dest == o.graph.Base() {
			if visited == full {
				out = append(out, id)
			}
			continue
		}
		if visited&o.graph.Bit(dest) == 0 {
			out = append(out, id)
		}
	}
	return out
}

func (o *Oracle) departuresBetween(city, from, to int) []int {
	all := o.catalog.FlightsFrom(city)
	out := make([]int, 0, len(all))
	for _, id := range all {
		d := o.catalog.Flight(id).Day
		if d >= from && d <= to {
			out = append(out, id)
		}
	}
	return out
}
