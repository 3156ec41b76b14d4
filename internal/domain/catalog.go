package domain

import "math"

// MaxFlightCost is the largest cost a single flight may carry in a network of
// cityCount cities. A closed walk uses exactly cityCount flights, so any walk
// total stays strictly below math.MaxInt64.
func MaxFlightCost(cityCount int) int64 {
	if cityCount <= 0 {
		return 0
	}
	return (math.MaxInt64 - 1) / int64(cityCount)
}

// legKey identifies flights that are interchangeable for planning purposes.
type legKey struct {
	day         int
	origin      int
	destination int
}

// Catalog is the deduplicated, indexed set of flights the solver may use.
// Flight ids are positions in the catalog, assigned in first-seen order.
// A Catalog is read-only after construction and safe for concurrent use.
type Catalog struct {
	flights []Flight
	from    [][]int
	to      [][]int
	days    int
}

// NewCatalog validates raw flights against cityCount and keeps the cheapest
// flight for every (day, origin, destination). On equal cost the first seen wins.
// A cheaper duplicate replaces the cost and the display times of the retained entry.
func NewCatalog(cityCount int, raw []Flight) (*Catalog, error) {
	if cityCount <= 0 {
		return nil, invalidf("cities", "at least one city is required")
	}

	c := &Catalog{
		flights: make([]Flight, 0, len(raw)),
		from:    make([][]int, cityCount),
		to:      make([][]int, cityCount),
	}
	maxCost := MaxFlightCost(cityCount)
	index := make(map[legKey]int, len(raw))
	seenDays := make(map[int]struct{})

	for i, f := range raw {
		if f.Origin < 0 || f.Origin >= cityCount {
			return nil, invalidf("flights", "flight #%d: unknown origin city %d", i+1, f.Origin)
		}
		if f.Destination < 0 || f.Destination >= cityCount {
			return nil, invalidf("flights", "flight #%d: unknown destination city %d", i+1, f.Destination)
		}
		if f.Origin == f.Destination {
			return nil, invalidf("flights", "flight #%d: origin and destination are both city %d", i+1, f.Origin)
		}
		if f.Day < 0 {
			return nil, invalidf("flights", "flight #%d: negative day %d", i+1, f.Day)
		}
		if f.Cost < 0 {
			return nil, invalidf("flights", "flight #%d: negative cost %d", i+1, f.Cost)
		}
		if f.Cost > maxCost {
			return nil, invalidf("flights", "flight #%d: cost %d exceeds %d", i+1, f.Cost, maxCost)
		}

		k := legKey{day: f.Day, origin: f.Origin, destination: f.Destination}
		if id, ok := index[k]; ok {
			kept := &c.flights[id]
			if f.Cost < kept.Cost {
				kept.Cost = f.Cost
				kept.DepartureTime = f.DepartureTime
				kept.ArrivalTime = f.ArrivalTime
			}
			continue
		}

		f.ID = len(c.flights)
		index[k] = f.ID
		c.flights = append(c.flights, f)
		c.from[f.Origin] = append(c.from[f.Origin], f.ID)
		c.to[f.Destination] = append(c.to[f.Destination], f.ID)
		seenDays[f.Day] = struct{}{}
	}
	c.days = len(seenDays)

	return c, nil
}

// Len returns the number of flights retained after deduplication.
func (c *Catalog) Len() int { return len(c.flights) }

// CityCount returns the number of cities the catalog was indexed for.
func (c *Catalog) CityCount() int { return len(c.from) }

// DistinctDays returns how many different departure days the catalog spans.
func (c *Catalog) DistinctDays() int { return c.days }

// Flight returns the flight with the given catalog id.
func (c *Catalog) Flight(id int) Flight { return c.flights[id] }

// Flights returns a copy of all flights in id order.
func (c *Catalog) Flights() []Flight {
	out := make([]Flight, len(c.flights))
	copy(out, c.flights)
	return out
}

// FlightsFrom returns the ids of flights departing city, in catalog order.
// The returned slice must not be modified.
func (c *Catalog) FlightsFrom(city int) []int {
	if city < 0 || city >= len(c.from) {
		return nil
	}
	return c.from[city]
}

// FlightsTo returns the ids of flights arriving at city, in catalog order.
// The returned slice must not be modified.
func (c *Catalog) FlightsTo(city int) []int {
	if city < 0 || city >= len(c.to) {
		return nil
	}
	return c.to[city]
}
