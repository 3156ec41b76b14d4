package domain

import "strings"

// BaseID is the city id reserved for the base.
const BaseID = 0

// MaxWaypoints is the largest number of non-base cities a visited-set bitmask can hold.
const MaxWaypoints = 64

// CityGraph holds per-city metadata for one trip.
// Waypoint ids 1..N-1 map to bits 0..N-2 of the visited mask.
type CityGraph struct {
	cities []City
}

// NewCityGraph validates the city list and returns the graph.
//
// Rules: ids are exactly 0..N-1, baseID is 0 and is the only city flagged as base,
// codes are non-empty and unique, and every waypoint has a window with 0 <= Min <= Max.
func NewCityGraph(cities []City, baseID int) (*CityGraph, error) {
	if len(cities) == 0 {
		return nil, invalidf("cities", "at least one city is required")
	}
	if baseID != BaseID {
		return nil, invalidf("base", "base must have id %d, got %d", BaseID, baseID)
	}
	if len(cities)-1 > MaxWaypoints {
		return nil, invalidf("cities", "%d waypoints exceeds the limit of %d", len(cities)-1, MaxWaypoints)
	}

	ordered := make([]City, len(cities))
	placed := make([]bool, len(cities))
	codes := make(map[string]int, len(cities))
	bases := 0

	for _, c := range cities {
		if c.ID < 0 || c.ID >= len(cities) {
			return nil, invalidf("cities", "city id %d out of range 0..%d", c.ID, len(cities)-1)
		}
		if placed[c.ID] {
			return nil, invalidf("cities", "duplicate city id %d", c.ID)
		}

		code := strings.TrimSpace(c.Code)
		if code == "" {
			return nil, invalidf("cities", "city %d has no airport code", c.ID)
		}
		if other, ok := codes[code]; ok {
			return nil, invalidf("cities", "airport code %q used by cities %d and %d", code, other, c.ID)
		}
		codes[code] = c.ID

		if c.IsBase {
			bases++
			if c.ID != baseID {
				return nil, invalidf("base", "city %d (%s) is flagged as base but base id is %d", c.ID, code, baseID)
			}
		} else {
			if c.ID == baseID {
				return nil, invalidf("base", "city %d (%s) is not flagged as base", c.ID, code)
			}
			if c.Layover == nil {
				return nil, invalidf("layover", "city %s has no layover window", code)
			}
			if c.Layover.Min < 0 || c.Layover.Max < 0 {
				return nil, invalidf("layover", "city %s has a negative layover bound", code)
			}
			if c.Layover.Min > c.Layover.Max {
				return nil, invalidf("layover", "city %s has min %d greater than max %d", code, c.Layover.Min, c.Layover.Max)
			}
		}

		c.Code = code
		ordered[c.ID] = c
		placed[c.ID] = true
	}
	if bases != 1 {
		return nil, invalidf("base", "exactly one base city is required, got %d", bases)
	}

	return &CityGraph{cities: ordered}, nil
}

// Len returns the number of cities including the base.
func (g *CityGraph) Len() int { return len(g.cities) }

// Base returns the id of the base city.
func (g *CityGraph) Base() int { return BaseID }

// Waypoints returns how many non-base cities must be visited.
func (g *CityGraph) Waypoints() int { return len(g.cities) - 1 }

// City returns the city with the given id.
func (g *CityGraph) City(id int) City { return g.cities[id] }

// Cities returns a copy of the cities in id order.
func (g *CityGraph) Cities() []City {
	out := make([]City, len(g.cities))
	copy(out, g.cities)
	return out
}

// LayoverWindow returns the inclusive stay bounds of a waypoint.
// ok is false for the base and for unknown ids.
func (g *CityGraph) LayoverWindow(id int) (lo, hi int, ok bool) {
	if id < 0 || id >= len(g.cities) || g.cities[id].Layover == nil {
		return 0, 0, false
	}
	w := g.cities[id].Layover
	return w.Min, w.Max, true
}

// Bit returns the visited-mask bit of a waypoint. The base has no bit.
func (g *CityGraph) Bit(id int) uint64 {
	if id <= BaseID {
		return 0
	}
	return 1 << uint(id-1)
}

// FullMask is the visited mask with every waypoint set.
func (g *CityGraph) FullMask() uint64 {
	k := g.Waypoints()
	if k == 0 {
		return 0
	}
	if k == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(k)) - 1
}
