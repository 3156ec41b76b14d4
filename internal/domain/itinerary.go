package domain

import "fmt"

// Status describes how a search finished.
type Status int

const (
	// StatusOptimal means the itinerary is a provably minimum-cost closed walk.
	StatusOptimal Status = iota
	// StatusInfeasible means the search space was exhausted without a closed walk.
	StatusInfeasible
	// StatusInconclusive means the search was interrupted before it could prove anything.
	StatusInconclusive
)

var statusNames = map[Status]string{
	StatusOptimal:      "optimal",
	StatusInfeasible:   "infeasible",
	StatusInconclusive: "inconclusive",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	for k, v := range statusNames {
		if v == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}

// SearchStats summarizes the work done by one solve.
type SearchStats struct {
	Algorithm string `json:"algorithm"`
	Expanded  int64  `json:"expanded"`
	Pruned    int64  `json:"pruned"`
	Workers   int    `json:"workers"`
}

// Represents the planned round trip.
// Flights are in presentation order (day ascending, then catalog id).
// Route holds the same flight ids in travel order, starting at the base.
// An Inconclusive itinerary may carry the best walk found before the search stopped.
type Itinerary struct {
	Status    Status      `json:"status"`
	TotalCost int64       `json:"total_cost"`
	Flights   []Flight    `json:"flights"`
	Route     []int       `json:"route"`
	Stats     SearchStats `json:"stats"`
}

// Feasible reports whether the itinerary is a proven optimum.
func (it Itinerary) Feasible() bool { return it.Status == StatusOptimal }

// Infeasible builds the result for an instance with no closed walk.
func Infeasible() Itinerary {
	return Itinerary{Status: StatusInfeasible, Flights: []Flight{}, Route: []int{}}
}
