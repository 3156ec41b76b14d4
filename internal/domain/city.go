package domain

// Window is an inclusive range of days a traveler stays in a city
// between arriving and taking the next departure.
type Window struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether a stay of days lies within the window.
func (w Window) Contains(days int) bool {
	return days >= w.Min && days <= w.Max
}

// Represents a city on the trip.
// ID 0 is reserved for the base, where the trip starts and ends.
// Code and Name are display data owned by the input layer; the solver only uses ID.
// Layover is nil for the base and required for every waypoint.
type City struct {
	ID      int     `json:"id"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	IsBase  bool    `json:"is_base"`
	Layover *Window `json:"layover,omitempty"`
}
