package domain

// Represents a single scheduled flight in the timetable.
// Day is the departure date as an offset from the earliest flight date.
// Date, DepartureTime and ArrivalTime are opaque display fields.
type Flight struct {
	ID            int    `json:"id"`
	Origin        int    `json:"origin"`
	Destination   int    `json:"destination"`
	Day           int    `json:"day"`
	Cost          int64  `json:"cost"`
	Date          string `json:"date,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

