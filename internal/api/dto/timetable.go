package dto

type WindowPayload struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type CityPayload struct {
	ID      int            `json:"id"`
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	IsBase  bool           `json:"is_base"`
	Layover *WindowPayload `json:"layover,omitempty"`
}

type FlightPayload struct {
	Origin        int    `json:"origin"`
	Destination   int    `json:"destination"`
	Day           int    `json:"day"`
	Cost          int64  `json:"cost"`
	Date          string `json:"date,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

type TimetablePayload struct {
	Cities  []CityPayload   `json:"cities"`
	Flights []FlightPayload `json:"flights"`
}
