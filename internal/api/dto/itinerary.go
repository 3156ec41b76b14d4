package dto

type ItineraryRequest struct {
	// At most one of Timetable and TimetableText may be set. With neither,
	// the stored timetable is planned.
	Timetable     *TimetablePayload `json:"timetable"`
	TimetableText string            `json:"timetable_text"`
	Year          int               `json:"year"`
	Algorithm     string            `json:"algorithm"`
	Workers       int               `json:"workers"`
	TimeoutMS     int               `json:"timeout_ms"`
	SkipCache     bool              `json:"skip_cache"`
}

type ItineraryFlightResponse struct {
	ID            int    `json:"id"`
	From          string `json:"from"`
	To            string `json:"to"`
	Day           int    `json:"day"`
	Date          string `json:"date,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
	Cost          int64  `json:"cost"`
}

type SearchStatsResponse struct {
	Algorithm string `json:"algorithm"`
	Expanded  int64  `json:"expanded"`
	Pruned    int64  `json:"pruned"`
	Workers   int    `json:"workers"`
}

type ItineraryResponse struct {
	Status    string                    `json:"status"`
	Feasible  bool                      `json:"feasible"`
	TotalCost int64                     `json:"total_cost"`
	Flights   []ItineraryFlightResponse `json:"flights"`
	Route     []int                     `json:"route"`
	Cached    bool                      `json:"cached"`
	Stats     SearchStatsResponse       `json:"stats"`
}
