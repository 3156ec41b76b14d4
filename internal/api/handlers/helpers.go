package handlers

import (
	"encoding/json"
	"flight-itinerary-service/internal/api/dto"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).Error("encode failed", "req_id", obs.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func toDomainTimetable(p dto.TimetablePayload) domain.Timetable {
	tt := domain.Timetable{
		Cities:  make([]domain.City, 0, len(p.Cities)),
		Flights: make([]domain.Flight, 0, len(p.Flights)),
	}
	for _, c := range p.Cities {
		city := domain.City{ID: c.ID, Code: c.Code, Name: c.Name, IsBase: c.IsBase}
		if c.Layover != nil {
			city.Layover = &domain.Window{Min: c.Layover.Min, Max: c.Layover.Max}
		}
		tt.Cities = append(tt.Cities, city)
	}
	for _, f := range p.Flights {
		tt.Flights = append(tt.Flights, domain.Flight{
			Origin:        f.Origin,
			Destination:   f.Destination,
			Day:           f.Day,
			Cost:          f.Cost,
			Date:          f.Date,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
		})
	}
	return tt
}

func toTimetablePayload(tt domain.Timetable) dto.TimetablePayload {
	res := dto.TimetablePayload{
		Cities:  make([]dto.CityPayload, 0, len(tt.Cities)),
		Flights: make([]dto.FlightPayload, 0, len(tt.Flights)),
	}
	for _, c := range tt.Cities {
		city := dto.CityPayload{ID: c.ID, Code: c.Code, Name: c.Name, IsBase: c.IsBase}
		if c.Layover != nil {
			city.Layover = &dto.WindowPayload{Min: c.Layover.Min, Max: c.Layover.Max}
		}
		res.Cities = append(res.Cities, city)
	}
	for _, f := range tt.Flights {
		res.Flights = append(res.Flights, dto.FlightPayload{
			Origin:        f.Origin,
			Destination:   f.Destination,
			Day:           f.Day,
			Cost:          f.Cost,
			Date:          f.Date,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
		})
	}
	return res
}
