package handlers

import (
	"encoding/json"
	"errors"
	"flight-itinerary-service/internal/adapters/timetable"
	"flight-itinerary-service/internal/api/dto"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"flight-itinerary-service/internal/services"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxWorkers = 64

// MaxSolveTimeout bounds the timeout_ms a request may ask for.
const MaxSolveTimeout = 10 * time.Minute

const maxTimeoutMS = int(MaxSolveTimeout / time.Millisecond)

// ItineraryHandler plans round trips over an inline or stored timetable.
type ItineraryHandler struct {
	Planner *services.TripPlanner
	// Defaults apply when a request leaves algorithm, workers or timeout unset.
	Defaults       services.Options
	DefaultTimeout time.Duration
	// MaxTimeout caps every solve, including ones with no timeout configured.
	// Zero means MaxSolveTimeout.
	MaxTimeout time.Duration
	Year       int
}

func (h *ItineraryHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.ItineraryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Timetable != nil && strings.TrimSpace(req.TimetableText) != "" {
		writeError(w, r, http.StatusBadRequest, "timetable and timetable_text are mutually exclusive")
		return
	}

	opts := h.Defaults
	if strings.TrimSpace(req.Algorithm) != "" {
		alg, err := services.ParseAlgorithm(req.Algorithm)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "algorithm must be one of auto, subset-dp, branch-and-bound")
			return
		}
		opts.Algorithm = alg
	}

	if req.Workers < 0 || req.Workers > maxWorkers {
		writeError(w, r, http.StatusBadRequest, "workers must be between 0 and 64")
		return
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}

	if req.TimeoutMS < 0 || req.TimeoutMS > maxTimeoutMS {
		writeError(w, r, http.StatusBadRequest, "timeout_ms must be between 0 and 600000")
		return
	}
	svcReq := services.PlanTripRequest{
		Options:   opts,
		Timeout:   h.solveTimeout(req.TimeoutMS),
		SkipCache: req.SkipCache,
	}

	switch {
	case req.Timetable != nil:
		tt := toDomainTimetable(*req.Timetable)
		svcReq.Timetable = &tt
	case strings.TrimSpace(req.TimetableText) != "":
		year := req.Year
		if year == 0 {
			year = h.Year
		}
		tt, err := timetable.Parse(strings.NewReader(req.TimetableText), year)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		svcReq.Timetable = &tt
	}

	res, err := h.Planner.PlanTrip(r.Context(), svcReq)
	switch {
	case domain.IsInvalidInput(err):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, services.ErrNoTimetable):
		writeError(w, r, http.StatusBadRequest, "timetable is required")
		return
	case err != nil:
		obs.Logger(r.Context()).Error("plan trip failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toItineraryResponse(res))
}

func (h *ItineraryHandler) solveTimeout(timeoutMS int) time.Duration {
	limit := h.MaxTimeout
	if limit <= 0 {
		limit = MaxSolveTimeout
	}
	timeout := h.DefaultTimeout
	if timeoutMS > 0 {
		timeout = time.Duration(timeoutMS) * time.Millisecond
	}
	if timeout <= 0 || timeout > limit {
		return limit
	}
	return timeout
}

func toItineraryResponse(res services.PlanTripResult) dto.ItineraryResponse {
	codes := make(map[int]string, len(res.Cities))
	for _, c := range res.Cities {
		codes[c.ID] = c.Code
	}

	it := res.Itinerary
	out := dto.ItineraryResponse{
		Status:    it.Status.String(),
		Feasible:  it.Feasible(),
		TotalCost: it.TotalCost,
		Flights:   make([]dto.ItineraryFlightResponse, 0, len(it.Flights)),
		Route:     it.Route,
		Cached:    res.Cached,
		Stats: dto.SearchStatsResponse{
			Algorithm: it.Stats.Algorithm,
			Expanded:  it.Stats.Expanded,
			Pruned:    it.Stats.Pruned,
			Workers:   it.Stats.Workers,
		},
	}
	if out.Route == nil {
		out.Route = []int{}
	}
	for _, f := range it.Flights {
		out.Flights = append(out.Flights, dto.ItineraryFlightResponse{
			ID:            f.ID,
			From:          codes[f.Origin],
			To:            codes[f.Destination],
			Day:           f.Day,
			Date:          f.Date,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Cost:          f.Cost,
		})
	}
	return out
}
