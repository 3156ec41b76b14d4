package handlers

import (
	"flight-itinerary-service/internal/platform/obs"
	"flight-itinerary-service/internal/ports"
	"net/http"
)

// TimetableHandler exposes the stored timetable read-only.
type TimetableHandler struct {
	Repo ports.TimetableRepository
}

func (h *TimetableHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusNotFound, "no stored timetable")
		return
	}

	tt, err := h.Repo.LoadTimetable(r.Context())
	if err != nil {
		obs.Logger(r.Context()).Error("load timetable failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toTimetablePayload(tt))
}
