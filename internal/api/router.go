package api

import (
	"flight-itinerary-service/internal/api/handlers"
	"flight-itinerary-service/internal/ports"
	"flight-itinerary-service/internal/services"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

// Config carries the dependencies the HTTP layer needs.
type Config struct {
	Planner        *services.TripPlanner
	Repo           ports.TimetableRepository
	Metrics        http.Handler
	Defaults       services.Options
	DefaultTimeout time.Duration
	Year           int
	Logger         *log.Logger
}

// responseSlack is the write budget left after the longest permitted solve.
const responseSlack = 30 * time.Second

// SolveLimit is the longest any single /itineraries request may search.
// Requests asking for more, or configured with no timeout, are clamped to it.
func (c Config) SolveLimit() time.Duration {
	return max(c.DefaultTimeout, handlers.MaxSolveTimeout)
}

// WriteTimeout is the http.Server write deadline matching SolveLimit.
func (c Config) WriteTimeout() time.Duration {
	return c.SolveLimit() + responseSlack
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(requestContext(logger))
	r.Use(loggingMiddleware)

	ttHandler := &handlers.TimetableHandler{Repo: cfg.Repo}
	itHandler := &handlers.ItineraryHandler{
		Planner:        cfg.Planner,
		Defaults:       cfg.Defaults,
		DefaultTimeout: cfg.DefaultTimeout,
		MaxTimeout:     cfg.SolveLimit(),
		Year:           cfg.Year,
	}

	r.Get("/health", handlers.Health)
	r.Get("/timetable", ttHandler.Get)
	r.Post("/itineraries", itHandler.Plan)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	return r
}
