package services

import (
	"context"
	"errors"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"flight-itinerary-service/internal/ports"
	"fmt"
	"time"
)

var ErrNoTimetable = errors.New("plan trip: no timetable given and no repository configured")

type PlanTripRequest struct {
	// Timetable overrides the repository when non-nil.
	Timetable *domain.Timetable
	Options   Options
	// Timeout bounds the search. Zero means no limit beyond ctx.
	Timeout   time.Duration
	SkipCache bool
}

type PlanTripResult struct {
	Itinerary domain.Itinerary
	Cities    []domain.City
	Cached    bool
	Key       string
}

// TripPlanner wires the search engine to its ports. Cache and Metrics are optional.
type TripPlanner struct {
	Repo    ports.TimetableRepository
	Cache   ports.ItineraryCache
	Metrics ports.SolveRecorder
}

// PlanTrip loads and validates the timetable, serves a cached result when one
// exists, and otherwise runs the search. Only optimal and infeasible results
// are cached; an inconclusive result depends on the time budget.
func (p *TripPlanner) PlanTrip(ctx context.Context, req PlanTripRequest) (_ PlanTripResult, err error) {
	defer obs.Time(ctx, "plan.PlanTrip")(&err)
	logger := obs.Logger(ctx)

	tt, err := p.timetable(ctx, req)
	if err != nil {
		return PlanTripResult{}, err
	}

	graph, catalog, err := tt.Build()
	if err != nil {
		return PlanTripResult{}, fmt.Errorf("plan trip: %w", err)
	}

	res := PlanTripResult{Cities: graph.Cities(), Key: ItineraryKey(graph, catalog)}

	useCache := p.Cache != nil && !req.SkipCache
	if useCache {
		it, ok, err := p.Cache.Get(ctx, res.Key)
		switch {
		case err != nil:
			logger.Warn("itinerary cache read failed", "req_id", obs.RequestID(ctx), "err", err)
		case ok:
			p.recordCacheHit()
			res.Itinerary = it
			res.Cached = true
			return res, nil
		default:
			p.recordCacheMiss()
		}
	}

	solveCtx := ctx
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	start := time.Now()
	it, err := Solve(solveCtx, graph, catalog, req.Options)
	if err != nil {
		return PlanTripResult{}, fmt.Errorf("plan trip: %w", err)
	}
	if p.Metrics != nil {
		p.Metrics.RecordSolve(it, time.Since(start))
	}
	res.Itinerary = it

	logger.Info("itinerary solved",
		"req_id", obs.RequestID(ctx),
		"status", it.Status,
		"cost", it.TotalCost,
		"algorithm", it.Stats.Algorithm,
		"expanded", it.Stats.Expanded,
	)

	if useCache && it.Status != domain.StatusInconclusive {
		if err := p.Cache.Put(ctx, res.Key, it); err != nil {
			logger.Warn("itinerary cache write failed", "req_id", obs.RequestID(ctx), "err", err)
		}
	}

	return res, nil
}

func (p *TripPlanner) timetable(ctx context.Context, req PlanTripRequest) (domain.Timetable, error) {
	if req.Timetable != nil {
		return *req.Timetable, nil
	}
	if p.Repo == nil {
		return domain.Timetable{}, ErrNoTimetable
	}
	tt, err := p.Repo.LoadTimetable(ctx)
	if err != nil {
		return domain.Timetable{}, fmt.Errorf("plan trip: load timetable: %w", err)
	}
	return tt, nil
}

func (p *TripPlanner) recordCacheHit() {
	if p.Metrics != nil {
		p.Metrics.RecordCacheHit()
	}
}

func (p *TripPlanner) recordCacheMiss() {
	if p.Metrics != nil {
		p.Metrics.RecordCacheMiss()
	}
}
