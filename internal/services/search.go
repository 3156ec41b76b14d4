package services

import (
	"context"
	"errors"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"fmt"
	"math"
	"strings"
)

// Algorithm selects the exact search strategy.
type Algorithm string

const (
	AlgorithmAuto           Algorithm = "auto"
	AlgorithmSubsetDP       Algorithm = "subset-dp"
	AlgorithmBranchAndBound Algorithm = "branch-and-bound"
)

// DefaultMaxDPStates caps the estimated (visited, city, day) state space for Auto
// to pick the subset DP. Larger instances fall back to branch-and-bound.
const DefaultMaxDPStates int64 = 1 << 22

// unreachable marks a state with no completion.
const unreachable int64 = math.MaxInt64

// checkMask sets how often (in expanded nodes) a search polls its context.
const checkMask = 4095

var ErrNilInput = errors.New("solve: city graph and catalog are required")

// ParseAlgorithm accepts the names used by the CLI, the HTTP API and the solver config.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", AlgorithmAuto:
		return AlgorithmAuto, nil
	case AlgorithmSubsetDP, "dp":
		return AlgorithmSubsetDP, nil
	case AlgorithmBranchAndBound, "bb":
		return AlgorithmBranchAndBound, nil
	}
	return "", fmt.Errorf("parse algorithm: unknown algorithm %q", s)
}

// Options tune the search. The zero value is valid and behaves like DefaultOptions.
type Options struct {
	Algorithm Algorithm
	// Workers > 1 runs branch-and-bound subtrees in parallel.
	Workers int
	// MaxDPStates bounds the state space Auto accepts for the subset DP.
	MaxDPStates int64
}

func DefaultOptions() Options {
	return Options{Algorithm: AlgorithmAuto, Workers: 1, MaxDPStates: DefaultMaxDPStates}
}

func (o Options) normalized() Options {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmAuto
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.MaxDPStates <= 0 {
		o.MaxDPStates = DefaultMaxDPStates
	}
	return o
}

// searchOutcome is what a strategy hands back to Solve before extraction.
type searchOutcome struct {
	route       []int
	cost        int64
	found       bool
	interrupted bool
	expanded    int64
	pruned      int64
}

// Solve finds the minimum-cost closed walk from the base through every waypoint.
//
// The result status is Optimal, Infeasible, or Inconclusive when ctx ends first.
// Errors are reserved for bad arguments; an instance without a solution is not an error.
// Among equal-cost walks the one with the lexicographically smallest flight-id
// sequence in travel order is returned, whatever the strategy or worker count.
func Solve(
	ctx context.Context,
	graph *domain.CityGraph,
	catalog *domain.Catalog,
	opts Options,
) (_ domain.Itinerary, err error) {
	defer obs.Time(ctx, "search.Solve")(&err)

	if graph == nil || catalog == nil {
		return domain.Itinerary{}, ErrNilInput
	}
	if graph.Len() != catalog.CityCount() {
		return domain.Itinerary{}, fmt.Errorf(
			"solve: catalog indexes %d cities, graph has %d", catalog.CityCount(), graph.Len(),
		)
	}
	opts = opts.normalized()

	// A trip with no waypoints needs no flights.
	if graph.Waypoints() == 0 {
		return domain.Itinerary{
			Status:  domain.StatusOptimal,
			Flights: []domain.Flight{},
			Route:   []int{},
			Stats:   domain.SearchStats{Algorithm: "trivial", Workers: 1},
		}, nil
	}

	if !coverable(graph, catalog) {
		it := domain.Infeasible()
		it.Stats = domain.SearchStats{Algorithm: "precheck", Workers: 1}
		return it, nil
	}

	oracle := NewOracle(graph, catalog)
	algo := chooseAlgorithm(graph, catalog, opts)
	logger := obs.Logger(ctx)
	logger.Debug("search started",
		"algorithm", algo,
		"waypoints", graph.Waypoints(),
		"flights", catalog.Len(),
		"days", catalog.DistinctDays(),
		"workers", opts.Workers,
	)

	var out searchOutcome
	workers := 1
	switch algo {
	case AlgorithmSubsetDP:
		out = newDPSearch(ctx, oracle, graph, catalog).run()
	case AlgorithmBranchAndBound:
		workers = opts.Workers
		out = runBranchAndBound(ctx, oracle, graph, catalog, workers)
	default:
		return domain.Itinerary{}, fmt.Errorf("solve: unsupported algorithm %q", algo)
	}

	stats := domain.SearchStats{
		Algorithm: string(algo),
		Expanded:  out.expanded,
		Pruned:    out.pruned,
		Workers:   workers,
	}

	if !out.found {
		if out.interrupted {
			return domain.Itinerary{
				Status:  domain.StatusInconclusive,
				Flights: []domain.Flight{},
				Route:   []int{},
				Stats:   stats,
			}, nil
		}
		it := domain.Infeasible()
		it.Stats = stats
		return it, nil
	}

	it, err := Extract(graph, catalog, out.route, out.cost)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("solve: %w", err)
	}
	it.Stats = stats
	if out.interrupted {
		it.Status = domain.StatusInconclusive
		logger.Warn("search interrupted, returning best known walk", "cost", out.cost)
	}

	return it, nil
}

// coverable rejects instances where some city can never be entered or left.
func coverable(graph *domain.CityGraph, catalog *domain.Catalog) bool {
	for id := 0; id < graph.Len(); id++ {
		if len(catalog.FlightsFrom(id)) == 0 || len(catalog.FlightsTo(id)) == 0 {
			return false
		}
	}
	return true
}

// chooseAlgorithm resolves Auto by estimating the subset DP state space as
// 2^k * k * distinctDays and comparing it to opts.MaxDPStates.
func chooseAlgorithm(graph *domain.CityGraph, catalog *domain.Catalog, opts Options) Algorithm {
	if opts.Algorithm != AlgorithmAuto {
		return opts.Algorithm
	}
	k := graph.Waypoints()
	if k >= 40 {
		return AlgorithmBranchAndBound
	}
	days := int64(catalog.DistinctDays())
	if days < 1 {
		days = 1
	}
	states := (int64(1) << uint(k)) * int64(k)
	if states > opts.MaxDPStates/days {
		return AlgorithmBranchAndBound
	}
	return AlgorithmSubsetDP
}
