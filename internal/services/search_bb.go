package services

import (
	"context"
	"flight-itinerary-service/internal/domain"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// bbEngine is a depth-first branch-and-bound over partial itineraries.
//
// Lower bound: every unvisited waypoint and the base still need exactly one
// inbound flight, so costSoFar + sum of their cheapest inbound costs never
// exceeds the cost of any completion. The sum is carried down the recursion
// as remaining and reduced as cities are entered.
//
// Branching follows NextLegs, which yields flights in catalog order. Complete
// walks are therefore met in lexicographic order of flight ids and only a
// strictly cheaper walk replaces the incumbent.
type bbEngine struct {
	ctx     context.Context
	oracle  *Oracle
	graph   *domain.CityGraph
	catalog *domain.Catalog
	base    int

	minIn []int64

	// shared is the best known cost: the greedy walk at first, then the best
	// across all workers. Against it only strictly worse bounds are cut, so an
	// equal-cost walk that is lexicographically smaller still gets recorded.
	shared *atomic.Int64

	path      []int
	bestRoute []int
	bestCost  int64
	found     bool

	expanded    int64
	pruned      int64
	interrupted bool
}

func newBBEngine(
	ctx context.Context,
	oracle *Oracle,
	graph *domain.CityGraph,
	catalog *domain.Catalog,
	minIn []int64,
	shared *atomic.Int64,
) *bbEngine {
	return &bbEngine{
		ctx:       ctx,
		oracle:    oracle,
		graph:     graph,
		catalog:   catalog,
		base:      graph.Base(),
		minIn:     minIn,
		shared:    shared,
		path:      make([]int, graph.Len()),
		bestRoute: make([]int, graph.Len()),
		bestCost:  unreachable,
	}
}

func (e *bbEngine) tick() bool {
	e.expanded++
	if e.expanded&checkMask == 0 && e.ctx.Err() != nil {
		e.interrupted = true
	}
	return e.interrupted
}

func (e *bbEngine) prunable(bound int64) bool {
	if e.found && bound >= e.bestCost {
		return true
	}
	return bound > e.shared.Load()
}

// record commits a closed walk of the given depth as the new incumbent.
func (e *bbEngine) record(cost int64, depth int) {
	copy(e.bestRoute, e.path[:depth])
	e.bestCost = cost
	e.found = true

	for {
		cur := e.shared.Load()
		if cost >= cur || e.shared.CompareAndSwap(cur, cost) {
			return
		}
	}
}

func (e *bbEngine) dfs(city, day int, visited uint64, cost, remaining int64, depth int) {
	if e.tick() {
		return
	}
	if depth > 0 && city == e.base {
		if !e.found || cost < e.bestCost {
			e.record(cost, depth)
		}
		return
	}
	if e.prunable(cost + remaining) {
		e.pruned++
		return
	}

	for _, id := range e.oracle.NextLegs(visited, city, day) {
		f := e.catalog.Flight(id)
		e.path[depth] = id
		e.dfs(
			f.Destination,
			f.Day,
			visited|e.graph.Bit(f.Destination),
			cost+f.Cost,
			remaining-e.minIn[f.Destination],
			depth+1,
		)
		if e.interrupted {
			return
		}
	}
}

func (e *bbEngine) outcome() searchOutcome {
	out := searchOutcome{
		expanded:    e.expanded,
		pruned:      e.pruned,
		interrupted: e.interrupted,
		found:       e.found,
	}
	if e.found {
		out.route = append([]int(nil), e.bestRoute...)
		out.cost = e.bestCost
	}
	return out
}

// cheapestInbound returns, per city, the cost of its cheapest arriving flight.
// Solve has already checked that every city has one.
func cheapestInbound(graph *domain.CityGraph, catalog *domain.Catalog) []int64 {
	minIn := make([]int64, graph.Len())
	for city := range minIn {
		minIn[city] = unreachable
		for _, id := range catalog.FlightsTo(city) {
			if c := catalog.Flight(id).Cost; c < minIn[city] {
				minIn[city] = c
			}
		}
	}
	return minIn
}

// runBranchAndBound searches sequentially, or with workers > 1 splits the tree
// by first departure flight and explores the subtrees on a bounded errgroup.
// A greedy walk, when one exists, seeds the shared bound and stands in as the
// incumbent if the search is interrupted before beating it.
func runBranchAndBound(
	ctx context.Context,
	oracle *Oracle,
	graph *domain.CityGraph,
	catalog *domain.Catalog,
	workers int,
) searchOutcome {
	minIn := cheapestInbound(graph, catalog)
	var remaining int64
	for _, c := range minIn {
		remaining += c
	}

	shared := atomic.NewInt64(unreachable)
	greedy, greedyCost, greedyOK := greedyRoute(oracle, graph, catalog)
	if greedyOK {
		shared.Store(greedyCost)
	}

	var out searchOutcome
	if workers <= 1 {
		e := newBBEngine(ctx, oracle, graph, catalog, minIn, shared)
		e.dfs(graph.Base(), 0, 0, 0, remaining, 0)
		out = e.outcome()
	} else {
		out = runPartitions(ctx, oracle, graph, catalog, minIn, remaining, shared, workers)
	}

	if out.interrupted && greedyOK && (!out.found || greedyCost < out.cost) {
		out.route, out.cost, out.found = greedy, greedyCost, true
	}
	return out
}

func runPartitions(
	ctx context.Context,
	oracle *Oracle,
	graph *domain.CityGraph,
	catalog *domain.Catalog,
	minIn []int64,
	remaining int64,
	shared *atomic.Int64,
	workers int,
) searchOutcome {
	first := oracle.NextLegs(0, graph.Base(), 0)
	parts := make([]searchOutcome, len(first))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, id := range first {
		i, id := i, id
		g.Go(func() error {
			f := catalog.Flight(id)
			e := newBBEngine(ctx, oracle, graph, catalog, minIn, shared)
			e.path[0] = id
			e.dfs(
				f.Destination,
				f.Day,
				graph.Bit(f.Destination),
				f.Cost,
				remaining-minIn[f.Destination],
				1,
			)
			parts[i] = e.outcome()
			return nil
		})
	}
	_ = g.Wait()

	// Partitions are in catalog order of their first flight, so taking the first
	// minimum keeps the sequential tie-break.
	var out searchOutcome
	for _, p := range parts {
		out.expanded += p.expanded
		out.pruned += p.pruned
		out.interrupted = out.interrupted || p.interrupted
		if p.found && (!out.found || p.cost < out.cost) {
			out.route, out.cost, out.found = p.route, p.cost, true
		}
	}
	return out
}
