package services

import (
	"context"
	"flight-itinerary-service/internal/domain"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []struct {
	name string
	opts Options
}{
	{"subset-dp", Options{Algorithm: AlgorithmSubsetDP}},
	{"branch-and-bound", Options{Algorithm: AlgorithmBranchAndBound}},
	{"branch-and-bound-parallel", Options{Algorithm: AlgorithmBranchAndBound, Workers: 4}},
	{"auto", DefaultOptions()},
}

func TestSolvePicksCheapestNotInputOrder(t *testing.T) {
	g, c := abcInstance().build(t)

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			it, err := Solve(context.Background(), g, c, s.opts)
			require.NoError(t, err)

			require.Equal(t, domain.StatusOptimal, it.Status)
			assert.True(t, it.Feasible())
			assert.Equal(t, int64(200), it.TotalCost)
			assert.Equal(t, []int{3, 4, 5}, it.Route)
			require.Len(t, it.Flights, 3)
			assert.Equal(t, 2, it.Flights[0].Destination)
			assert.Equal(t, 1, it.Flights[1].Destination)
			assert.Equal(t, 0, it.Flights[2].Destination)
		})
	}
}

func TestSolveZeroWaypoints(t *testing.T) {
	in := instance{
		cities:  []domain.City{{ID: 0, Code: "HOME", IsBase: true}},
		flights: nil,
	}
	g, c := in.build(t)

	it, err := Solve(context.Background(), g, c, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOptimal, it.Status)
	assert.Zero(t, it.TotalCost)
	assert.Empty(t, it.Flights)
	assert.Empty(t, it.Route)
}

func TestSolveInfeasibleWhenCityUnreachable(t *testing.T) {
	in := abcInstance()
	// Drop every flight into C.
	kept := in.flights[:0]
	for _, f := range in.flights {
		if f.Destination != 2 {
			kept = append(kept, f)
		}
	}
	in.flights = kept
	g, c := in.build(t)

	it, err := Solve(context.Background(), g, c, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInfeasible, it.Status)
	assert.False(t, it.Feasible())
	assert.Zero(t, it.TotalCost)
	assert.Empty(t, it.Flights)
	assert.Equal(t, "precheck", it.Stats.Algorithm)
}

func TestSolveInfeasibleWhenNoCityCanBeLeft(t *testing.T) {
	in := abcInstance()
	kept := in.flights[:0]
	for _, f := range in.flights {
		if f.Origin != 1 {
			kept = append(kept, f)
		}
	}
	in.flights = kept
	g, c := in.build(t)

	it, err := Solve(context.Background(), g, c, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInfeasible, it.Status)
}

func TestSolveInfeasibleWhenWindowsNeverMatch(t *testing.T) {
	in := abcInstance()
	in.cities[1].Layover = window(5, 6)
	in.cities[2].Layover = window(5, 6)
	g, c := in.build(t)

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			it, err := Solve(context.Background(), g, c, s.opts)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInfeasible, it.Status)
			assert.Empty(t, it.Route)
			assert.NotEqual(t, "precheck", it.Stats.Algorithm)
		})
	}
}

func TestSolveUsesOnlyCheapestDuplicate(t *testing.T) {
	in := abcInstance()
	// Same (day, origin, destination) as flight 3 but cheaper, and a pricier copy of flight 4.
	in.flights = append(in.flights, fl(0, 2, 0, 60), fl(2, 1, 2, 400))
	g, c := in.build(t)
	require.Equal(t, 6, c.Len())

	it, err := Solve(context.Background(), g, c, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, domain.StatusOptimal, it.Status)
	assert.Equal(t, int64(170), it.TotalCost)
	for _, f := range it.Flights {
		assert.NotEqual(t, int64(90), f.Cost)
		assert.NotEqual(t, int64(400), f.Cost)
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 60; round++ {
		in := randomInstance(r, 1+r.IntN(4), 8, 12+r.IntN(30))
		g, c := in.build(t)
		wantRoute, wantCost, wantFound := bruteForce(g, c)

		for _, s := range strategies {
			it, err := Solve(context.Background(), g, c, s.opts)
			require.NoError(t, err, "round %d %s", round, s.name)

			if !wantFound {
				assert.Equal(t, domain.StatusInfeasible, it.Status, "round %d %s", round, s.name)
				continue
			}
			require.Equal(t, domain.StatusOptimal, it.Status, "round %d %s", round, s.name)
			assert.Equal(t, wantCost, it.TotalCost, "round %d %s", round, s.name)
			assert.Equal(t, wantRoute, it.Route, "round %d %s: tie-break", round, s.name)
			assertClosedWalk(t, g, c, it)
		}
	}
}

// assertClosedWalk re-checks the walk properties independently of ValidateRoute.
func assertClosedWalk(t *testing.T, g *domain.CityGraph, c *domain.Catalog, it domain.Itinerary) {
	t.Helper()
	require.Len(t, it.Route, g.Len())

	seen := map[int]int{}
	city := g.Base()
	for i, id := range it.Route {
		f := c.Flight(id)
		require.Equal(t, city, f.Origin, "leg %d must leave the current city", i)
		if i > 0 {
			prev := c.Flight(it.Route[i-1])
			lo, hi, ok := g.LayoverWindow(f.Origin)
			require.True(t, ok)
			stay := f.Day - prev.Day
			assert.GreaterOrEqual(t, stay, lo)
			assert.LessOrEqual(t, stay, hi)
		}
		seen[f.Destination]++
		city = f.Destination
	}
	assert.Equal(t, g.Base(), city)
	for id := 1; id < g.Len(); id++ {
		assert.Equal(t, 1, seen[id], "waypoint %d visited once", id)
	}

	for i := 1; i < len(it.Flights); i++ {
		a, b := it.Flights[i-1], it.Flights[i]
		assert.True(t, a.Day < b.Day || (a.Day == b.Day && a.ID < b.ID), "flights sorted by day then id")
	}
}

func TestSolveCancelledIsInconclusive(t *testing.T) {
	g, c := deadEndInstance(10, 22).build(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			it, err := Solve(ctx, g, c, s.opts)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInconclusive, it.Status)
			assert.False(t, it.Feasible())
		})
	}
}

func TestSolveDeadEndExhaustsToInfeasible(t *testing.T) {
	g, c := deadEndInstance(4, 6).build(t)

	for _, s := range strategies {
		t.Run(s.name, func(t *testing.T) {
			it, err := Solve(context.Background(), g, c, s.opts)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInfeasible, it.Status)
			assert.Positive(t, it.Stats.Expanded)
		})
	}
}

func TestSolveRejectsMismatchedInputs(t *testing.T) {
	g, _ := abcInstance().build(t)
	other, err := domain.NewCatalog(5, nil)
	require.NoError(t, err)

	_, err = Solve(context.Background(), g, other, DefaultOptions())
	require.Error(t, err)

	_, err = Solve(context.Background(), nil, other, DefaultOptions())
	require.ErrorIs(t, err, ErrNilInput)
}

func TestChooseAlgorithm(t *testing.T) {
	g, c := abcInstance().build(t)

	assert.Equal(t, AlgorithmSubsetDP, chooseAlgorithm(g, c, DefaultOptions()))
	assert.Equal(t, AlgorithmBranchAndBound, chooseAlgorithm(g, c, Options{Algorithm: AlgorithmAuto, MaxDPStates: 4}))
	assert.Equal(t, AlgorithmBranchAndBound, chooseAlgorithm(g, c, Options{Algorithm: AlgorithmBranchAndBound}))
}

func TestParseAlgorithm(t *testing.T) {
	for in, want := range map[string]Algorithm{
		"":                 AlgorithmAuto,
		"AUTO":             AlgorithmAuto,
		"dp":               AlgorithmSubsetDP,
		"subset-dp":        AlgorithmSubsetDP,
		"bb":               AlgorithmBranchAndBound,
		"branch-and-bound": AlgorithmBranchAndBound,
	} {
		got, err := ParseAlgorithm(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAlgorithm("greedy")
	assert.Error(t, err)
}
