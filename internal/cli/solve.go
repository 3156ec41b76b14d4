package cli

import (
	"encoding/json"
	"errors"
	"flight-itinerary-service/internal/adapters/repositories"
	"flight-itinerary-service/internal/adapters/timetable"
	"flight-itinerary-service/internal/config"
	"flight-itinerary-service/internal/domain"
	"flight-itinerary-service/internal/platform/obs"
	"flight-itinerary-service/internal/services"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// ErrInconclusive is returned when the time budget ran out before the search
// could prove optimality or infeasibility.
var ErrInconclusive = errors.New("search stopped before it could prove a result")

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	algorithm    string
	workers      int
	timeout      time.Duration
	year         int
	solverConfig string
	asJSON       bool
}

func newSolveCmd() *cobra.Command {
	opts := solveOpts{year: timetable.DefaultYear}

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Plan the cheapest round trip for a timetable (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("solve: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runSolve(cmd, in, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "search strategy: auto, subset-dp, branch-and-bound")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "parallel branch-and-bound workers")
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", 0, "search time limit (0 uses the solver config)")
	cmd.Flags().IntVar(&opts.year, "year", opts.year, "calendar year of the dd/mm flight dates")
	cmd.Flags().StringVar(&opts.solverConfig, "solver-config", config.Get("SOLVER_CONFIG", ""), "YAML solver configuration")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the itinerary as JSON")

	return cmd
}

func runSolve(cmd *cobra.Command, in io.Reader, opts solveOpts) error {
	ctx := cmd.Context()
	logger := obs.Logger(ctx)

	cfg, err := config.LoadSolverConfig(opts.solverConfig)
	if err != nil {
		return err
	}
	if opts.algorithm != "" {
		cfg.Algorithm = opts.algorithm
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	tt, err := timetable.Parse(in, opts.year)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	logger.Debug("timetable parsed", "cities", len(tt.Cities), "flights", len(tt.Flights))

	planner := &services.TripPlanner{Repo: repositories.NewMemoryTimetableRepository(tt)}
	res, err := planner.PlanTrip(ctx, services.PlanTripRequest{
		Options: cfg.Options(),
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return err
	}

	it := res.Itinerary
	logger.Info("search finished",
		"status", it.Status,
		"algorithm", it.Stats.Algorithm,
		"expanded", it.Stats.Expanded,
		"pruned", it.Stats.Pruned,
	)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(it); err != nil {
			return fmt.Errorf("solve: encode itinerary: %w", err)
		}
	} else if err := timetable.Format(out, res.Cities, it); err != nil {
		return err
	}

	if it.Status == domain.StatusInconclusive {
		if len(it.Route) > 0 {
			logger.Warn("best walk found before the time limit", "cost", it.TotalCost)
		}
		return ErrInconclusive
	}
	return nil
}
