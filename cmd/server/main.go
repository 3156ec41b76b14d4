package main

import (
	"context"
	"database/sql"
	"errors"
	"flight-itinerary-service/internal/adapters/cache"
	"flight-itinerary-service/internal/adapters/repositories"
	"flight-itinerary-service/internal/api"
	"flight-itinerary-service/internal/config"
	"flight-itinerary-service/internal/metrics"
	"flight-itinerary-service/internal/platform/db"
	"flight-itinerary-service/internal/platform/obs"
	"flight-itinerary-service/internal/ports"
	"flight-itinerary-service/internal/services"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (PostgreSQL, Redis) behind ports and starts the HTTP server.
func main() {
	hadDotEnv := config.LoadDotEnv()
	settings := config.FromEnv()

	logger := obs.NewLogger(os.Stderr, obs.ParseLevel(settings.LogLevel))
	if !hadDotEnv {
		logger.Info("No .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = obs.WithLogger(ctx, logger)

	if err := run(ctx, settings, logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(ctx context.Context, settings config.Settings, logger *log.Logger) error {
	solverCfg, err := config.LoadSolverConfig(settings.SolverConfig)
	if err != nil {
		return err
	}

	var (
		repo     ports.TimetableRepository
		database *sql.DB
	)
	if settings.DatabaseURL != "" {
		database, err = db.Open(ctx, settings.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		// Schema init is idempotent, so local runs start without dbtool.
		if err := repositories.InitSchema(ctx, database); err != nil {
			return err
		}
		repo = repositories.NewPostgresTimetableRepository(database)
	} else {
		logger.Warn("DATABASE_URL not set, only inline timetables can be planned")
	}

	itCache, closeCache, err := openCache(ctx, settings, database)
	if err != nil {
		return err
	}
	defer closeCache()

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	planner := &services.TripPlanner{Repo: repo, Cache: itCache, Metrics: collector}

	apiCfg := api.Config{
		Planner:        planner,
		Repo:           repo,
		Metrics:        collector.Handler(),
		Defaults:       solverCfg.Options(),
		DefaultTimeout: solverCfg.Timeout,
		Year:           settings.TimetableYear,
		Logger:         logger,
	}
	router := api.NewRouter(apiCfg)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      apiCfg.WriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "cache", settings.CacheBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openCache selects the itinerary cache backend named by CACHE_BACKEND.
func openCache(ctx context.Context, settings config.Settings, database *sql.DB) (ports.ItineraryCache, func(), error) {
	noop := func() {}

	switch settings.CacheBackend {
	case "", "none":
		return nil, noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
		c := cache.NewRedisItineraryCache(client, settings.CacheTTL)
		if err := c.Ping(ctx); err != nil {
			client.Close()
			return nil, noop, err
		}
		return c, func() { _ = client.Close() }, nil
	case "sql":
		if database == nil {
			return nil, noop, errors.New("CACHE_BACKEND=sql requires DATABASE_URL")
		}
		return cache.NewSQLItineraryCache(database, settings.CacheTTL), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown CACHE_BACKEND %q (want none, redis or sql)", settings.CacheBackend)
}
