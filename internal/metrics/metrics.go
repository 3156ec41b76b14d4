// Package metrics exposes Prometheus instrumentation for the planner.
//
// Solve outcomes are counted by status, solve latency is a histogram and the
// search effort (expanded nodes, pruned branches) is accumulated per strategy.
// The itinerary cache reports hits and misses.
package metrics

import (
	"flight-itinerary-service/internal/domain"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the planner's Prometheus instruments.
type Collector struct {
	solves      *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	expanded    *prometheus.CounterVec
	pruned      *prometheus.CounterVec
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewCollector creates the instruments and registers them with reg. When reg
// also implements prometheus.Gatherer, Handler serves it.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_solves_total",
			Help: "Total number of itinerary searches by result status",
		}, []string{"status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_solve_duration_seconds",
			Help:    "Itinerary search latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"algorithm"}),
		expanded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_search_expanded_total",
			Help: "Search states expanded",
		}, []string{"algorithm"}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_search_pruned_total",
			Help: "Search branches cut by the lower bound",
		}, []string{"algorithm"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_cache_hits_total",
			Help: "Itinerary cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_cache_misses_total",
			Help: "Itinerary cache misses",
		}),
	}

	reg.MustRegister(c.solves, c.latency, c.expanded, c.pruned, c.cacheHits, c.cacheMisses)
	if g, ok := reg.(prometheus.Gatherer); ok {
		c.gatherer = g
	}
	return c
}

// RecordSolve records one finished search.
func (c *Collector) RecordSolve(it domain.Itinerary, elapsed time.Duration) {
	if c == nil {
		return
	}
	alg := it.Stats.Algorithm
	if alg == "" {
		alg = "unknown"
	}
	c.solves.WithLabelValues(it.Status.String()).Inc()
	c.latency.WithLabelValues(alg).Observe(elapsed.Seconds())
	c.expanded.WithLabelValues(alg).Add(float64(it.Stats.Expanded))
	c.pruned.WithLabelValues(alg).Add(float64(it.Stats.Pruned))
}

func (c *Collector) RecordCacheHit() {
	if c != nil {
		c.cacheHits.Inc()
	}
}

func (c *Collector) RecordCacheMiss() {
	if c != nil {
		c.cacheMisses.Inc()
	}
}

// Handler serves the registry the collector was registered with, or the
// default gatherer when that registry cannot be gathered.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
