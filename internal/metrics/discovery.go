package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query outcomes for availability lookups.
const (
	QueryAvailable   = "available"
	QueryUnavailable = "unavailable"
	QueryFailed      = "failed"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Discovery groups the collectors of the discovery engine. A nil *Discovery is valid
// and records nothing, so components can be built without a registry in tests.
type Discovery struct {
	availabilityQueries *prometheus.CounterVec
	resolutionDuration  prometheus.Histogram
	staleResolutions    prometheus.Counter
	activeSessions      prometheus.Gauge
	cacheLookups        *prometheus.CounterVec
	invalidations       prometheus.Counter
}

func NewDiscovery() *Discovery {
	return &Discovery{
		availabilityQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quadrago_availability_queries_total",
			Help: "Per-center availability queries by outcome.",
		}, []string{"result"}),
		resolutionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quadrago_availability_resolution_seconds",
			Help:    "Wall time of one availability index resolution.",
			Buckets: prometheus.DefBuckets,
		}),
		staleResolutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quadrago_availability_stale_resolutions_total",
			Help: "Resolutions discarded because filters changed while they were in flight.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quadrago_discovery_sessions_active",
			Help: "Discovery sessions currently held in memory.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quadrago_availability_cache_lookups_total",
			Help: "Availability cache lookups by outcome.",
		}, []string{"result"}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quadrago_availability_cache_invalidations_total",
			Help: "Availability cache keys removed by change events.",
		}),
	}
}

func (d *Discovery) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		d.availabilityQueries,
		d.resolutionDuration,
		d.staleResolutions,
		d.activeSessions,
		d.cacheLookups,
		d.invalidations,
	}
}

func (d *Discovery) ObserveQuery(result string) {
	if d == nil {
		return
	}
	d.availabilityQueries.WithLabelValues(result).Inc()
}

func (d *Discovery) ObserveResolution(elapsed time.Duration) {
	if d == nil {
		return
	}
	d.resolutionDuration.Observe(elapsed.Seconds())
}

func (d *Discovery) StaleResolution() {
	if d == nil {
		return
	}
	d.staleResolutions.Inc()
}

func (d *Discovery) SessionOpened() {
	if d == nil {
		return
	}
	d.activeSessions.Inc()
}

func (d *Discovery) SessionClosed() {
	if d == nil {
		return
	}
	d.activeSessions.Dec()
}

func (d *Discovery) ObserveCache(result string) {
	if d == nil {
		return
	}
	d.cacheLookups.WithLabelValues(result).Inc()
}

func (d *Discovery) Invalidated(keys int) {
	if d == nil {
		return
	}
	d.invalidations.Add(float64(keys))
}
