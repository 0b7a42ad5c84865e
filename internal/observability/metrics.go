package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the explorer.
type Metrics struct {
	RowsLoaded        prometheus.Counter
	RowsDropped       prometheus.Counter
	InvalidTimestamps prometheus.Counter
	DatasetRows       prometheus.Gauge
	LoadDuration      prometheus.Histogram

	// Dashboard rendering metrics.
	Renders        *prometheus.CounterVec   // labels: view
	RenderDuration *prometheus.HistogramVec // labels: view

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collisions",
			Name:      "rows_loaded_total",
			Help:      "Total rows read from the input file.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collisions",
			Name:      "rows_dropped_total",
			Help:      "Rows removed by cleaning for missing or zero coordinates.",
		}),
		InvalidTimestamps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collisions",
			Name:      "invalid_timestamps_total",
			Help:      "Cleaned rows whose crash date and time did not parse.",
		}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "collisions",
			Name:      "dataset_rows",
			Help:      "Rows in the cleaned and derived dataset.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "collisions",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete load-clean-derive run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collisions",
			Name:      "renders_total",
			Help:      "Dashboard views rendered, by view.",
		}, []string{"view"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "collisions",
			Name:      "render_duration_seconds",
			Help:      "Time to aggregate and render a dashboard view.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"view"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collisions",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collisions",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "collisions",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "collisions",
			Name:      "geocode_enabled",
			Help:      "1 when borough geocoding is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.InvalidTimestamps,
		m.DatasetRows,
		m.LoadDuration,
		m.Renders,
		m.RenderDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsLoaded:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "collisions", Name: "rows_loaded_total"}),
		RowsDropped:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "collisions", Name: "rows_dropped_total"}),
		InvalidTimestamps:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "collisions", Name: "invalid_timestamps_total"}),
		DatasetRows:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "collisions", Name: "dataset_rows"}),
		LoadDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "collisions", Name: "load_duration_seconds"}),
		Renders:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collisions", Name: "renders_total"}, []string{"view"}),
		RenderDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "collisions", Name: "render_duration_seconds"}, []string{"view"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collisions", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "collisions", Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "collisions", Name: "geocode_api_duration_seconds"}),
		GeocodeEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "collisions", Name: "geocode_enabled"}),
	}
}
