package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/observability"
	"github.com/couchcryptid/collision-explorer/internal/pipeline"
)

// Options configures the dashboard server.
type Options struct {
	Addr             string
	MarkerSampleSize int
	// Geocoder centres the marker map on the selected borough. Nil disables it.
	Geocoder domain.Geocoder
}

// Server serves the dashboard pages, JSON summaries, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	opts       Options
	dataset    atomic.Pointer[pipeline.Dataset]
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the dashboard server. Dataset routes answer 503 until
// SetDataset is called.
func NewServer(o Options, ready sharedobs.ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         o.Addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		opts:    o,
		logger:  logger,
		metrics: metrics,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.requireDataset)
		r.Get("/", s.timed("index", s.handleIndex))
		r.Get("/charts", s.timed("charts", s.handleCharts))
		r.Get("/map/heat", s.timed("heatmap", s.handleHeatMap))
		r.Get("/map/markers", s.timed("markers", s.handleMarkers))
		r.Get("/export.xlsx", s.timed("export", s.handleExport))

		r.Route("/api", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Get("/overview", s.handleOverview)
			r.Get("/boroughs", s.handleBoroughs)
			r.Get("/summary/{name}", s.timed("summary", s.handleSummary))
		})
	})

	return s
}

// SetDataset publishes the loaded dataset to the handlers.
func (s *Server) SetDataset(ds *pipeline.Dataset) {
	s.dataset.Store(ds)
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type datasetKey struct{}

func (s *Server) requireDataset(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds := s.dataset.Load()
		if ds == nil {
			http.Error(w, "dataset not loaded", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), datasetKey{}, ds)))
	})
}

func datasetFrom(r *http.Request) *pipeline.Dataset {
	ds, _ := r.Context().Value(datasetKey{}).(*pipeline.Dataset)
	return ds
}

// timed records render count and latency per view.
func (s *Server) timed(view string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		s.metrics.Renders.WithLabelValues(view).Inc()
		s.metrics.RenderDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
	}
}
