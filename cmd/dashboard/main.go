// Command dashboard loads the collision file once and serves the interactive
// dashboard, its JSON summaries, and the XLSX export over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/collision-explorer/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/collision-explorer/internal/adapter/http"
	"github.com/couchcryptid/collision-explorer/internal/adapter/mapbox"
	"github.com/couchcryptid/collision-explorer/internal/config"
	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/observability"
	"github.com/couchcryptid/collision-explorer/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	dataPath := flag.String("data", cfg.DataPath, "path to the collisions CSV file")
	flag.Parse()

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	p := pipeline.New(csvfile.NewLoader(*dataPath), pipeline.NewTransformer(logger), logger, metrics)

	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:             cfg.HTTPAddr,
		MarkerSampleSize: cfg.MarkerSampleSize,
		Geocoder:         geocoder,
	}, p, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server; /readyz reports 503 until the dataset is loaded.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	ds, err := p.Run(ctx)
	if err != nil {
		logger.Error("failed to load dataset", "path", *dataPath, "error", err)
		shutdown(srv, cfg, logger)
		os.Exit(1)
	}
	srv.SetDataset(ds)

	<-ctx.Done()
	logger.Info("shutting down")
	shutdown(srv, cfg, logger)
	logger.Info("shutdown complete")
}

func shutdown(srv *httpadapter.Server, cfg *config.Config, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
}
