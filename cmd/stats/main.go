// Command stats runs the rush-hour and day-of-week one-way ANOVA tests on
// collision severity and prints one p-value line per test.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/collision-explorer/internal/adapter/csvfile"
	"github.com/couchcryptid/collision-explorer/internal/analysis"
	"github.com/couchcryptid/collision-explorer/internal/config"
	"github.com/couchcryptid/collision-explorer/internal/observability"
	"github.com/couchcryptid/collision-explorer/internal/pipeline"
)

func main() {
	os.Exit(cli(os.Args[1:], os.Stdout, os.Stderr, observability.NewMetrics()))
}

// cli parses flags and runs the command. stdout carries only the report;
// logs go to stderr.
func cli(args []string, stdout, stderr io.Writer, metrics *observability.Metrics) int {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(stderr, nil)).Error("failed to load config", "error", err)
		return 1
	}

	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataPath := fs.String("data", cfg.DataPath, "path to the collisions CSV file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := observability.NewLoggerTo(stderr, cfg)
	return run(context.Background(), *dataPath, stdout, logger, metrics)
}

func run(ctx context.Context, dataPath string, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) int {
	p := pipeline.New(csvfile.NewLoader(dataPath), pipeline.NewTransformer(logger), logger, metrics)
	ds, err := p.Run(ctx)
	if err != nil {
		logger.Error("failed to load dataset", "path", dataPath, "error", err)
		return 1
	}

	results, errs := analysis.RunAll(ds.Records)
	for i, res := range results {
		if errs[i] != nil {
			logger.Warn("anova skipped", "test", res.Name, "n", res.N, "groups", res.Groups, "error", errs[i])
		}
		fmt.Fprintf(out, "ANOVA for Hypothesis (%s): p-value = %v\n", res.Name, res.PValue)
	}
	return 0
}
