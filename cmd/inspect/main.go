// Command inspect loads a collision file through the shared pipeline and
// prints a phase-by-phase integrity report: header columns, coordinate
// cleaning, timestamp parsing, and derived fields. It exits non-zero when a
// phase fails.
//
// Usage:
//
//	go run ./cmd/inspect -data Motor_Vehicle_Collisions_-_Crashes_20241120.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/couchcryptid/collision-explorer/internal/adapter/csvfile"
	"github.com/couchcryptid/collision-explorer/internal/config"
	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/observability"
	"github.com/couchcryptid/collision-explorer/internal/pipeline"
)

// maxErrorsShown caps the detail lines printed per failed phase.
const maxErrorsShown = 20

// phase tracks pass/fail for an inspection phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

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

	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataPath := fs.String("data", cfg.DataPath, "path to the collisions CSV file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := observability.NewLoggerTo(stderr, cfg)
	return run(context.Background(), *dataPath, stdout, logger, metrics)
}

func run(ctx context.Context, dataPath string, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) int {
	fmt.Fprintln(out, "=== Collision Data Integrity Report ===")
	fmt.Fprintln(out)

	p := pipeline.New(csvfile.NewLoader(dataPath), pipeline.NewTransformer(logger), logger, metrics)
	ds, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		checkHeader(ds),
		checkCleaning(ds),
		checkTimestamps(ds),
		checkDerived(ds),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d raw, %d kept, %d dropped, %d invalid timestamps, %d missing borough\n",
		ds.RawRows, len(ds.Records), ds.Dropped, ds.InvalidTimestamps, missingBoroughs(ds.Records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxErrorsShown {
				fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxErrorsShown)
				break
			}
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll checks passed.")
		return 0
	}
	fmt.Fprintln(out, "\nInspection FAILED.")
	return 1
}

// ── Phase 1: Header ──

func checkHeader(ds *pipeline.Dataset) *phase {
	p := &phase{name: "Phase 1: Header (required columns)"}
	for _, col := range domain.RequiredColumns {
		if !slices.Contains(ds.Columns, col) {
			p.errorf("missing column %q", col)
		}
	}
	return p
}

// ── Phase 2: Cleaning ──

func checkCleaning(ds *pipeline.Dataset) *phase {
	p := &phase{name: "Phase 2: Cleaning (coordinates)"}
	if got := len(ds.Records) + ds.Dropped; got != ds.RawRows {
		p.errorf("kept %d + dropped %d != raw %d", len(ds.Records), ds.Dropped, ds.RawRows)
	}
	for _, rec := range ds.Records {
		if !domain.HasValidGeo(rec) {
			p.errorf("collision %s: kept with invalid coordinates", rec.CollisionID)
		}
	}
	return p
}

// ── Phase 3: Timestamps ──

func checkTimestamps(ds *pipeline.Dataset) *phase {
	p := &phase{name: "Phase 3: Timestamps (hour, weekday)"}
	invalid := 0
	for _, rec := range ds.Records {
		if !rec.HasTimestamp() {
			invalid++
			if rec.Hour != nil || rec.DayOfWeek != "" {
				p.errorf("collision %s: derived time fields without a timestamp", rec.CollisionID)
			}
			continue
		}
		if rec.Hour == nil || *rec.Hour < 0 || *rec.Hour > 23 {
			p.errorf("collision %s: hour out of range", rec.CollisionID)
		}
		if domain.WeekdayIndex(rec.DayOfWeek) < 0 {
			p.errorf("collision %s: unknown weekday %q", rec.CollisionID, rec.DayOfWeek)
		}
	}
	if invalid != ds.InvalidTimestamps {
		p.errorf("counted %d invalid timestamps, pipeline reported %d", invalid, ds.InvalidTimestamps)
	}
	if len(ds.Records) > 0 && invalid == len(ds.Records) {
		p.errorf("no timestamp parsed; check the CRASH DATE and CRASH TIME format")
	}
	return p
}

// ── Phase 4: Derived fields ──

func checkDerived(ds *pipeline.Dataset) *phase {
	p := &phase{name: "Phase 4: Derived fields (severity)"}
	for _, rec := range ds.Records {
		want := float64(domain.CountOrZero(rec.Casualties.PersonsInjured) + domain.CountOrZero(rec.Casualties.PersonsKilled))
		if rec.Severity != want {
			p.errorf("collision %s: severity %g, expected %g", rec.CollisionID, rec.Severity, want)
		}
		if again := domain.DeriveRecord(rec); again.Severity != rec.Severity || again.DayOfWeek != rec.DayOfWeek {
			p.errorf("collision %s: derivation is not idempotent", rec.CollisionID)
		}
	}
	return p
}

func missingBoroughs(records []domain.CollisionRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Borough == "" {
			n++
		}
	}
	return n
}
