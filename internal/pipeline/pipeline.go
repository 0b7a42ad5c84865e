package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/observability"
)

// TailSize is the number of trailing raw rows kept for the data preview.
const TailSize = 5

// Source reads the raw collision table.
type Source interface {
	Load(ctx context.Context) (domain.RawTable, error)
}

// Transformer converts a raw table into cleaned and derived records.
type Transformer interface {
	Transform(table domain.RawTable) TransformResult
}

// Dataset is the immutable output of one pipeline run. Consumers must not
// modify Records; every view recomputes its own aggregates from it.
type Dataset struct {
	Columns           []string
	RawRows           int
	Tail              []domain.RawRecord
	Records           []domain.CollisionRecord
	Dropped           int
	InvalidTimestamps int
	LoadedAt          time.Time
}

// Overview summarises the raw table and what cleaning did to it.
type Overview struct {
	RawRows           int                `json:"raw_rows"`
	Columns           []string           `json:"columns"`
	Tail              []domain.RawRecord `json:"tail"`
	Rows              int                `json:"rows"`
	Dropped           int                `json:"dropped"`
	InvalidTimestamps int                `json:"invalid_timestamps"`
	LoadedAt          time.Time          `json:"loaded_at"`
}

// Overview reports the dataset's shape.
func (d *Dataset) Overview() Overview {
	return Overview{
		RawRows:           d.RawRows,
		Columns:           d.Columns,
		Tail:              d.Tail,
		Rows:              len(d.Records),
		Dropped:           d.Dropped,
		InvalidTimestamps: d.InvalidTimestamps,
		LoadedAt:          d.LoadedAt,
	}
}

// Pipeline runs load, clean, and derive once per call to Run.
type Pipeline struct {
	source      Source
	transformer Transformer
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
}

// New creates a Pipeline with the given stages and observability.
func New(s Source, t Transformer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:      s,
		transformer: t,
		logger:      logger,
		metrics:     metrics,
	}
}

// CheckReadiness returns nil once a dataset has been produced.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Run loads the source and returns the cleaned, derived dataset. A load
// failure is returned as-is; per-row problems never fail the run.
func (p *Pipeline) Run(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	table, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collisions: %w", err)
	}
	p.metrics.RowsLoaded.Add(float64(len(table.Rows)))

	result := p.transformer.Transform(table)

	p.metrics.RowsDropped.Add(float64(result.Dropped))
	p.metrics.InvalidTimestamps.Add(float64(result.InvalidTimestamps))
	p.metrics.DatasetRows.Set(float64(len(result.Records)))
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())

	ds := &Dataset{
		Columns:           table.Columns,
		RawRows:           len(table.Rows),
		Tail:              tail(table.Rows, TailSize),
		Records:           result.Records,
		Dropped:           result.Dropped,
		InvalidTimestamps: result.InvalidTimestamps,
		LoadedAt:          domain.Now(),
	}
	p.ready.Store(true)

	p.logger.Info("dataset loaded",
		"raw_rows", ds.RawRows,
		"columns", len(ds.Columns),
		"rows", len(ds.Records),
		"dropped", ds.Dropped,
		"invalid_timestamps", ds.InvalidTimestamps,
		"duration", time.Since(start),
	)
	return ds, nil
}

func tail(rows []domain.RawRecord, n int) []domain.RawRecord {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}
