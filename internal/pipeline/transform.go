package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/collision-explorer/internal/domain"
)

// TransformResult holds the derived records and what cleaning removed or degraded.
type TransformResult struct {
	Records           []domain.CollisionRecord
	Dropped           int
	InvalidTimestamps int
}

// CollisionTransformer implements Transformer using the domain parse, clean,
// and derive functions.
type CollisionTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a CollisionTransformer.
func NewTransformer(logger *slog.Logger) *CollisionTransformer {
	return &CollisionTransformer{logger: logger}
}

func (t *CollisionTransformer) Transform(table domain.RawTable) TransformResult {
	parsed := domain.ParseRecords(table)
	cleaned := domain.Clean(parsed)
	derived := domain.Derive(cleaned)

	invalid := 0
	for _, rec := range derived {
		if !rec.HasTimestamp() {
			invalid++
		}
	}
	if invalid > 0 {
		t.logger.Debug("rows with unparsable crash date/time kept as invalid", "count", invalid)
	}

	return TransformResult{
		Records:           derived,
		Dropped:           len(parsed) - len(cleaned),
		InvalidTimestamps: invalid,
	}
}
