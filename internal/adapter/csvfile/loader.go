// Package csvfile loads the collision export into an in-memory table.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// LoadError reports a missing or structurally unparsable input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader reads a delimited file with a header row.
// It implements pipeline.Source.
type Loader struct {
	path string
}

// NewLoader creates a Loader for the given path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads the whole file. Every column is kept as text; typing happens
// in the domain layer so that malformed cells degrade per row.
func (l *Loader) Load(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}

	f, err := os.Open(l.path)
	if err != nil {
		return domain.RawTable{}, &LoadError{Path: l.path, Err: err}
	}
	defer f.Close()

	df, err := ReadFrame(f)
	if err != nil {
		return domain.RawTable{}, &LoadError{Path: l.path, Err: err}
	}
	return toRawTable(df), nil
}

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("no header row")

// ReadFrame parses CSV text into a string-typed DataFrame. A header with no
// data rows yields a frame with the header's columns and zero rows.
func ReadFrame(r io.Reader) (dataframe.DataFrame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read csv: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err == nil {
		return df, nil
	}

	// gota rejects a frame without rows; only a lone header row is accepted here.
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	switch {
	case err != nil:
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", err)
	case len(records) == 0:
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", ErrNoHeader)
	case len(records) == 1:
		return emptyFrame(records[0]), nil
	default:
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}
}

func emptyFrame(header []string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		cols[i] = series.New([]string{}, series.String, name)
	}
	return dataframe.New(cols...)
}

// toRawTable converts the frame into header-keyed rows.
func toRawTable(df dataframe.DataFrame) domain.RawTable {
	columns := df.Names()
	records := df.Records() // first entry is the header row
	rows := make([]domain.RawRecord, 0, df.Nrow())
	for _, rec := range records[1:] {
		row := make(domain.RawRecord, len(columns))
		for i, col := range columns {
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}
	return domain.RawTable{Columns: columns, Rows: rows}
}
