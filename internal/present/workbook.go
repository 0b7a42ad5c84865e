package present

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/collision-explorer/internal/aggregate"
)

// Sheet is one worksheet of the summary export.
type Sheet struct {
	Name   string
	Header []any
	Rows   [][]any
}

// SummarySheets lays out every summary table as a worksheet, in dashboard
// order.
func SummarySheets(s aggregate.Summaries) []Sheet {
	sheets := []Sheet{
		countSheet("Factors", "Contributing Factor", s.Factors),
		totalSheet("Injuries", "Injuries", s.Injuries),
		totalSheet("Fatalities", "Fatalities", s.Fatalities),
		countSheet("Vehicles", "Vehicle Type", s.Vehicles),
	}

	daily := Sheet{Name: "Daily", Header: []any{"Date", "Collisions"}}
	for _, d := range s.Daily {
		daily.Rows = append(daily.Rows, []any{d.Day.Format(dayLayout), d.Collisions})
	}

	dayHour := Sheet{Name: "DayHour", Header: []any{"Day", "Hour", "Collisions"}}
	for _, c := range s.DayHour {
		dayHour.Rows = append(dayHour.Rows, []any{c.DayOfWeek, c.Hour, c.Collisions})
	}

	boroughs := Sheet{Name: "Boroughs", Header: []any{"Borough", "Total Collisions", "Persons Injured", "Persons Killed"}}
	for _, b := range s.Boroughs {
		boroughs.Rows = append(boroughs.Rows, []any{b.Borough, b.Collisions, b.Injured, b.Killed})
	}

	hourly := Sheet{Name: "HourlyByBorough", Header: []any{"Hour", "Borough", "Collisions"}}
	for _, c := range s.HourlyByBorough {
		hourly.Rows = append(hourly.Rows, []any{c.Hour, c.Borough, c.Collisions})
	}

	severity := Sheet{Name: "SeverityByDay", Header: []any{"Day", "Mean Severity", "Collisions"}}
	for _, d := range s.SeverityByDay {
		severity.Rows = append(severity.Rows, []any{d.DayOfWeek, d.MeanSeverity, d.Collisions})
	}

	return append(sheets, daily, dayHour, boroughs, hourly, severity)
}

func countSheet(name, label string, counts []aggregate.Count) Sheet {
	sh := Sheet{Name: name, Header: []any{label, "Count"}}
	for _, c := range counts {
		sh.Rows = append(sh.Rows, []any{c.Value, c.Count})
	}
	return sh
}

func totalSheet(name, label string, totals []aggregate.CategoryTotal) Sheet {
	sh := Sheet{Name: name, Header: []any{"Category", label}}
	for _, t := range totals {
		sh.Rows = append(sh.Rows, []any{t.Category, t.Total})
	}
	return sh
}

// BuildWorkbook writes the sheets into a new workbook. The caller owns the
// returned file and must Close it.
func BuildWorkbook(sheets []Sheet) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, sh := range sheets {
		idx, err := f.NewSheet(sh.Name)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sh.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}
		for r, row := range append([][]any{sh.Header}, sh.Rows...) {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("sheet %s row %d: %w", sh.Name, r+1, err)
			}
			if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("sheet %s row %d: %w", sh.Name, r+1, err)
			}
		}
	}
	f.DeleteSheet("Sheet1")
	return f, nil
}

// WriteWorkbook streams the summary export as an .xlsx document.
func WriteWorkbook(w io.Writer, s aggregate.Summaries) error {
	f, err := BuildWorkbook(SummarySheets(s))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
