// Package present turns summary tables and sampled records into the
// dashboard's charts, maps, pages, and spreadsheet export.
package present

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/couchcryptid/collision-explorer/internal/aggregate"
	"github.com/couchcryptid/collision-explorer/internal/domain"
)

// Chart titles, shared with the spreadsheet sheet names where they fit.
const (
	TitleFactors         = "Top Contributing Factors to Collisions"
	TitleInjuries        = "Injuries by User-Groups"
	TitleFatalities      = "Fatalities by User-Groups"
	TitleVehicles        = "Top Vehicle Types Involved in Collisions"
	TitleDaily           = "Daily Collisions Over Time"
	TitleDayHour         = "Collisions Heatmap by Day and Hour"
	TitleBoroughs        = "Collisions by Borough"
	TitleHourlyByBorough = "Hourly Collision Trends by Borough"
	TitleSeverityByDay   = "Average Severity by Day of the Week"
)

const (
	chartWidth  = "900px"
	chartHeight = "500px"
	dayLayout   = "2006-01-02"
)

func baseOpts(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "item"}),
	}
}

// rankingChart draws a horizontal bar chart with the largest count on top.
func rankingChart(title, axis string, counts []aggregate.Count) *charts.Bar {
	names := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	// The category axis runs bottom-up once reversed.
	for i, c := range counts {
		j := len(counts) - 1 - i
		names[j] = c.Value
		data[j] = opts.BarData{Name: c.Value, Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOpts(title),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Number of Occurrences"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: axis}),
	)...)
	bar.SetXAxis(names).AddSeries("Count", data)
	bar.XYReversal()
	return bar
}

// FactorsChart ranks contributing factors.
func FactorsChart(counts []aggregate.Count) *charts.Bar {
	return rankingChart(TitleFactors, "Contributing Factor", counts)
}

// VehiclesChart ranks vehicle types.
func VehiclesChart(counts []aggregate.Count) *charts.Bar {
	return rankingChart(TitleVehicles, "Vehicle Type", counts)
}

// UserGroupChart draws per-user-group totals as one bar series.
func UserGroupChart(title, series string, totals []aggregate.CategoryTotal) *charts.Bar {
	names := make([]string, len(totals))
	data := make([]opts.BarData, len(totals))
	for i, t := range totals {
		names[i] = t.Category
		data[i] = opts.BarData{Name: t.Category, Value: t.Total}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOpts(title),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Count"}),
	)...)
	bar.SetXAxis(names).AddSeries(series, data)
	return bar
}

// DailyChart draws the daily collision series.
func DailyChart(days []aggregate.DailyCount) *charts.Line {
	x := make([]string, len(days))
	data := make([]opts.LineData, len(days))
	for i, d := range days {
		x[i] = d.Day.Format(dayLayout)
		data[i] = opts.LineData{Value: d.Collisions}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOpts(TitleDaily),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Collisions"}),
	)...)
	line.SetXAxis(x).AddSeries("Collisions", data)
	return line
}

func hourLabels() []string {
	hours := make([]string, 24)
	for h := range hours {
		hours[h] = strconv.Itoa(h)
	}
	return hours
}

// DayHourChart draws the weekday by hour matrix with weekdays Monday first.
func DayHourChart(cells []aggregate.DayHourCount) *charts.HeatMap {
	data := make([]opts.HeatMapData, 0, len(cells))
	maxCount := 0
	for _, c := range cells {
		data = append(data, opts.HeatMapData{
			Value: [3]interface{}{domain.WeekdayIndex(c.DayOfWeek), c.Hour, c.Collisions},
		})
		maxCount = max(maxCount, c.Collisions)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(baseOpts(TitleDayHour),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Day"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "Hour", Data: hourLabels()}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:     0,
			Max:     float32(maxCount),
			InRange: &opts.VisualMapInRange{Color: []string{"#f7fbff", "#6baed6", "#08306b"}},
		}),
	)...)
	hm.SetXAxis(domain.Weekdays[:]).AddSeries("Collisions", data)
	return hm
}

// bubbleSize maps a death toll to a marker diameter.
func bubbleSize(killed, maxKilled int) int {
	const minSize, maxSize = 10, 60
	if maxKilled == 0 {
		return minSize
	}
	return minSize + (maxSize-minSize)*killed/maxKilled
}

// BoroughChart plots collisions against injuries per borough, sized by deaths.
func BoroughChart(boroughs []aggregate.BoroughSummary) *charts.Scatter {
	maxKilled := 0
	for _, b := range boroughs {
		maxKilled = max(maxKilled, b.Killed)
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(baseOpts(TitleBoroughs),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Total Collisions"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Persons Injured"}),
	)...)
	for _, b := range boroughs {
		sc.AddSeries(b.Borough, []opts.ScatterData{{
			Name:       fmt.Sprintf("%s: %d killed", b.Borough, b.Killed),
			Value:      []int{b.Collisions, b.Injured, b.Killed},
			SymbolSize: bubbleSize(b.Killed, maxKilled),
		}})
	}
	return sc
}

// HourlyByBoroughChart draws one hourly line per borough. Hours without a
// collision plot as zero.
func HourlyByBoroughChart(counts []aggregate.HourBoroughCount) *charts.Line {
	series := make(map[string][]int)
	var order []string
	for _, c := range counts {
		if _, ok := series[c.Borough]; !ok {
			series[c.Borough] = make([]int, 24)
			order = append(order, c.Borough)
		}
		series[c.Borough][c.Hour] = c.Collisions
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOpts(TitleHourlyByBorough),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Collisions"}),
	)...)
	line.SetXAxis(hourLabels())
	for _, b := range order {
		data := make([]opts.LineData, 24)
		for h, n := range series[b] {
			data[h] = opts.LineData{Value: n}
		}
		line.AddSeries(b, data)
	}
	return line
}

// SeverityChart draws mean severity per weekday.
func SeverityChart(days []aggregate.DaySeverity) *charts.Bar {
	x := make([]string, len(days))
	data := make([]opts.BarData, len(days))
	for i, d := range days {
		x[i] = d.DayOfWeek
		data[i] = opts.BarData{Name: d.DayOfWeek, Value: d.MeanSeverity}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOpts(TitleSeverityByDay),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Day"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Severity"}),
	)...)
	bar.SetXAxis(x).AddSeries("Severity", data)
	return bar
}

// ChartsPage lays out every summary chart on one page in dashboard order.
func ChartsPage(s aggregate.Summaries) *components.Page {
	page := components.NewPage()
	page.PageTitle = "NYC Motor Vehicle Collisions"
	page.AddCharts(
		FactorsChart(s.Factors),
		UserGroupChart(TitleInjuries, "Injuries", s.Injuries),
		UserGroupChart(TitleFatalities, "Fatalities", s.Fatalities),
		VehiclesChart(s.Vehicles),
		DailyChart(s.Daily),
		DayHourChart(s.DayHour),
		BoroughChart(s.Boroughs),
		HourlyByBoroughChart(s.HourlyByBorough),
		SeverityChart(s.SeverityByDay),
	)
	return page
}

// RenderCharts writes the charts page as a standalone HTML document.
func RenderCharts(w io.Writer, s aggregate.Summaries) error {
	if err := ChartsPage(s).Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}
