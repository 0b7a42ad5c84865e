package present

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/pipeline"
)

// DashboardTitle heads the index page.
const DashboardTitle = "NYC Motor Vehicle Collisions Dashboard"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// IndexPage is the data behind the dashboard index.
type IndexPage struct {
	Title       string
	Overview    pipeline.Overview
	Boroughs    []string
	Selected    string
	GeneratedAt string
}

// HeatMapPage is the data behind the density map.
type HeatMapPage struct {
	Title  string
	View   domain.MapView
	Points [][2]float64
}

// MarkerMapPage is the data behind the marker map.
type MarkerMapPage struct {
	Title         string
	View          domain.MapView
	Markers       []Marker
	Icon          string
	PopupMaxWidth int
}

// NewMarkerMapPage fills in the fixed marker styling.
func NewMarkerMapPage(view domain.MapView, markers []Marker) MarkerMapPage {
	return MarkerMapPage{
		Title:         "Crash Markers on NYC Map",
		View:          view,
		Markers:       markers,
		Icon:          MarkerIcon,
		PopupMaxWidth: PopupMaxWidth,
	}
}

// NewHeatMapPage builds the density map over every record.
func NewHeatMapPage(records []domain.CollisionRecord) HeatMapPage {
	return HeatMapPage{
		Title:  "Geospatial Crash Heatmap",
		View:   domain.MapView{Center: domain.NYCCenter, Zoom: domain.DefaultZoom, Source: "default"},
		Points: HeatPoints(records),
	}
}

// BoroughOptions prepends domain.AllBoroughs to the selectable boroughs.
func BoroughOptions(choices []string) []string {
	return append([]string{domain.AllBoroughs}, choices...)
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// RenderIndex writes the dashboard index page.
func RenderIndex(w io.Writer, page IndexPage) error {
	return execute(w, "index.html", page)
}

// RenderHeatMap writes the density map page.
func RenderHeatMap(w io.Writer, page HeatMapPage) error {
	return execute(w, "heatmap.html", page)
}

// RenderMarkerMap writes the marker map page.
func RenderMarkerMap(w io.Writer, page MarkerMapPage) error {
	return execute(w, "markers.html", page)
}
