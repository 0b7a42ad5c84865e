package http

import (
	"bytes"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/couchcryptid/collision-explorer/internal/aggregate"
	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/present"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// selectedBorough reads the borough query parameter. Unknown values fall
// back to domain.AllBoroughs.
func selectedBorough(r *http.Request, choices []string) string {
	b := r.URL.Query().Get("borough")
	if slices.Contains(choices, b) {
		return b
	}
	return domain.AllBoroughs
}

// writeHTML buffers a render so a failure can still produce a 500.
func (s *Server) writeHTML(w http.ResponseWriter, view string, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.logger.Error("render failed", "view", view, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ds := datasetFrom(r)
	choices := aggregate.BoroughChoices(ds.Records)
	page := present.IndexPage{
		Title:       present.DashboardTitle,
		Overview:    ds.Overview(),
		Boroughs:    present.BoroughOptions(choices),
		Selected:    selectedBorough(r, choices),
		GeneratedAt: present.GeneratedAt(domain.Now()),
	}
	s.writeHTML(w, "index", func(b *bytes.Buffer) error { return present.RenderIndex(b, page) })
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	summaries := aggregate.SummarizeAll(datasetFrom(r).Records)
	s.writeHTML(w, "charts", func(b *bytes.Buffer) error { return present.RenderCharts(b, summaries) })
}

func (s *Server) handleHeatMap(w http.ResponseWriter, r *http.Request) {
	page := present.NewHeatMapPage(datasetFrom(r).Records)
	s.writeHTML(w, "heatmap", func(b *bytes.Buffer) error { return present.RenderHeatMap(b, page) })
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	records := datasetFrom(r).Records
	borough := selectedBorough(r, aggregate.BoroughChoices(records))

	view := domain.ResolveMapView(r.Context(), borough, s.opts.Geocoder, s.logger)
	markers := present.SampleMarkers(records, borough, s.opts.MarkerSampleSize, present.NewSampleRand())
	s.logger.Debug("markers sampled", "borough", borough, "markers", len(markers), "centre", view.Source)

	page := present.NewMarkerMapPage(view, markers)
	s.writeHTML(w, "markers", func(b *bytes.Buffer) error { return present.RenderMarkerMap(b, page) })
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	summaries := aggregate.SummarizeAll(datasetFrom(r).Records)

	var buf bytes.Buffer
	if err := present.WriteWorkbook(&buf, summaries); err != nil {
		s.logger.Error("export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="collision-summaries.xlsx"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, datasetFrom(r).Overview())
}

func (s *Server) handleBoroughs(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, present.BoroughOptions(aggregate.BoroughChoices(datasetFrom(r).Records)))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	table, ok := aggregate.SummarizeAll(datasetFrom(r).Records).Table(name)
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]any{"error": "unknown summary", "available": aggregate.TableNames})
		return
	}
	render.JSON(w, r, table)
}
