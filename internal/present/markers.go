package present

import (
	"fmt"
	"html"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/collision-explorer/internal/domain"
)

// DefaultMarkerSample is the cap on markers drawn per map request.
const DefaultMarkerSample = 1000

// Marker colours.
const (
	ColorFatal    = "red"
	ColorNonFatal = "orange"
)

// MarkerIcon is the Font Awesome glyph drawn inside every marker.
const MarkerIcon = "car-crash"

// PopupMaxWidth bounds the popup width in pixels.
const PopupMaxWidth = 300

// Marker is one point of the marker map.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

// FilterBorough keeps records of the given borough. An empty selection or
// domain.AllBoroughs keeps everything.
func FilterBorough(records []domain.CollisionRecord, borough string) []domain.CollisionRecord {
	if borough == "" || borough == domain.AllBoroughs {
		return records
	}
	var out []domain.CollisionRecord
	for _, rec := range records {
		if rec.Borough == borough {
			out = append(out, rec)
		}
	}
	return out
}

// Sample draws min(n, len(records)) distinct records uniformly at random
// without modifying the input.
func Sample(records []domain.CollisionRecord, n int, rng *rand.Rand) []domain.CollisionRecord {
	n = max(0, min(n, len(records)))
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: the first n slots end up a uniform sample.
	out := make([]domain.CollisionRecord, n)
	for i := range n {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = records[idx[i]]
	}
	return out
}

// NewSampleRand returns a generator seeded from the package clock. Each call
// yields a fresh sequence unless the clock is frozen.
func NewSampleRand() *rand.Rand {
	seed := uint64(domain.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SampleMarkers filters by borough, samples at most n records, and projects
// each one to a Marker. Records without coordinates are skipped.
func SampleMarkers(records []domain.CollisionRecord, borough string, n int, rng *rand.Rand) []Marker {
	sample := Sample(FilterBorough(records, borough), n, rng)
	markers := make([]Marker, 0, len(sample))
	for _, rec := range sample {
		if m, ok := NewMarker(rec); ok {
			markers = append(markers, m)
		}
	}
	return markers
}

// NewMarker projects a record to a map marker.
func NewMarker(rec domain.CollisionRecord) (Marker, bool) {
	if rec.Geo == nil {
		return Marker{}, false
	}
	color := ColorNonFatal
	if rec.Fatal() {
		color = ColorFatal
	}
	return Marker{Lat: rec.Geo.Lat, Lon: rec.Geo.Lon, Color: color, Popup: PopupHTML(rec)}, true
}

// PopupHTML renders the popup body. Field values are HTML-escaped.
func PopupHTML(rec domain.CollisionRecord) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "<b>%s:</b> %s<br>", label, html.EscapeString(value))
	}
	line("Date", rec.CrashDate)
	line("Time", rec.CrashTime)
	line("Borough", rec.Borough)
	line("Injuries", countText(rec.Casualties.PersonsInjured))
	line("Fatalities", countText(rec.Casualties.PersonsKilled))
	fmt.Fprintf(&b, "<b>Contributing Factor:</b> %s", html.EscapeString(rec.Factors[0]))
	return b.String()
}

func countText(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

// HeatPoints returns the [lat, lon] pair of every record with coordinates.
func HeatPoints(records []domain.CollisionRecord) [][2]float64 {
	points := make([][2]float64, 0, len(records))
	for _, rec := range records {
		if rec.Geo == nil {
			continue
		}
		points = append(points, [2]float64{rec.Geo.Lat, rec.Geo.Lon})
	}
	return points
}

// GeneratedAt formats the page timestamp.
func GeneratedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
