package domain

import (
	"context"
	"log/slog"
)

// NYCCenter is the default map centre (City Hall area).
var NYCCenter = Geo{Lat: 40.7128, Lon: -74.0060}

// DefaultZoom is the initial zoom level of every map.
const DefaultZoom = 12

// AllBoroughs is the selector value that disables borough filtering.
const AllBoroughs = "All"

// MapView describes where a map opens.
type MapView struct {
	Center Geo    `json:"center"`
	Zoom   int    `json:"zoom"`
	Source string `json:"source"` // "default", "geocoded", "failed"
	Place  string `json:"place,omitempty"`
}

// ResolveMapView centres the map on the selected borough when a geocoder is
// available. Any geocoding failure falls back to the NYC centre.
func ResolveMapView(ctx context.Context, borough string, geocoder Geocoder, logger *slog.Logger) MapView {
	view := MapView{Center: NYCCenter, Zoom: DefaultZoom, Source: "default"}
	if geocoder == nil || borough == "" || borough == AllBoroughs {
		return view
	}

	result, err := geocoder.ForwardGeocode(ctx, borough, "New York")
	if err != nil {
		logger.Warn("borough geocoding failed", "borough", borough, "error", err)
		view.Source = "failed"
		return view
	}
	if result.Lat == 0 && result.Lon == 0 {
		return view
	}

	view.Center = Geo{Lat: result.Lat, Lon: result.Lon}
	view.Source = "geocoded"
	view.Place = result.PlaceName
	return view
}
