// Package geo holds the geographic records decoded from the quake and plate feeds.
package geo

import "time"

// LonLat is a WGS84 position in GeoJSON axis order.
type LonLat struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// QuakeEvent is a single earthquake from the summary feed.
type QuakeEvent struct {
	Magnitude  float64 `json:"mag" yaml:"mag"`
	Place      string  `json:"place" yaml:"place"`
	TimeMillis int64   `json:"time" yaml:"time"` // epoch millis
	Position   LonLat  `json:"position" yaml:"position"`
}

// Time returns the event time in UTC.
func (q QuakeEvent) Time() time.Time {
	return time.UnixMilli(q.TimeMillis).UTC()
}

// PlateBoundary is one boundary polyline of the plate dataset.
type PlateBoundary struct {
	Vertices []LonLat `json:"vertices" yaml:"vertices"`
}
