package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// QuakesFromCollection converts point features of the quake feed.
// Features without a numeric "mag" get magnitude 0; non point geometry is an error.
func QuakesFromCollection(fc *geojson.FeatureCollection) ([]QuakeEvent, error) {
	events := make([]QuakeEvent, 0, len(fc.Features))

	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: expected Point geometry, got %s", i, geometryType(f.Geometry))
		}

		ev := QuakeEvent{Position: LonLat{Lon: p.Lon(), Lat: p.Lat()}}
		if mag, ok := f.Properties["mag"].(float64); ok {
			ev.Magnitude = mag
		}
		if place, ok := f.Properties["place"].(string); ok {
			ev.Place = place
		}
		// encoding/json decodes every number as float64
		if ts, ok := f.Properties["time"].(float64); ok {
			ev.TimeMillis = int64(ts)
		}

		events = append(events, ev)
	}

	return events, nil
}

// PlatesFromCollection converts the boundary features of the plate feed.
// A LineString becomes one boundary, a MultiLineString one boundary per line.
func PlatesFromCollection(fc *geojson.FeatureCollection) ([]PlateBoundary, error) {
	plates := make([]PlateBoundary, 0, len(fc.Features))

	for i, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			plates = append(plates, PlateBoundary{Vertices: lineVertices(g)})
		case orb.MultiLineString:
			for _, ls := range g {
				plates = append(plates, PlateBoundary{Vertices: lineVertices(ls)})
			}
		default:
			return nil, fmt.Errorf("feature %d: expected LineString geometry, got %s", i, geometryType(f.Geometry))
		}
	}

	return plates, nil
}

func lineVertices(ls orb.LineString) []LonLat {
	out := make([]LonLat, len(ls))
	for i, p := range ls {
		out[i] = LonLat{Lon: p.Lon(), Lat: p.Lat()}
	}
	return out
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
