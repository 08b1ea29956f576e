// Package overlay turns feed records into styled map primitives.
package overlay

import (
	"html"
	"strconv"

	"github.com/woozymasta/quakemap/internal/geo"
	"github.com/woozymasta/quakemap/internal/style"
)

// Presentation constants shared by every quake circle.
const (
	QuakeFillOpacity  = 0.7
	QuakeStrokeColor  = "black"
	QuakeStrokeWeight = 0.5
	PlateStrokeColor  = "red"

	// PopupTimeLayout renders the event time in the popup, always in UTC.
	PopupTimeLayout = "Mon Jan 02 2006 15:04:05 MST"
)

// StyledPoint is a filled circle with a popup.
type StyledPoint struct {
	Position     geo.LonLat `json:"position" yaml:"position"`
	Radius       float64    `json:"radius" yaml:"radius"` // meters
	FillColor    string     `json:"fillColor" yaml:"fill_color"`
	FillOpacity  float64    `json:"fillOpacity" yaml:"fill_opacity"`
	Stroke       bool       `json:"stroke" yaml:"stroke"`
	StrokeColor  string     `json:"color" yaml:"stroke_color"`
	StrokeWeight float64    `json:"weight" yaml:"stroke_weight"`
	PopupHTML    string     `json:"popup" yaml:"popup"`
}

// StyledLine is a stroked polyline.
type StyledLine struct {
	Vertices    []geo.LonLat `json:"vertices" yaml:"vertices"`
	StrokeColor string       `json:"color" yaml:"stroke_color"`
}

// QuakeStyle styles a single quake.
func QuakeStyle(q geo.QuakeEvent) StyledPoint {
	return StyledPoint{
		Position:     q.Position,
		Radius:       style.RadiusForMagnitude(q.Magnitude),
		FillColor:    style.ColorForMagnitude(q.Magnitude),
		FillOpacity:  QuakeFillOpacity,
		Stroke:       true,
		StrokeColor:  QuakeStrokeColor,
		StrokeWeight: QuakeStrokeWeight,
		PopupHTML:    QuakePopup(q),
	}
}

// QuakePopup renders the popup body: magnitude, place and event time.
func QuakePopup(q geo.QuakeEvent) string {
	return "<h3>Magnitude: " + strconv.FormatFloat(q.Magnitude, 'f', -1, 64) +
		"<hr>" + html.EscapeString(q.Place) +
		"</h3><hr><p>" + q.Time().Format(PopupTimeLayout) + "</p>"
}

// PlateStyle styles a single plate boundary.
func PlateStyle(b geo.PlateBoundary) StyledLine {
	return StyledLine{
		Vertices:    b.Vertices,
		StrokeColor: PlateStrokeColor,
	}
}

// ComposeQuakeOverlay styles every event, keeping input order.
func ComposeQuakeOverlay(events []geo.QuakeEvent) []StyledPoint {
	points := make([]StyledPoint, len(events))
	for i, ev := range events {
		points[i] = QuakeStyle(ev)
	}
	return points
}

// ComposePlateOverlay styles every boundary, keeping input order.
func ComposePlateOverlay(boundaries []geo.PlateBoundary) []StyledLine {
	lines := make([]StyledLine, len(boundaries))
	for i, b := range boundaries {
		lines[i] = PlateStyle(b)
	}
	return lines
}
