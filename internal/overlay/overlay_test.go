package overlay

import (
	"testing"

	"github.com/woozymasta/quakemap/internal/geo"
	"github.com/woozymasta/quakemap/internal/style"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeQuakeOverlay_PreservesOrderAndColor(t *testing.T) {
	events := []geo.QuakeEvent{
		{Magnitude: 1.2, Place: "a", Position: geo.LonLat{Lon: 1, Lat: 1}},
		{Magnitude: 7.4, Place: "b", Position: geo.LonLat{Lon: 2, Lat: 2}},
		{Magnitude: -0.5, Place: "c", Position: geo.LonLat{Lon: 3, Lat: 3}},
		{Magnitude: 4.0, Place: "d", Position: geo.LonLat{Lon: 4, Lat: 4}},
	}

	points := ComposeQuakeOverlay(events)
	require.Len(t, points, len(events))

	for i, p := range points {
		assert.Equal(t, events[i].Position, p.Position)
		assert.Equal(t, style.ColorForMagnitude(events[i].Magnitude), p.FillColor)
		assert.Equal(t, style.RadiusForMagnitude(events[i].Magnitude), p.Radius)
		assert.Equal(t, 0.7, p.FillOpacity)
		assert.True(t, p.Stroke)
		assert.Equal(t, "black", p.StrokeColor)
		assert.Equal(t, 0.5, p.StrokeWeight)
	}

	// non-positive radius is passed through
	assert.Negative(t, points[2].Radius)
}

func TestComposeQuakeOverlay_Empty(t *testing.T) {
	assert.Empty(t, ComposeQuakeOverlay(nil))
}

func TestQuakePopup(t *testing.T) {
	popup := QuakePopup(geo.QuakeEvent{
		Magnitude:  5.2,
		Place:      "10km N of <Testville>",
		TimeMillis: 1700000000000,
	})

	assert.Equal(t,
		"<h3>Magnitude: 5.2<hr>10km N of &lt;Testville&gt;</h3><hr><p>Tue Nov 14 2023 22:13:20 UTC</p>",
		popup)
}

func TestComposePlateOverlay(t *testing.T) {
	boundaries := []geo.PlateBoundary{
		{Vertices: []geo.LonLat{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}}},
		{Vertices: []geo.LonLat{{Lon: 5, Lat: 5}, {Lon: 6, Lat: 6}, {Lon: 7, Lat: 7}}},
	}

	lines := ComposePlateOverlay(boundaries)
	require.Len(t, lines, 2)

	for i, l := range lines {
		assert.Equal(t, "red", l.StrokeColor)
		assert.Equal(t, boundaries[i].Vertices, l.Vertices)
	}
}
