package geo

import (
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCollection(t *testing.T, raw string) *geojson.FeatureCollection {
	t.Helper()
	fc, err := geojson.UnmarshalFeatureCollection([]byte(raw))
	require.NoError(t, err)
	return fc
}

func TestQuakesFromCollection(t *testing.T) {
	fc := mustCollection(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature",
			 "properties": {"mag": 5.2, "place": "10km N of Testville", "time": 1700000000000},
			 "geometry": {"type": "Point", "coordinates": [-120, 35]}},
			{"type": "Feature",
			 "properties": {"mag": null, "place": "Nowhere", "time": 1700000001000},
			 "geometry": {"type": "Point", "coordinates": [10.5, -3.25]}}
		]
	}`)

	events, err := QuakesFromCollection(fc)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, 5.2, events[0].Magnitude)
	assert.Equal(t, "10km N of Testville", events[0].Place)
	assert.Equal(t, int64(1700000000000), events[0].TimeMillis)
	assert.Equal(t, LonLat{Lon: -120, Lat: 35}, events[0].Position)
	assert.Equal(t, 2023, events[0].Time().Year())

	assert.Zero(t, events[1].Magnitude)
	assert.Equal(t, LonLat{Lon: 10.5, Lat: -3.25}, events[1].Position)
}

func TestQuakesFromCollection_WrongGeometry(t *testing.T) {
	fc := mustCollection(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"mag": 1},
			 "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]}}
		]
	}`)

	_, err := QuakesFromCollection(fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LineString")
}

func TestPlatesFromCollection(t *testing.T) {
	fc := mustCollection(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"Name": "AF-AN"},
			 "geometry": {"type": "LineString", "coordinates": [[-0.4, -54.8], [0.1, -54.5]]}},
			{"type": "Feature", "properties": {},
			 "geometry": {"type": "MultiLineString", "coordinates": [[[1, 1], [2, 2]], [[3, 3], [4, 4], [5, 5]]]}}
		]
	}`)

	plates, err := PlatesFromCollection(fc)
	require.NoError(t, err)
	require.Len(t, plates, 3)

	assert.Equal(t, []LonLat{{Lon: -0.4, Lat: -54.8}, {Lon: 0.1, Lat: -54.5}}, plates[0].Vertices)
	assert.Len(t, plates[1].Vertices, 2)
	assert.Len(t, plates[2].Vertices, 3)
}

func TestPlatesFromCollection_WrongGeometry(t *testing.T) {
	fc := mustCollection(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [0, 0]}}
		]
	}`)

	_, err := PlatesFromCollection(fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Point")
}
