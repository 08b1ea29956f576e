package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/feed/feedtest"
	"github.com/woozymasta/quakemap/internal/mapview"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, srv *feedtest.Server, token string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf("access_token: %q\nfeeds:\n  quakes: %q\n  plates: %q\n",
		token, srv.QuakesURL(), srv.PlatesURL())
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func renderTo(t *testing.T, srv *feedtest.Server, format string) []byte {
	t.Helper()

	out := filepath.Join(t.TempDir(), "map."+format)
	opts := Options{
		ConfigFile: writeConfig(t, srv, "pk.test"),
		Output:     out,
		Format:     format,
		Width:      256,
		Timeout:    5,
	}
	require.NoError(t, run(context.Background(), opts, srv.Client()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	return data
}

func TestRun_JSON(t *testing.T) {
	srv := feedtest.NewServer(t)

	var view mapview.MapView
	require.NoError(t, json.Unmarshal(renderTo(t, srv, "json"), &view))

	quakes := view.Overlay(mapview.OverlayQuakes)
	require.NotNil(t, quakes)
	require.Len(t, quakes.Points, 1)
	assert.Equal(t, "#e31a1c", quakes.Points[0].FillColor)
	assert.InDelta(t, 130000, quakes.Points[0].Radius, 1e-6)
	assert.Equal(t, "pk.test", view.BaseLayers[0].AccessToken)

	require.Len(t, view.Legend.Entries, 6)
	last := view.Legend.Entries[5]
	assert.True(t, last.Unbounded())
	assert.Equal(t, "6+", last.Label())
}

func TestRun_YAMLHidesToken(t *testing.T) {
	srv := feedtest.NewServer(t)
	data := renderTo(t, srv, "yaml")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, mapview.LegendPosition, doc["legend"].(map[string]any)["position"])
	assert.NotContains(t, string(data), "pk.test")
}

func TestRun_HTML(t *testing.T) {
	srv := feedtest.NewServer(t)
	data := renderTo(t, srv, "html")

	assert.Contains(t, string(data), "QUAKEMAP_VIEW")
	assert.Contains(t, string(data), "Grayscale Map")
}

func TestRun_WebP(t *testing.T) {
	srv := feedtest.NewServer(t)
	data := renderTo(t, srv, "webp")

	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestRun_FetchFailureWritesNothing(t *testing.T) {
	srv := feedtest.NewServer(t)
	srv.SetQuakes(http.StatusBadGateway, "")

	out := filepath.Join(t.TempDir(), "map.html")
	opts := Options{
		ConfigFile: writeConfig(t, srv, "pk.test"),
		Output:     out,
		Format:     "html",
	}
	err := run(context.Background(), opts, srv.Client())

	var fetchErr *feed.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, feed.Quakes, fetchErr.Feed)
	assert.Equal(t, 0, srv.PlateHits())
	assert.NoFileExists(t, out)
}

func TestRun_TokenFlagOverridesConfig(t *testing.T) {
	srv := feedtest.NewServer(t)

	out := filepath.Join(t.TempDir(), "map.json")
	opts := Options{
		ConfigFile: writeConfig(t, srv, ""),
		Token:      "pk.flag",
		Output:     out,
		Format:     "json",
	}
	require.NoError(t, run(context.Background(), opts, srv.Client()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pk.flag")
}

func TestRun_MissingToken(t *testing.T) {
	srv := feedtest.NewServer(t)

	opts := Options{
		ConfigFile: writeConfig(t, srv, ""),
		Format:     "json",
	}
	err := run(context.Background(), opts, srv.Client())

	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 0, srv.QuakeHits())
}

func TestOptions_NoTimeoutByDefault(t *testing.T) {
	var opts Options
	_, err := flags.NewParser(&opts, flags.None).ParseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, opts.Timeout)
	assert.Equal(t, "html", opts.Format)
}
