// Package config handles configuration loading and shared data structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default feed and tile sources.
const (
	DefaultQuakesURL   = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/1.0_week.geojson"
	DefaultPlatesURL   = "https://raw.githubusercontent.com/fraxen/tectonicplates/master/GeoJSON/PB2002_boundaries.json"
	DefaultTileURL     = "https://api.mapbox.com/styles/v1/{id}/tiles/{z}/{x}/{y}?access_token={accessToken}"
	DefaultAttribution = `Map data &copy; <a href="https://www.openstreetmap.org/">OpenStreetMap</a> contributors, ` +
		`<a href="https://creativecommons.org/licenses/by-sa/2.0/">CC-BY-SA</a>, ` +
		`Imagery © <a href="https://www.mapbox.com/">Mapbox</a>`
)

// Config represents the root configuration file structure.
type Config struct {
	// Mapbox access token, required by every base layer
	AccessToken string `yaml:"access_token,omitempty"`
	Feeds       Feeds  `yaml:"feeds"`
	Tiles       Tiles  `yaml:"tiles"`
}

// Feeds holds the GeoJSON source URLs.
type Feeds struct {
	Quakes string `yaml:"quakes"`
	Plates string `yaml:"plates"`
}

// Tiles describes the raster tile service used for base layers.
type Tiles struct {
	URL         string `yaml:"url"`
	Attribution string `yaml:"attribution,omitempty"`
	Styles      Styles `yaml:"styles"`
	MaxZoom     int    `yaml:"max_zoom,omitempty"`
	TileSize    int    `yaml:"tile_size,omitempty"`
	ZoomOffset  int    `yaml:"zoom_offset,omitempty"`
}

// Styles holds the style identifiers of the three base layers.
type Styles struct {
	Satellite string `yaml:"satellite"`
	Outdoors  string `yaml:"outdoors"`
	Light     string `yaml:"light"`
}

// ConfigurationError reports a missing or unusable setting.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %s", e.Key, e.Reason)
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Feeds: Feeds{
			Quakes: DefaultQuakesURL,
			Plates: DefaultPlatesURL,
		},
		Tiles: Tiles{
			URL:         DefaultTileURL,
			Attribution: DefaultAttribution,
			Styles: Styles{
				Satellite: "mapbox/satellite-v9",
				Outdoors:  "mapbox/outdoors-v12",
				Light:     "mapbox/light-v11",
			},
			MaxZoom:    18,
			TileSize:   512,
			ZoomOffset: -1,
		},
	}
}

// Load reads the YAML configuration file over the defaults.
// An empty path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the settings a composition run cannot do without.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return &ConfigurationError{Key: "access_token", Reason: "is not set"}
	}
	if c.Feeds.Quakes == "" {
		return &ConfigurationError{Key: "feeds.quakes", Reason: "is empty"}
	}
	if c.Feeds.Plates == "" {
		return &ConfigurationError{Key: "feeds.plates", Reason: "is empty"}
	}
	if c.Tiles.URL == "" {
		return &ConfigurationError{Key: "tiles.url", Reason: "is empty"}
	}

	return nil
}
