// Package mapview assembles styled overlays, base layers and controls into a
// renderer independent map description.
package mapview

import (
	"io"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/overlay"
	"github.com/woozymasta/quakemap/internal/style"
)

// Base layer names.
const (
	BaseSatellite = "satellite"
	BaseOutdoors  = "outdoors"
	BaseLight     = "light"
)

// Overlay names, also shown in the layer control.
const (
	OverlayQuakes = "Earthquakes"
	OverlayPlates = "Plates"
)

// Initial viewport: the Atlantic, whole world visible.
const (
	DefaultCenterLat = 20.0
	DefaultCenterLon = -10.0
	DefaultZoom      = 2
)

// LegendPosition is the corner holding the legend.
const LegendPosition = "bottomright"

// Renderer turns a composed view into an output document.
type Renderer interface {
	ContentType() string
	Render(w io.Writer, v *MapView) error
}

// MapView is everything a renderer needs to draw the map.
type MapView struct {
	Container    string        `json:"container" yaml:"container"`
	Center       Center        `json:"center" yaml:"center"`
	Zoom         int           `json:"zoom" yaml:"zoom"`
	BaseLayers   []TileLayer   `json:"baseLayers" yaml:"base_layers"`
	DefaultBase  string        `json:"defaultBase" yaml:"default_base"`
	Overlays     []Overlay     `json:"overlays" yaml:"overlays"`
	LayerControl LayerControl  `json:"layerControl" yaml:"layer_control"`
	Legend       LegendControl `json:"legend" yaml:"legend"`
}

// Center is the initial viewport center.
type Center struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// TileLayer is a base imagery layer. Only one is shown at a time.
type TileLayer struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label" yaml:"label"`
	StyleID     string `json:"id" yaml:"style_id"`
	URLTemplate string `json:"url" yaml:"url"`
	Attribution string `json:"attribution" yaml:"attribution"`
	AccessToken string `json:"accessToken" yaml:"-"`
	MaxZoom     int    `json:"maxZoom" yaml:"max_zoom"`
	TileSize    int    `json:"tileSize,omitempty" yaml:"tile_size,omitempty"`
	ZoomOffset  int    `json:"zoomOffset,omitempty" yaml:"zoom_offset,omitempty"`
}

// Overlay is an independently toggled layer of points or lines.
type Overlay struct {
	Name    string                `json:"name" yaml:"name"`
	Visible bool                  `json:"visible" yaml:"visible"`
	Points  []overlay.StyledPoint `json:"points,omitempty" yaml:"points,omitempty"`
	Lines   []overlay.StyledLine  `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// LayerControl toggles base layers and overlays.
type LayerControl struct {
	Collapsed bool `json:"collapsed" yaml:"collapsed"`
}

// LegendControl is the static magnitude legend.
type LegendControl struct {
	Position string              `json:"position" yaml:"position"`
	Entries  []style.LegendEntry `json:"entries" yaml:"entries"`
}

// Overlay returns the overlay with the given name, or nil.
func (v *MapView) Overlay(name string) *Overlay {
	for i := range v.Overlays {
		if v.Overlays[i].Name == name {
			return &v.Overlays[i]
		}
	}
	return nil
}

// BaseLayer returns the base layer with the given name, or nil.
func (v *MapView) BaseLayer(name string) *TileLayer {
	for i := range v.BaseLayers {
		if v.BaseLayers[i].Name == name {
			return &v.BaseLayers[i]
		}
	}
	return nil
}

// Compose builds the map view from the styled overlays.
// It fails with *config.ConfigurationError when the access token is missing.
func Compose(cfg *config.Config, points []overlay.StyledPoint, lines []overlay.StyledLine) (*MapView, error) {
	if cfg.AccessToken == "" {
		return nil, &config.ConfigurationError{Key: "access_token", Reason: "is not set"}
	}

	return &MapView{
		Container:   "map",
		Center:      Center{Lat: DefaultCenterLat, Lon: DefaultCenterLon},
		Zoom:        DefaultZoom,
		BaseLayers:  baseLayers(cfg),
		DefaultBase: BaseSatellite,
		Overlays: []Overlay{
			{Name: OverlayQuakes, Visible: true, Points: points},
			{Name: OverlayPlates, Visible: true, Lines: lines},
		},
		LayerControl: LayerControl{Collapsed: false},
		Legend: LegendControl{
			Position: LegendPosition,
			Entries:  style.Legend(style.Breakpoints),
		},
	}, nil
}

func baseLayers(cfg *config.Config) []TileLayer {
	layer := func(name, label, styleID string) TileLayer {
		return TileLayer{
			Name:        name,
			Label:       label,
			StyleID:     styleID,
			URLTemplate: cfg.Tiles.URL,
			Attribution: cfg.Tiles.Attribution,
			AccessToken: cfg.AccessToken,
			MaxZoom:     cfg.Tiles.MaxZoom,
			TileSize:    cfg.Tiles.TileSize,
			ZoomOffset:  cfg.Tiles.ZoomOffset,
		}
	}

	return []TileLayer{
		layer(BaseSatellite, "Satellite Map", cfg.Tiles.Styles.Satellite),
		layer(BaseOutdoors, "Outdoors Map", cfg.Tiles.Styles.Outdoors),
		layer(BaseLight, "Grayscale Map", cfg.Tiles.Styles.Light),
	}
}
