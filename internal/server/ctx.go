package server

import (
	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config  *config.Config
	Fetcher mapview.DatasetFetcher
	Metrics *metrics.Metrics
	Page    mapview.Renderer
	Preview mapview.Renderer
}

// NewServerContext wires the pipeline dependencies.
// The configuration is validated per request so a missing token surfaces as an error page.
func NewServerContext(
	cfg *config.Config,
	fetcher mapview.DatasetFetcher,
	m *metrics.Metrics,
	page, preview mapview.Renderer,
) *ServerContext {
	log.Info().
		Str("quakes", cfg.Feeds.Quakes).
		Str("plates", cfg.Feeds.Plates).
		Bool("token_set", cfg.AccessToken != "").
		Msg("Server context initialized")

	return &ServerContext{
		Config:  cfg,
		Fetcher: fetcher,
		Metrics: m,
		Page:    page,
		Preview: preview,
	}
}
