// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/mapview"

	"github.com/rs/zerolog/log"
)

// HandleIndex serves the interactive map page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.serveRendered(w, r, "html", s.Page)
}

// HandlePreview serves the static WebP preview.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	s.serveRendered(w, r, "webp", s.Preview)
}

// HandleView serves the composed view as JSON.
func (s *ServerContext) HandleView(w http.ResponseWriter, r *http.Request) {
	view, ok := s.build(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(view)
	s.countRender("json", "success")
}

// HandleHealth reports liveness, it does not touch the feeds.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// serveRendered runs the pipeline and writes the rendered document.
// Output is buffered so a render failure never sends a partial body.
func (s *ServerContext) serveRendered(w http.ResponseWriter, r *http.Request, format string, renderer mapview.Renderer) {
	view, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, view); err != nil {
		log.Error().Err(err).Str("format", format).Msg("Render failed")
		s.countRender(format, "error")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
	s.countRender(format, "success")
}

// build runs one fetch and compose cycle, answering with an error status on failure.
func (s *ServerContext) build(w http.ResponseWriter, r *http.Request) (*mapview.MapView, bool) {
	view, err := mapview.Build(r.Context(), s.Config, s.Fetcher, s.Metrics)
	if err == nil {
		return view, true
	}

	var cfgErr *config.ConfigurationError
	var fetchErr *feed.FetchError

	switch {
	case errors.As(err, &cfgErr):
		log.Error().Err(err).Msg("Map view not composed: configuration")
		http.Error(w, cfgErr.Error(), http.StatusInternalServerError)
	case errors.As(err, &fetchErr):
		log.Warn().Err(err).Str("feed", fetchErr.Feed).Msg("Map view not composed: feed unavailable")
		http.Error(w, "upstream "+fetchErr.Feed+" feed unavailable", http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("Map view not composed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}

	return nil, false
}

func (s *ServerContext) countRender(format, outcome string) {
	if s.Metrics != nil {
		s.Metrics.Renders.WithLabelValues(format, outcome).Inc()
	}
}
