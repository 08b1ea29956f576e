package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/leaflet"
	"github.com/woozymasta/quakemap/internal/logger"
	"github.com/woozymasta/quakemap/internal/metrics"
	"github.com/woozymasta/quakemap/internal/preview"
	"github.com/woozymasta/quakemap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile   string `short:"c" long:"config"        env:"CONFIG_FILE"         description:"Path to configuration file, defaults are used when empty"`
	Addr         string `short:"a" long:"addr"          env:"LISTEN_ADDRESS"      description:"Address to listen on"          default:"0.0.0.0"`
	Port         int    `short:"p" long:"port"          env:"LISTEN_PORT"         description:"Port to listen on"             default:"8080"`
	Token        string `short:"t" long:"token"         env:"MAPBOX_ACCESS_TOKEN" description:"Mapbox access token, overrides the configuration file"`
	PreviewWidth int    `short:"w" long:"preview-width" env:"PREVIEW_WIDTH"       description:"Width of the WebP preview"     default:"1024"`
	NoMinify     bool   `long:"no-minify"               description:"Serve the map page without minification"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Token != "" {
		cfg.AccessToken = opts.Token
	}
	if err := cfg.Validate(); err != nil {
		// requests still answer with an error page, the operator should know early
		log.Warn().Err(err).Msg("Configuration is incomplete")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	page, err := leaflet.NewRenderer(!opts.NoMinify)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare map page")
	}

	fetcher := feed.NewFetcher(nil, cfg.Feeds.Quakes, cfg.Feeds.Plates, m)
	srvCtx := server.NewServerContext(cfg, fetcher, m, page, preview.NewRenderer(opts.PreviewWidth))

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Bool("minify", !opts.NoMinify).
		Int("preview_width", opts.PreviewWidth).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, srvCtx.Routes(reg)); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
