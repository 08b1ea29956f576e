package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/leaflet"
	"github.com/woozymasta/quakemap/internal/mapview"
	"github.com/woozymasta/quakemap/internal/preview"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// run builds the view once and writes it in the requested format. Nothing is
// written when the build fails.
func run(ctx context.Context, opts Options, client feed.HTTPClient) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.Token != "" {
		cfg.AccessToken = opts.Token
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.Timeout)*time.Second)
		defer cancel()
	}

	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        2,
				MaxIdleConnsPerHost: 2,
			},
		}
	}

	fetcher := feed.NewFetcher(client, cfg.Feeds.Quakes, cfg.Feeds.Plates, nil)
	view, err := mapview.Build(ctx, cfg, fetcher, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encode(&buf, view, opts); err != nil {
		return fmt.Errorf("encode %s: %w", opts.Format, err)
	}

	if opts.Output == "" {
		_, err = io.Copy(os.Stdout, &buf)
		return err
	}

	size := buf.Len()
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	log.Info().
		Str("path", opts.Output).
		Str("format", opts.Format).
		Int("bytes", size).
		Msg("Map written")

	return nil
}

func encode(w io.Writer, view *mapview.MapView, opts Options) error {
	switch opts.Format {
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()

	case "webp":
		return preview.NewRenderer(opts.Width).Render(w, view)

	case "html", "":
		page, err := leaflet.NewRenderer(!opts.NoMinify)
		if err != nil {
			return err
		}
		return page.Render(w, view)

	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}
