package mapview

import (
	"context"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/metrics"
	"github.com/woozymasta/quakemap/internal/overlay"

	"github.com/rs/zerolog/log"
)

// DatasetFetcher yields both feeds in one call.
type DatasetFetcher interface {
	FetchDatasets(ctx context.Context) (feed.Datasets, error)
}

// Build runs one composition: configuration check, fetch, then compose.
// Configuration errors are reported before any request is made and a fetch
// error aborts the run without a partial view.
func Build(ctx context.Context, cfg *config.Config, fetcher DatasetFetcher, m *metrics.Metrics) (*MapView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	ds, err := fetcher.FetchDatasets(ctx)
	if err != nil {
		return nil, err
	}

	view, err := Compose(cfg,
		overlay.ComposeQuakeOverlay(ds.Quakes),
		overlay.ComposePlateOverlay(ds.Plates))
	if err != nil {
		return nil, err
	}

	if m != nil {
		m.BuildDuration.Observe(time.Since(start).Seconds())
	}

	log.Info().
		Int("quakes", len(ds.Quakes)).
		Int("plates", len(ds.Plates)).
		Dur("duration", time.Since(start)).
		Msg("Map view composed")

	return view, nil
}
