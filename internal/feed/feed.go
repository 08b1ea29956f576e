// Package feed downloads the quake and plate boundary GeoJSON feeds.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/woozymasta/quakemap/internal/geo"
	"github.com/woozymasta/quakemap/internal/metrics"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// Feed names used in errors, logs and metric labels.
const (
	Quakes = "quakes"
	Plates = "plates"
)

// HTTPClient is the subset of *http.Client used by the fetcher.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchError reports a failed or malformed download of one feed.
type FetchError struct {
	Feed string
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s feed %s: %v", e.Feed, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Datasets is the result of one fetch run.
type Datasets struct {
	Quakes []geo.QuakeEvent
	Plates []geo.PlateBoundary
}

// Fetcher downloads both feeds.
type Fetcher struct {
	client    HTTPClient
	metrics   *metrics.Metrics
	quakesURL string
	platesURL string
}

// NewFetcher creates a fetcher. A nil client uses an http.Client without a
// timeout, callers bound the run through the context. Metrics are optional.
func NewFetcher(client HTTPClient, quakesURL, platesURL string, m *metrics.Metrics) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}

	return &Fetcher{
		client:    client,
		metrics:   m,
		quakesURL: quakesURL,
		platesURL: platesURL,
	}
}

// FetchDatasets downloads the quake feed and then the plate feed.
//
// The plate request is issued only after the quake feed has been fully
// decoded, so a quake failure never reaches the plate server. Nothing in
// the plate request depends on the quake data; running both concurrently
// would be safe.
func (f *Fetcher) FetchDatasets(ctx context.Context) (Datasets, error) {
	quakes, err := fetchFeed(ctx, f, Quakes, f.quakesURL, geo.QuakesFromCollection)
	if err != nil {
		return Datasets{}, err
	}

	plates, err := fetchFeed(ctx, f, Plates, f.platesURL, geo.PlatesFromCollection)
	if err != nil {
		return Datasets{}, err
	}

	return Datasets{Quakes: quakes, Plates: plates}, nil
}

func fetchFeed[T any](
	ctx context.Context,
	f *Fetcher,
	name, url string,
	convert func(*geojson.FeatureCollection) ([]T, error),
) ([]T, error) {
	start := time.Now()

	out, err := download(ctx, f.client, url, convert)
	elapsed := time.Since(start)

	if f.metrics != nil {
		f.metrics.FeedDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	}

	if err != nil {
		if f.metrics != nil {
			f.metrics.FeedRequests.WithLabelValues(name, "error").Inc()
		}
		log.Error().Err(err).Str("feed", name).Str("url", url).Msg("Feed fetch failed")
		return nil, &FetchError{Feed: name, URL: url, Err: err}
	}

	if f.metrics != nil {
		f.metrics.FeedRequests.WithLabelValues(name, "success").Inc()
		f.metrics.FeedFeatures.WithLabelValues(name).Set(float64(len(out)))
	}

	log.Debug().
		Str("feed", name).
		Int("features", len(out)).
		Dur("duration", elapsed).
		Msg("Feed fetched")

	return out, nil
}

func download[T any](
	ctx context.Context,
	client HTTPClient,
	url string,
	convert func(*geojson.FeatureCollection) ([]T, error),
) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	return convert(fc)
}
