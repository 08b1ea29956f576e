// Package metrics defines the Prometheus collectors of the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quakemap"

// Metrics holds the feed and render collectors.
type Metrics struct {
	FeedRequests  *prometheus.CounterVec   // labels: feed={quakes,plates}, outcome={success,error}
	FeedDuration  *prometheus.HistogramVec // labels: feed
	FeedFeatures  *prometheus.GaugeVec     // labels: feed
	Renders       *prometheus.CounterVec   // labels: format, outcome
	BuildDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		FeedRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Feed fetches by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FeedDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_request_duration_seconds",
			Help:      "Duration of feed fetches including decoding.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"feed"}),
		FeedFeatures: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_features",
			Help:      "Number of records decoded on the last successful fetch.",
		}, []string{"feed"}),
		Renders: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Map view renders by output format and outcome.",
		}, []string{"format", "outcome"}),
		BuildDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a full fetch and compose run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
