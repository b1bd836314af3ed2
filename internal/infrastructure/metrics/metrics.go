package metrics

import (
	"errors"
	"time"

	"merchant-admin-layer/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Admin API Metrics
var (
	ShopifyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShopifyRequestsTotal,
			Help: HelpTextShopifyRequestsTotal,
		},
		[]string{LabelOperation, LabelStatus},
	)

	ShopifyRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameShopifyRequestDuration,
			Help:    HelpTextShopifyRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	ShopifyClientsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameShopifyClientsCached,
			Help: HelpTextShopifyClientsCached,
		},
	)
)

// Business Metrics
var (
	WebhooksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWebhooksReceived,
			Help: HelpTextWebhooksReceived,
		},
		[]string{LabelTopic, LabelStatus},
	)

	MetafieldWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMetafieldWrites,
			Help: HelpTextMetafieldWrites,
		},
		[]string{LabelKey, LabelStatus},
	)
)

// Outcome maps an error to the status label used by the counters
func Outcome(err error) string {
	if err == nil {
		return StatusSuccess
	}
	var remoteErr *domain.RemoteAPIError
	if errors.As(err, &remoteErr) {
		return StatusUserError
	}
	return StatusError
}

// ObserveShopifyRequest records one Admin API operation
func ObserveShopifyRequest(operation string, started time.Time, err error) {
	ShopifyRequestsTotal.WithLabelValues(operation, Outcome(err)).Inc()
	ShopifyRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
