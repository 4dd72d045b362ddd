// Package metrics defines Prometheus metrics for server-price-alerts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spa"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Price check metrics.
var (
	PriceCheckRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_check_runs_total",
		Help:      "Total number of completed price check cycles.",
	})

	PriceCheckAbortedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_check_aborted_total",
		Help:      "Total number of price check cycles aborted before evaluating tiers.",
	})

	PriceCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "price_check_duration_seconds",
		Help:      "Duration of price check cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	ServicesMonitored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "services_monitored",
		Help:      "Number of services with at least one alert tier at the last price check.",
	})

	PersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_failures_total",
		Help:      "Total number of alert records that failed to persist during a price check.",
	})
)

// Alert metrics.
var (
	AlertsFiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_fired_total",
		Help:      "Total number of alert tiers fired.",
	})

	TiersRearmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tiers_rearmed_total",
		Help:      "Total number of alert tiers reset after the price recovered.",
	})

	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications delivered.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)

// Subscription metrics.
var (
	SubscriptionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_created_total",
		Help:      "Total number of subscribe requests that added a subscriber.",
	})

	SubscriptionsRemovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_removed_total",
		Help:      "Total number of successful unsubscribe requests.",
	})
)

// Catalog metrics.
var (
	CatalogFetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_fetch_failures_total",
		Help:      "Total number of failed catalog provider calls.",
	}, []string{"operation"})

	CatalogCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_hits_total",
		Help:      "Total number of catalog reads served from cache.",
	})

	CatalogCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_misses_total",
		Help:      "Total number of catalog reads that went to the provider.",
	})
)

// Scheduler metrics.
var (
	SchedulerNextPriceCheckTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_price_check_timestamp",
		Help:      "Unix timestamp of the next scheduled price check.",
	})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the process answered the last liveness probe.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the alert store was reachable at the last readiness probe.",
	})
)
