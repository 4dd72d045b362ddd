package main

import "errors"

// KnownMetrics is the set of metric names exported by server-price-alerts
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"spa_http_request_duration_seconds": true,
	"spa_http_requests_total":           true,

	// Health metrics.
	"spa_healthz_up": true,
	"spa_readyz_up":  true,

	// Price check metrics.
	"spa_price_check_runs_total":       true,
	"spa_price_check_aborted_total":    true,
	"spa_price_check_duration_seconds": true,
	"spa_services_monitored":           true,
	"spa_persist_failures_total":       true,

	// Alert metrics.
	"spa_alerts_fired_total":          true,
	"spa_tiers_rearmed_total":         true,
	"spa_notifications_sent_total":    true,
	"spa_notification_failures_total": true,

	// Subscription metrics.
	"spa_subscriptions_created_total": true,
	"spa_subscriptions_removed_total": true,

	// Catalog metrics.
	"spa_catalog_fetch_failures_total": true,
	"spa_catalog_cache_hits_total":     true,
	"spa_catalog_cache_misses_total":   true,

	// Scheduler metrics.
	"spa_scheduler_next_price_check_timestamp": true,

	// Recording rules.
	"spa:http_requests:rate5m":           true,
	"spa:http_errors:rate5m":             true,
	"spa:price_check_runs:rate5m":        true,
	"spa:price_check_aborted:rate5m":     true,
	"spa:catalog_fetch_failures:rate5m":  true,
	"spa:catalog_cache_hit_ratio:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
