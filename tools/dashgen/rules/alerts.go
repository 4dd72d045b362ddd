package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// server-price-alerts operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "spa-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "spa-alerts",
					Rules: []Rule{
						{
							Alert: "SpaDown",
							Expr:  `absent(up{job="server-price-alerts"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Server Price Alerts is down",
								"description": "The server-price-alerts job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "SpaReadinessDown",
							Expr:  `spa_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Server Price Alerts readiness check is failing",
								"description": "The alert store has been unreachable for more than 2 minutes.",
							},
						},
						{
							Alert: "SpaHighErrorRate",
							Expr:  `spa:http_errors:rate5m / spa:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Server Price Alerts",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "SpaPriceChecksStalled",
							Expr:  `increase(spa_price_check_runs_total[1h]) == 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "No price check has completed in the last hour",
								"description": "Subscribers are not being notified. Check the scheduler and the catalog.",
							},
						},
						{
							Alert: "SpaPriceChecksAborting",
							Expr:  `spa:price_check_aborted:rate5m > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Price checks are aborting",
								"description": "Price check cycles keep aborting before tiers are evaluated, usually because the catalog is unavailable.",
							},
						},
						{
							Alert: "SpaCatalogFailures",
							Expr:  `spa:catalog_fetch_failures:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Catalog provider calls are failing",
								"description": "Catalog {{ $labels.operation }} calls are failing at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "SpaPersistFailures",
							Expr:  `increase(spa_persist_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Alert records failed to persist",
								"description": "Notified tiers could not be saved and may fire again on the next price check.",
							},
						},
						{
							Alert: "SpaNotificationFailures",
							Expr:  `increase(spa_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more alert notifications have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
