package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "spa-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "spa-recording",
					Rules: []Rule{
						{
							Record: "spa:http_requests:rate5m",
							Expr:   `sum(rate(spa_http_requests_total[5m]))`,
						},
						{
							Record: "spa:http_errors:rate5m",
							Expr:   `sum(rate(spa_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "spa:price_check_runs:rate5m",
							Expr:   `rate(spa_price_check_runs_total[5m])`,
						},
						{
							Record: "spa:price_check_aborted:rate5m",
							Expr:   `rate(spa_price_check_aborted_total[5m])`,
						},
						{
							Record: "spa:catalog_fetch_failures:rate5m",
							Expr:   `sum by (operation) (rate(spa_catalog_fetch_failures_total[5m]))`,
						},
						{
							Record: "spa:catalog_cache_hit_ratio:rate5m",
							Expr: `rate(spa_catalog_cache_hits_total[5m])` +
								` / (rate(spa_catalog_cache_hits_total[5m]) + rate(spa_catalog_cache_misses_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
