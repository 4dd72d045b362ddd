package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ServicesMonitored returns a stat panel showing how many services carry at
// least one alert tier.
func ServicesMonitored() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Services Monitored").
		Description("Services with at least one alert tier at the last price check").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`spa_services_monitored{job="server-price-alerts"}`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// CycleRate returns a timeseries panel showing completed and aborted price
// checks per hour.
func CycleRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Price Checks / h").
		Description("Completed and aborted price check cycles per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`spa:price_check_runs:rate5m * 3600`, "completed", "A")).
		WithTarget(PromQuery(`spa:price_check_aborted:rate5m * 3600`, "aborted", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CycleDuration returns a timeseries panel showing the p95 price check
// duration.
func CycleDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cycle Duration (p95)").
		Description("95th percentile price check cycle duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(P95("spa_price_check_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PersistFailures returns a stat panel showing alert records that failed to
// persist in the past 24 hours.
func PersistFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Persist Failures (24h)").
		Description("Alert records that could not be saved after a price check").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(spa_persist_failures_total{job="server-price-alerts"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
