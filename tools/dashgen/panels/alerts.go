package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// AlertsRate returns a timeseries panel showing tiers fired and re-armed
// per hour.
func AlertsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Tiers Fired / Re-armed per h").
		Description("Alert tiers crossing their threshold and tiers reset after the price recovered").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(rate(spa_alerts_fired_total{job="server-price-alerts"}[5m])) * 3600`, "fired", "A")).
		WithTarget(PromQuery(`sum(rate(spa_tiers_rearmed_total{job="server-price-alerts"}[5m])) * 3600`, "re-armed", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationsSent returns a timeseries panel showing delivered
// notifications per hour.
func NotificationsSent() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notifications / h").
		Description("Notifications delivered to subscribers per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(rate(spa_notifications_sent_total{job="server-price-alerts"}[5m])) * 3600`, "sent", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Failed alert notification deliveries in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(spa_notification_failures_total{job="server-price-alerts"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// SubscriptionChurn returns a timeseries panel showing subscribe and
// unsubscribe requests per hour.
func SubscriptionChurn() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Subscriptions / h").
		Description("Successful subscribe and unsubscribe requests per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(rate(spa_subscriptions_created_total{job="server-price-alerts"}[5m])) * 3600`, "created", "A")).
		WithTarget(PromQuery(`sum(rate(spa_subscriptions_removed_total{job="server-price-alerts"}[5m])) * 3600`, "removed", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
