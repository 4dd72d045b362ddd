package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogFailures returns a timeseries panel showing failed catalog calls
// per minute, split by operation.
func CatalogFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Failures / min").
		Description("Failed catalog provider calls per minute by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`spa:catalog_fetch_failures:rate5m * 60`, "{{operation}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CacheHitRatio returns a gauge panel showing the share of catalog reads
// served from cache.
func CacheHitRatio() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Catalog Cache Hit %").
		Description("Share of catalog reads served from the in-process cache").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`spa:catalog_cache_hit_ratio:rate5m * 100`, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsRedGreen(50)).
		ColorScheme(ColorSchemeThresholds())
}
