// Package panels builds the Grafana panels of the alert server dashboard.
// Each builder queries one family of spa_* metrics, or a recording rule over
// them, through the ${datasource} Prometheus variable.
package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
)

// Job is the Prometheus scrape job of the alert server.
const Job = "server-price-alerts"

// Panel sizes on Grafana's 24-column grid.
const (
	StatWidth  = 6
	StatHeight = 4

	TSWidth  = 12
	TSHeight = 8

	ThirdWidth = 8
	FullWidth  = 24
)

// DSRef points a panel at the ${datasource} variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery is a single PromQL target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// step is a threshold color starting at from; a nil from is the base step.
func step(color string, from *float64) dashboard.Threshold {
	return dashboard.Threshold{Value: from, Color: color}
}

func absoluteThresholds(steps ...dashboard.Threshold) cog.Builder[dashboard.ThresholdsConfig] {
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(steps)
}

// ThresholdsRedGreen is red below greenAbove and green from it up.
func ThresholdsRedGreen(greenAbove float64) cog.Builder[dashboard.ThresholdsConfig] {
	return absoluteThresholds(step("red", nil), step("green", &greenAbove))
}

// ThresholdsGreenYellowRed turns yellow at yellow and red at red.
func ThresholdsGreenYellowRed(yellow, red float64) cog.Builder[dashboard.ThresholdsConfig] {
	return absoluteThresholds(step("green", nil), step("yellow", &yellow), step("red", &red))
}

// ThresholdsGreenOnly colors every value green.
func ThresholdsGreenOnly() cog.Builder[dashboard.ThresholdsConfig] {
	return absoluteThresholds(step("green", nil))
}

// ColorSchemeThresholds colors values by their threshold step.
func ColorSchemeThresholds() cog.Builder[dashboard.FieldColor] {
	return colorMode(dashboard.FieldColorModeIdThresholds)
}

// ColorSchemePaletteClassic colors each series from the classic palette.
func ColorSchemePaletteClassic() cog.Builder[dashboard.FieldColor] {
	return colorMode(dashboard.FieldColorModeIdPaletteClassic)
}

func colorMode(mode dashboard.FieldColorModeId) cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(mode)
}

// TableLegend renders the legend as a table under the graph with one column
// per calc.
func TableLegend(calcs ...string) *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs(calcs)
}

// MultiTooltip shows every series in the tooltip, highest first.
func MultiTooltip() *common.VizTooltipOptionsBuilder {
	return common.NewVizTooltipOptionsBuilder().
		Mode(common.TooltipDisplayModeMulti).
		Sort(common.SortOrderDescending)
}

// P95 returns the 95th percentile expression of a histogram scraped from Job.
func P95(histogram string) string {
	return Quantile(0.95, histogram)
}

// Quantile returns a histogram_quantile expression over the 5m bucket rate
// of a histogram scraped from Job.
func Quantile(q float64, histogram string) string {
	return fmt.Sprintf(`histogram_quantile(%g, sum(rate(%s_bucket{job=%q}[5m])) by (le))`, q, histogram, Job)
}
