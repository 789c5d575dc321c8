package output

import (
	"strconv"

	"github.com/iwvelando/solar-payback/internal/forecast"
)

// BarModeRelative stacks positive bars upwards and negative bars downwards
// from zero.
const BarModeRelative = "relative"

// Chart is a plot-ready description of one forecast: revenue and cost bars
// per year plus the cumulative result and a break-even line.
type Chart struct {
	Title   string        `json:"title"`
	Labels  []string      `json:"labels"`
	BarMode string        `json:"barMode"`
	Bars    []ChartSeries `json:"bars"`
	Lines   []ChartSeries `json:"lines"`
}

// ChartSeries is one named series aligned with Chart.Labels.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// BuildChart returns the chart series for result over years 0..N.
func BuildChart(result forecast.Forecast) Chart {
	rows := BuildRows(result)

	labels := make([]string, len(rows))
	netMetering := make([]float64, len(rows))
	selfConsumption := make([]float64, len(rows))
	feedIn := make([]float64, len(rows))
	costs := make([]float64, len(rows))
	cumulative := make([]float64, len(rows))
	breakEven := make([]float64, len(rows))

	for i, row := range rows {
		labels[i] = strconv.Itoa(row.Year)
		netMetering[i] = row.NetMeteringEUR
		selfConsumption[i] = row.SelfConsumptionEUR
		feedIn[i] = row.FeedInEUR
		costs[i] = row.CostsEUR
		cumulative[i] = row.CumulativeEUR
	}

	return Chart{
		Title:   result.Name + ": " + Headline(result),
		Labels:  labels,
		BarMode: BarModeRelative,
		Bars: []ChartSeries{
			{Name: "Net metering", Values: netMetering},
			{Name: "Self consumption", Values: selfConsumption},
			{Name: "Feed-in", Values: feedIn},
			{Name: "Costs", Values: costs},
		},
		Lines: []ChartSeries{
			{Name: "Cumulative", Values: cumulative},
			{Name: "Break-even", Values: breakEven},
		},
	}
}
