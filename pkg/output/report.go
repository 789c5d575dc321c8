package output

import (
	"github.com/iwvelando/solar-payback/internal/forecast"
	"github.com/iwvelando/solar-payback/pkg/datetime"
)

// Report is the machine-readable form of a set of forecasts, shared by the
// json output format and the HTTP API.
type Report struct {
	Scenarios []ScenarioReport `json:"scenarios"`
}

// ScenarioReport summarizes one forecast.
type ScenarioReport struct {
	Name         string   `json:"name"`
	Recovered    bool     `json:"recovered"`
	PayoffYear   *float64 `json:"payoffYear,omitempty"`
	HorizonYears int      `json:"horizonYears"`
	PurchaseEUR  float64  `json:"purchaseEUR"`
	FinalEUR     float64  `json:"finalEUR"`
	Rows         []Row    `json:"rows"`
}

// Row is one line of the year table. Row 0 is the purchase; later rows are
// simulated years. Costs are negative.
type Row struct {
	Year               int      `json:"year"`
	Date               string   `json:"date"`
	NetMeteringEUR     float64  `json:"netMeteringEUR"`
	SelfConsumptionEUR float64  `json:"selfConsumptionEUR"`
	FeedInEUR          float64  `json:"feedInEUR"`
	CostsEUR           float64  `json:"costsEUR"`
	NetCashFlowEUR     float64  `json:"netCashFlowEUR"`
	CumulativeEUR      float64  `json:"cumulativeEUR"`
	Notes              []string `json:"notes,omitempty"`
}

// BuildReport converts forecasts into a Report.
func BuildReport(results []forecast.Forecast) Report {
	report := Report{Scenarios: make([]ScenarioReport, 0, len(results))}
	for _, result := range results {
		report.Scenarios = append(report.Scenarios, BuildScenarioReport(result))
	}
	return report
}

// BuildScenarioReport converts a single forecast.
func BuildScenarioReport(result forecast.Forecast) ScenarioReport {
	scenario := ScenarioReport{
		Name:         result.Name,
		Recovered:    result.Payoff.IsRecovered(),
		HorizonYears: len(result.Years),
		PurchaseEUR:  result.Parameters.PurchaseCostEUR,
		FinalEUR:     result.Final(),
		Rows:         BuildRows(result),
	}
	if year, ok := result.Payoff.Year(); ok {
		scenario.PayoffYear = &year
	}
	return scenario
}

// BuildRows returns the year table of a forecast, starting with the purchase
// in year 0.
func BuildRows(result forecast.Forecast) []Row {
	rows := make([]Row, 0, len(result.Years)+1)

	purchase := result.Parameters.PurchaseCostEUR
	rows = append(rows, Row{
		Year:           0,
		Date:           result.Parameters.StartDate.Format(datetime.DateLayout),
		CostsEUR:       -purchase,
		NetCashFlowEUR: -purchase,
		CumulativeEUR:  cumulativeAt(result, 0),
	})

	for i, record := range result.Years {
		date := record.Date.Format(datetime.DateLayout)
		rows = append(rows, Row{
			Year:               record.YearIndex,
			Date:               date,
			NetMeteringEUR:     record.NetMeteringRevenueEUR,
			SelfConsumptionEUR: record.SelfConsumptionRevenueEUR,
			FeedInEUR:          record.FeedInRevenueEUR,
			CostsEUR:           record.OneTimeCostsEUR,
			NetCashFlowEUR:     record.NetCashFlowEUR,
			CumulativeEUR:      cumulativeAt(result, i+1),
			Notes:              result.Notes[date],
		})
	}

	return rows
}

func cumulativeAt(result forecast.Forecast, i int) float64 {
	if i < len(result.Cumulative) {
		return result.Cumulative[i]
	}
	return 0
}
