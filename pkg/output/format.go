// Package output provides utilities for formatting and displaying payback
// results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/iwvelando/solar-payback/internal/forecast"
	"github.com/iwvelando/solar-payback/pkg/datetime"
	"github.com/iwvelando/solar-payback/pkg/format"
	"github.com/iwvelando/solar-payback/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)
		fmt.Println(Headline(result))
		_, _ = p.Printf("Total result after %d years: %s\n", len(result.Years), format.WholeCurrency(result.Final()))
		fmt.Printf("\n")

		printAssumptions(os.Stdout, result)
		fmt.Printf("\n")

		fmt.Printf("Year | Date       | Net metering | Self consumption | Feed-in     | Costs        | Cumulative    | Notes\n")
		fmt.Printf("____ | __________ | ____________ | ________________ | ___________ | ____________ | _____________ | _____\n")
		for _, row := range BuildRows(result) {
			_, _ = p.Printf("%4d | %s | %12s | %16s | %11s | %12s | %13s | %s\n",
				row.Year,
				row.Date,
				format.Currency(row.NetMeteringEUR),
				format.Currency(row.SelfConsumptionEUR),
				format.Currency(row.FeedInEUR),
				format.Currency(row.CostsEUR),
				format.Currency(row.CumulativeEUR),
				strings.Join(row.Notes, ","),
			)
		}
		if i < len(results)-1 {
			fmt.Printf("\n")
		}
	}
}

// Headline states the payback period of a forecast in one line.
func Headline(result forecast.Forecast) string {
	if year, ok := result.Payoff.Year(); ok {
		return fmt.Sprintf("Payback period: %.1f years", year)
	}
	return fmt.Sprintf("Not recovered within %d years", result.Payoff.Horizon())
}

func printAssumptions(w io.Writer, result forecast.Forecast) {
	params := result.Parameters
	p := message.NewPrinter(language.English)

	_, _ = p.Fprintf(w, "Assumptions:\n")
	_, _ = p.Fprintf(w, "  Start date:              %s\n", params.StartDate.Format(datetime.DateLayout))
	_, _ = p.Fprintf(w, "  Net metering until:      %s\n", params.NetMeteringEndDate.Format(datetime.DateLayout))
	_, _ = p.Fprintf(w, "  System:                  %d x %.0f Wp = %.0f Wp\n", params.PanelCount, params.WattPeakPerPanel, params.PeakPowerWp())
	if len(result.Years) > 0 {
		_, _ = p.Fprintf(w, "  Generation in year 1:    %s\n", format.Energy(result.Years[0].GeneratedKWh))
	}
	_, _ = p.Fprintf(w, "  Household consumption:   %s\n", format.Energy(params.AnnualHouseholdConsumptionKWh))
	_, _ = p.Fprintf(w, "  Self consumption:        %s\n", format.Percentage(params.SelfConsumptionShare, 0))
	_, _ = p.Fprintf(w, "  Degradation:             %s per year\n", format.Percentage(params.AnnualDegradationRate, 1))
	_, _ = p.Fprintf(w, "  Purchase cost:           %s\n", format.Currency(params.PurchaseCostEUR))
	_, _ = p.Fprintf(w, "  Inverter replacement:    %s every %d years\n", format.Currency(params.InverterReplacementCostEUR), params.InverterLifespanYears)
	_, _ = p.Fprintf(w, "  Supply price:            %s, %s per year, %s from 2035\n",
		format.PricePerKWh(params.SupplyPriceEURPerKWh), format.Percentage(params.SupplyPriceAnnualGrowth, 2), format.PricePerKWh(params.SupplyPriceFrom2035))
	_, _ = p.Fprintf(w, "  Energy tax:              %s, %s per year, %s from 2035\n",
		format.PricePerKWh(params.EnergyTaxEURPerKWh), format.Percentage(params.EnergyTaxAnnualTrend, 2), format.PricePerKWh(params.EnergyTaxFrom2035))
	_, _ = p.Fprintf(w, "  VAT:                     %s\n", format.Percentage(params.VATRate, 0))
	_, _ = p.Fprintf(w, "  Feed-in rate:            %s of the supply price\n", format.Percentage(params.FeedInSharePercent, 0))
	_, _ = p.Fprintf(w, "  Feed-in surcharge:       %s per year while net metering lasts\n", format.Currency(params.AnnualFeedInSurchargeEUR))
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Forecast) {
	fmt.Print(CsvString(results))
}

// CsvString renders the forecasts as CSV, one block of rows per scenario.
func CsvString(results []forecast.Forecast) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"scenario", "year", "date", "netMetering", "selfConsumption", "feedIn", "costs", "netCashFlow", "cumulative", "notes"})
	for _, result := range results {
		for _, row := range BuildRows(result) {
			_ = w.Write([]string{
				result.Name,
				strconv.Itoa(row.Year),
				row.Date,
				csvAmount(row.NetMeteringEUR),
				csvAmount(row.SelfConsumptionEUR),
				csvAmount(row.FeedInEUR),
				csvAmount(row.CostsEUR),
				csvAmount(row.NetCashFlowEUR),
				csvAmount(row.CumulativeEUR),
				strings.Join(row.Notes, ","),
			})
		}
	}
	w.Flush()

	return buf.String()
}

func csvAmount(amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded == 0 {
		// Normalize -0.00.
		rounded = 0
	}
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(results []forecast.Forecast) error {
	return WriteJSON(os.Stdout, results)
}

// WriteJSON writes the report for results to w as indented JSON.
func WriteJSON(w io.Writer, results []forecast.Forecast) error {
	data, err := json.MarshalIndent(BuildReport(results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
