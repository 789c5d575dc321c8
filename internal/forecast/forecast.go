// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/iwvelando/solar-payback/internal/config"
	"github.com/iwvelando/solar-payback/pkg/datetime"
	"github.com/iwvelando/solar-payback/pkg/format"
	"github.com/iwvelando/solar-payback/pkg/payoff"
	"github.com/iwvelando/solar-payback/pkg/simulation"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific scenario's payback
// forecast.
type Forecast struct {
	Name       string
	Parameters simulation.Parameters
	Years      []simulation.YearRecord
	Cumulative []float64
	Payoff     payoff.Result
	// Notes are keyed by the date of the year they apply to.
	Notes map[string][]string
}

// Final returns the cumulative result after the last simulated year.
func (f Forecast) Final() float64 {
	if len(f.Cumulative) == 0 {
		return 0
	}
	return f.Cumulative[len(f.Cumulative)-1]
}

// GetForecast processes the Forecasts for all active Scenarios.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	simulator := simulation.NewSimulator(logger)

	var results []Forecast
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
		}
	}

	for _, scenario := range conf.ActiveScenarios() {
		params, err := conf.ScenarioParameters(scenario)
		if err != nil {
			return results, err
		}

		result, err := simulator.Run(params)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		forecast := Forecast{
			Name:       scenario.Name,
			Parameters: params,
			Years:      result.Years,
			Cumulative: result.Cumulative,
			Payoff:     payoff.Estimate(result.Cumulative),
		}
		forecast.Notes = yearNotes(result, forecast.Payoff)

		logger.Debug("scenario simulated",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", scenario.Name),
			zap.Int("years", result.Horizon()),
			zap.Float64("final", result.Final()),
			zap.String("payoff", forecast.Payoff.String()),
		)

		results = append(results, forecast)
	}

	return results, nil
}

// yearNotes marks the years in which something changes: the last net-metered
// year, the switch to the fixed tariffs, inverter replacements and the year
// the purchase is earned back. Only the crossing behind the payback period is
// marked as recovered.
func yearNotes(result *simulation.Result, p payoff.Result) map[string][]string {
	notes := make(map[string][]string)

	recoveredIndex := -1
	if _, ok := p.Year(); ok {
		if i, crossed := payoff.FirstCrossing(result.Cumulative); crossed {
			recoveredIndex = i - 1
		}
	}

	for i, record := range result.Years {
		date := record.Date.Format(datetime.DateLayout)

		if i > 0 && result.Years[i-1].NetMeteringActive && !record.NetMeteringActive {
			notes[date] = append(notes[date], "net metering ended")
		}
		if record.Tariff.Fixed && (i == 0 || !result.Years[i-1].Tariff.Fixed) {
			notes[date] = append(notes[date], "fixed tariffs apply")
		}
		if record.InverterReplacementEUR > 0 {
			notes[date] = append(notes[date], fmt.Sprintf("inverter replaced (%s)", format.Currency(record.InverterReplacementEUR)))
		}
		if i == recoveredIndex {
			notes[date] = append(notes[date], "purchase recovered")
		}
	}

	return notes
}
