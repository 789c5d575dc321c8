package simulation

import (
	"fmt"

	"github.com/iwvelando/solar-payback/pkg/datetime"
	"go.uber.org/zap"
)

// Result holds the outcome of one simulation run. It is built once and not
// modified afterwards.
type Result struct {
	Parameters Parameters
	// Years has one record per simulated year, index 0 being year 1.
	Years []YearRecord
	// Cumulative has len(Years)+1 entries; entry 0 is the negated purchase
	// cost and entry i adds the net cash flow of year i.
	Cumulative []float64
}

// Final returns the cumulative result at the end of the horizon.
func (r *Result) Final() float64 {
	if r == nil || len(r.Cumulative) == 0 {
		return 0
	}
	return r.Cumulative[len(r.Cumulative)-1]
}

// Horizon returns the number of simulated years.
func (r *Result) Horizon() int {
	if r == nil {
		return 0
	}
	return len(r.Years)
}

// Simulator runs the year-by-year fold over a parameter set.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator creates a new simulator with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger}
}

// Run validates p and simulates every year of its horizon. Invalid parameters
// are rejected before any year is computed.
func (s *Simulator) Run(p Parameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation parameters: %w", err)
	}

	n := p.ReplacementHorizonYears
	years := make([]YearRecord, 0, n)
	cumulative := make([]float64, 1, n+1)
	cumulative[0] = -p.PurchaseCostEUR

	for year := 1; year <= n; year++ {
		record := SimulateYear(p, year)
		years = append(years, record)
		cumulative = append(cumulative, cumulative[year-1]+record.NetCashFlowEUR)

		s.logger.Debug("simulated year",
			zap.String("op", "simulation.Run"),
			zap.Int("year", year),
			zap.String("date", record.Date.Format(datetime.DateLayout)),
			zap.Bool("netMetering", record.NetMeteringActive),
			zap.Float64("generatedKWh", record.GeneratedKWh),
			zap.Float64("netCashFlow", record.NetCashFlowEUR),
			zap.Float64("cumulative", cumulative[year]),
		)
	}

	return &Result{Parameters: p, Years: years, Cumulative: cumulative}, nil
}

// Simulate runs p without logging.
func Simulate(p Parameters) (*Result, error) {
	return NewSimulator(nil).Run(p)
}
