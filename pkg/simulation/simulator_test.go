package simulation

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const delta = 1e-9

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// exampleParameters mirrors the calculator defaults: 10 panels of 400 Wp,
// net metering through the end of 2026.
func exampleParameters() Parameters {
	return Parameters{
		StartDate:                     date("2025-01-01"),
		NetMeteringEndDate:            date("2027-01-01"),
		AnnualHouseholdConsumptionKWh: 3600,
		ReplacementHorizonYears:       25,
		PurchaseCostEUR:               4500,
		InverterReplacementCostEUR:    1200,
		InverterLifespanYears:         12,
		WattPeakPerPanel:              400,
		PanelCount:                    10,
		YieldPerWattPeakPerYear:       0.85,
		AnnualDegradationRate:         0.007,
		SelfConsumptionShare:          0.30,
		SupplyPriceEURPerKWh:          0.15,
		SupplyPriceAnnualGrowth:       0.0138,
		SupplyPriceFrom2035:           0.18,
		EnergyTaxEURPerKWh:            0.09,
		EnergyTaxAnnualTrend:          -0.0174,
		EnergyTaxFrom2035:             0.09,
		VATRate:                       0.21,
		FeedInSharePercent:            0.25,
		AnnualFeedInSurchargeEUR:      274,
	}
}

func TestRunSeriesShape(t *testing.T) {
	for _, horizon := range []int{1, 10, 25, 40} {
		p := exampleParameters()
		p.ReplacementHorizonYears = horizon

		result, err := NewSimulator(zap.NewNop()).Run(p)
		require.NoError(t, err)

		assert.Len(t, result.Years, horizon)
		assert.Len(t, result.Cumulative, horizon+1)
		assert.Equal(t, -p.PurchaseCostEUR, result.Cumulative[0])
		assert.Equal(t, horizon, result.Horizon())
		for i, record := range result.Years {
			assert.Equal(t, i+1, record.YearIndex)
		}
	}
}

func TestRunReconcilesExactly(t *testing.T) {
	result, err := Simulate(exampleParameters())
	require.NoError(t, err)

	total := -result.Parameters.PurchaseCostEUR
	for _, record := range result.Years {
		total += record.NetCashFlowEUR
	}
	assert.Equal(t, total, result.Final())
	assert.Equal(t, result.Cumulative[len(result.Cumulative)-1], result.Final())
}

func TestRunExampleScenarioFirstYear(t *testing.T) {
	p := exampleParameters()
	result, err := Simulate(p)
	require.NoError(t, err)

	y1 := result.Years[0]
	assert.True(t, y1.NetMeteringActive)
	assert.Equal(t, 1.0, y1.DegradationFactor)
	assert.InDelta(t, 3400, y1.GeneratedKWh, delta)
	assert.InDelta(t, 1020, y1.SelfConsumedKWh, delta)
	assert.InDelta(t, 2380, y1.ExportedKWh, delta)
	assert.InDelta(t, 2380, y1.NetMeteredKWh, delta)
	assert.InDelta(t, 0, y1.SurplusKWh, delta)
	assert.InDelta(t, 0.2904, y1.Tariff.PriceInclTaxEURPerKWh, delta)
	assert.InDelta(t, 296.208, y1.SelfConsumptionRevenueEUR, 1e-6)
	assert.InDelta(t, 691.152, y1.NetMeteringRevenueEUR, 1e-6)
	assert.InDelta(t, 0, y1.FeedInRevenueEUR, delta)
	assert.InDelta(t, 274, y1.SurchargeEUR, delta)
	assert.InDelta(t, -274, y1.OneTimeCostsEUR, delta)
	assert.InDelta(t, 296.208+691.152-274, y1.NetCashFlowEUR, 1e-6)
	assert.InDelta(t, -4500+296.208+691.152-274, result.Cumulative[1], 1e-6)
}

func TestRunNetMeteringThroughYearTwoOnly(t *testing.T) {
	result, err := Simulate(exampleParameters())
	require.NoError(t, err)

	assert.True(t, result.Years[0].NetMeteringActive)
	assert.True(t, result.Years[1].NetMeteringActive)
	for _, record := range result.Years[2:] {
		assert.False(t, record.NetMeteringActive, "year %d", record.YearIndex)
		assert.Zero(t, record.NetMeteringRevenueEUR, "year %d", record.YearIndex)
		assert.Zero(t, record.SurchargeEUR, "year %d", record.YearIndex)
	}

	// After net metering all export is paid at the feed-in rate.
	y3 := result.Years[2]
	assert.InDelta(t, y3.ExportedKWh*y3.Tariff.SupplyPriceEURPerKWh*0.25, y3.FeedInRevenueEUR, delta)
}

func TestRunNetMeteringEndedBeforeStart(t *testing.T) {
	p := exampleParameters()
	p.NetMeteringEndDate = date("2020-01-01")

	result, err := Simulate(p)
	require.NoError(t, err)

	for _, record := range result.Years {
		assert.False(t, record.NetMeteringActive, "year %d", record.YearIndex)
		assert.Zero(t, record.NetMeteringRevenueEUR, "year %d", record.YearIndex)
		assert.Zero(t, record.SurchargeEUR, "year %d", record.YearIndex)
	}
}

func TestRunFullSelfConsumption(t *testing.T) {
	p := exampleParameters()
	p.SelfConsumptionShare = 1

	result, err := Simulate(p)
	require.NoError(t, err)

	for _, record := range result.Years {
		assert.Zero(t, record.ExportedKWh, "year %d", record.YearIndex)
		assert.Zero(t, record.NetMeteringRevenueEUR, "year %d", record.YearIndex)
		assert.Zero(t, record.FeedInRevenueEUR, "year %d", record.YearIndex)
	}
}

func TestRunInverterReplacementWindow(t *testing.T) {
	p := exampleParameters()
	p.InverterLifespanYears = 5

	result, err := Simulate(p)
	require.NoError(t, err)

	charged := map[int]bool{}
	for _, record := range result.Years {
		if record.InverterReplacementEUR != 0 {
			charged[record.YearIndex] = true
		}
		if p.ReplacementHorizonYears-record.YearIndex <= 10 {
			assert.Zero(t, record.InverterReplacementEUR, "year %d is too close to the horizon", record.YearIndex)
		}
	}
	assert.Equal(t, map[int]bool{5: true, 10: true}, charged)
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	p := exampleParameters()
	p.SelfConsumptionShare = 1.2
	p.ReplacementHorizonYears = 0
	p.InverterLifespanYears = 0

	result, err := Simulate(p)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Parameters)
		fields []string
	}{
		{
			name:   "valid defaults",
			mutate: func(p *Parameters) {},
		},
		{
			name:   "share above one",
			mutate: func(p *Parameters) { p.SelfConsumptionShare = 1.01 },
			fields: []string{"selfConsumptionShare"},
		},
		{
			name:   "negative share",
			mutate: func(p *Parameters) { p.SelfConsumptionShare = -0.1 },
			fields: []string{"selfConsumptionShare"},
		},
		{
			name:   "horizon zero",
			mutate: func(p *Parameters) { p.ReplacementHorizonYears = 0 },
			fields: []string{"replacementHorizonYears"},
		},
		{
			name:   "horizon beyond maximum",
			mutate: func(p *Parameters) { p.ReplacementHorizonYears = 41 },
			fields: []string{"replacementHorizonYears"},
		},
		{
			name:   "inverter lifespan zero",
			mutate: func(p *Parameters) { p.InverterLifespanYears = 0 },
			fields: []string{"inverterLifespanYears"},
		},
		{
			name:   "negative growth allowed",
			mutate: func(p *Parameters) { p.SupplyPriceAnnualGrowth = -0.05 },
		},
		{
			name:   "growth below minus one",
			mutate: func(p *Parameters) { p.EnergyTaxAnnualTrend = -1.5 },
			fields: []string{"energyTaxAnnualTrend"},
		},
		{
			name:   "negative monetary rates",
			mutate: func(p *Parameters) { p.PurchaseCostEUR = -1; p.VATRate = -0.21 },
			fields: []string{"purchaseCostEUR", "vatRate"},
		},
		{
			name:   "not a number",
			mutate: func(p *Parameters) { p.YieldPerWattPeakPerYear = math.NaN() },
			fields: []string{"yieldPerWattPeakPerYear"},
		},
		{
			name:   "missing dates",
			mutate: func(p *Parameters) { p.StartDate = time.Time{}; p.NetMeteringEndDate = time.Time{} },
			fields: []string{"startDate", "netMeteringEndDate"},
		},
		{
			name:   "negative panel count",
			mutate: func(p *Parameters) { p.PanelCount = -2 },
			fields: []string{"panelCount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exampleParameters()
			tt.mutate(&p)

			err := p.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var fields []string
			for _, e := range multierr.Errors(err) {
				var pe *ParameterError
				require.True(t, errors.As(e, &pe), "unexpected error type %T", e)
				assert.ErrorIs(t, e, ErrInvalidParameter)
				fields = append(fields, pe.Field)
			}
			assert.ElementsMatch(t, tt.fields, fields)
		})
	}
}

func TestPeakPowerWp(t *testing.T) {
	assert.Equal(t, 4000.0, exampleParameters().PeakPowerWp())
}
