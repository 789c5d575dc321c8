package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulateYearAllocation(t *testing.T) {
	tests := []struct {
		name        string
		consumption float64
		netMetered  float64
		surplus     float64
		feedIn      float64
	}{
		{
			name:        "export within allowance",
			consumption: 3600,
			netMetered:  2380,
			surplus:     0,
			feedIn:      0,
		},
		{
			name:        "export partly beyond allowance",
			consumption: 2000,
			netMetered:  980,
			surplus:     1400,
			feedIn:      1400 * 0.15 * 0.25,
		},
		{
			name:        "self consumption exceeds household usage",
			consumption: 1000,
			netMetered:  0,
			surplus:     2380,
			feedIn:      2380 * 0.15 * 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exampleParameters()
			p.AnnualHouseholdConsumptionKWh = tt.consumption

			r := SimulateYear(p, 1)
			assert.True(t, r.NetMeteringActive)
			assert.InDelta(t, tt.netMetered, r.NetMeteredKWh, delta)
			assert.InDelta(t, tt.surplus, r.SurplusKWh, delta)
			assert.InDelta(t, tt.netMetered*0.2904, r.NetMeteringRevenueEUR, 1e-6)
			assert.InDelta(t, tt.feedIn, r.FeedInRevenueEUR, 1e-6)
			assert.GreaterOrEqual(t, r.NetMeteredKWh, 0.0)
			assert.GreaterOrEqual(t, r.SurplusKWh, 0.0)
			assert.InDelta(t, r.ExportedKWh, r.NetMeteredKWh+r.SurplusKWh, delta)
		})
	}
}

func TestSimulateYearDegradation(t *testing.T) {
	p := exampleParameters()

	assert.Equal(t, 1.0, SimulateYear(p, 1).DegradationFactor)
	assert.InDelta(t, 3400*0.993, SimulateYear(p, 2).GeneratedKWh, delta)
	assert.InDelta(t, 3400*math.Pow(0.993, 9), SimulateYear(p, 10).GeneratedKWh, delta)
}

func TestSimulateYearDate(t *testing.T) {
	p := exampleParameters()
	p.StartDate = date("2025-04-15")

	r := SimulateYear(p, 3)
	assert.Equal(t, date("2027-04-15"), r.Date)
	assert.False(t, r.NetMeteringActive)
	assert.Zero(t, r.SurchargeEUR)
}

func TestSimulateYearNoCosts(t *testing.T) {
	p := exampleParameters()
	p.AnnualFeedInSurchargeEUR = 0

	r := SimulateYear(p, 1)
	assert.Equal(t, 0.0, r.OneTimeCostsEUR)
	assert.False(t, math.Signbit(r.OneTimeCostsEUR))
	assert.InDelta(t, r.RevenueEUR(), r.NetCashFlowEUR, delta)
}

func TestDegradationFactor(t *testing.T) {
	assert.Equal(t, 1.0, DegradationFactor(0.007, 1))
	assert.Equal(t, 1.0, DegradationFactor(0.5, 1))
	assert.InDelta(t, 0.25, DegradationFactor(0.5, 3), delta)
	assert.Equal(t, 1.0, DegradationFactor(0, 30))
}

func TestInverterReplacementDue(t *testing.T) {
	tests := []struct {
		name     string
		horizon  int
		lifespan int
		year     int
		expected bool
	}{
		{"scheduled with room left", 25, 12, 12, true},
		{"not a multiple of lifespan", 25, 12, 13, false},
		{"second replacement too close", 25, 12, 24, false},
		{"exactly ten years left", 25, 5, 15, false},
		{"eleven years left", 25, 5, 14, false},
		{"eleven years left on schedule", 26, 5, 15, true},
		{"short horizon never replaces", 10, 1, 1, false},
		{"zero lifespan guarded", 25, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exampleParameters()
			p.ReplacementHorizonYears = tt.horizon
			p.InverterLifespanYears = tt.lifespan
			assert.Equal(t, tt.expected, InverterReplacementDue(p, tt.year))
		})
	}
}

func TestTariffCliff(t *testing.T) {
	p := exampleParameters()
	p.StartDate = date("2030-01-01")
	p.ReplacementHorizonYears = 10

	result, err := Simulate(p)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	// 2030 through 2034 compound from the base values.
	for _, r := range result.Years[:5] {
		n := float64(r.YearIndex - 1)
		assert.False(t, r.Tariff.Fixed, "year %d", r.YearIndex)
		assert.InDelta(t, 0.15*math.Pow(1.0138, n), r.Tariff.SupplyPriceEURPerKWh, delta)
		assert.InDelta(t, 0.09*math.Pow(1-0.0174, n), r.Tariff.EnergyTaxEURPerKWh, delta)
	}

	// From 2035 on the terminal values apply without escalation.
	for _, r := range result.Years[5:] {
		assert.True(t, r.Tariff.Fixed, "year %d", r.YearIndex)
		assert.Equal(t, 0.18, r.Tariff.SupplyPriceEURPerKWh)
		assert.Equal(t, 0.09, r.Tariff.EnergyTaxEURPerKWh)
		assert.InDelta(t, (0.18+0.09)*1.21, r.Tariff.PriceInclTaxEURPerKWh, delta)
		assert.InDelta(t, 0.18*0.25, r.Tariff.FeedInRateEURPerKWh, delta)
	}
}

func TestTariffForBaseYear(t *testing.T) {
	p := exampleParameters()

	tariff := TariffFor(p, p.StartDate, 1)
	assert.False(t, tariff.Fixed)
	assert.Equal(t, 0.15, tariff.SupplyPriceEURPerKWh)
	assert.Equal(t, 0.09, tariff.EnergyTaxEURPerKWh)
	assert.InDelta(t, 0.2904, tariff.PriceInclTaxEURPerKWh, delta)
	assert.InDelta(t, 0.0375, tariff.FeedInRateEURPerKWh, delta)
}
