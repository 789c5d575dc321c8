// Package testutil provides common utility functions for testing.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/iwvelando/solar-payback/internal/config"
	"github.com/iwvelando/solar-payback/internal/forecast"
	"go.uber.org/zap"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// ExampleParameters returns the calculator's default parameter set: ten
// 400 Wp panels bought for €4,500 in 2025 with net metering until 2027.
func ExampleParameters() config.SolarParameters {
	return config.SolarParameters{
		StartDate:                     "2025-01-01",
		NetMeteringEndDate:            "2027-01-01",
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

// MustForecast runs GetForecast on conf and fails the test on error.
func MustForecast(t testing.TB, conf config.Configuration) []forecast.Forecast {
	t.Helper()
	results, err := forecast.GetForecast(zap.NewNop(), conf)
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	return results
}

// ExampleForecast returns the forecast of a single scenario with the given
// name over ExampleParameters modified by mutate.
func ExampleForecast(t testing.TB, name string, mutate func(p *config.SolarParameters)) forecast.Forecast {
	t.Helper()
	params := ExampleParameters()
	if mutate != nil {
		mutate(&params)
	}
	conf := config.Configuration{
		Common:    params,
		Scenarios: []config.Scenario{{Name: name, Active: true}},
	}
	return MustForecast(t, conf)[0]
}

// CaptureStdout returns everything fn writes to os.Stdout.
func CaptureStdout(t testing.TB, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() {
		os.Stdout = oldStdout
	}()
	fn()
	_ = w.Close()

	return <-done
}
