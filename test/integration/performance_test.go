package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/solar-payback/internal/config"
	"github.com/iwvelando/solar-payback/internal/forecast"
	"github.com/iwvelando/solar-payback/pkg/payoff"
	"github.com/iwvelando/solar-payback/pkg/testutil"
	"go.uber.org/zap"
)

func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(testConfigPath)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		t.Fatalf("GetForecast failed: %v", err)
	}
	forecastTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Generate forecast: %v", forecastTime)

	if total := loadTime + forecastTime; total > 5*time.Second {
		t.Errorf("Total processing time %v exceeds 5 second threshold", total)
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}
}

// TestMemoryUsage runs many forecasts back to back.
func TestMemoryUsage(t *testing.T) {
	for i := 0; i < 100; i++ {
		conf, err := config.LoadConfiguration(testConfigPath)
		if err != nil {
			t.Fatalf("LoadConfiguration failed on iteration %d: %v", i, err)
		}
		if _, err := forecast.GetForecast(zap.NewNop(), *conf); err != nil {
			t.Fatalf("GetForecast failed on iteration %d: %v", i, err)
		}
	}
}

func BenchmarkForecast40Years(b *testing.B) {
	params := testutil.ExampleParameters()
	params.ReplacementHorizonYears = 40
	conf := config.Configuration{
		Common:    params,
		Scenarios: []config.Scenario{{Name: "benchmark", Active: true}},
	}
	logger := zap.NewNop()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := forecast.GetForecast(logger, conf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPayoffEstimate(b *testing.B) {
	result := testutil.ExampleForecast(b, "benchmark", func(p *config.SolarParameters) {
		p.ReplacementHorizonYears = 40
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = payoff.Estimate(result.Cumulative)
	}
}
