package testutil

import (
	"fmt"
	"testing"

	"github.com/iwvelando/solar-payback/internal/config"
	"github.com/iwvelando/solar-payback/internal/forecast"
)

func TestFindScenario(t *testing.T) {
	results := []forecast.Forecast{
		{Name: "Scenario A", Cumulative: []float64{-1000}},
		{Name: "Scenario B", Cumulative: []float64{-2000}},
		{Name: "Another Scenario", Cumulative: []float64{-3000}},
	}

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedFinal float64
	}{
		{
			name:          "Find existing scenario A",
			searchName:    "Scenario A",
			expectFound:   true,
			expectedFinal: -1000,
		},
		{
			name:          "Find scenario with longer name",
			searchName:    "Another Scenario",
			expectFound:   true,
			expectedFinal: -3000,
		},
		{
			name:        "Search for non-existent scenario",
			searchName:  "Non-existent",
			expectFound: false,
		},
		{
			name:        "Name matching is case sensitive",
			searchName:  "scenario a",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindScenario(results, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("FindScenario() found %q, expected nil", result.Name)
				}
				return
			}
			if result == nil {
				t.Fatalf("FindScenario() returned nil for %q", tt.searchName)
			}
			if result.Final() != tt.expectedFinal {
				t.Errorf("FindScenario() final = %.2f, expected %.2f", result.Final(), tt.expectedFinal)
			}
		})
	}
}

func TestFindScenarioReturnsPointerIntoSlice(t *testing.T) {
	results := []forecast.Forecast{{Name: "A"}}
	FindScenario(results, "A").Name = "B"
	if results[0].Name != "B" {
		t.Errorf("FindScenario() should return a pointer into the slice")
	}
}

func TestExampleForecast(t *testing.T) {
	result := ExampleForecast(t, "example", func(p *config.SolarParameters) {
		p.ReplacementHorizonYears = 12
	})

	if result.Name != "example" {
		t.Errorf("Name = %q, expected example", result.Name)
	}
	if len(result.Years) != 12 {
		t.Errorf("len(Years) = %d, expected 12", len(result.Years))
	}
	if result.Cumulative[0] != -4500 {
		t.Errorf("Cumulative[0] = %.2f, expected -4500", result.Cumulative[0])
	}
}

func TestCaptureStdout(t *testing.T) {
	out := CaptureStdout(t, func() {
		fmt.Print("hello ")
		fmt.Println("world")
	})
	if out != "hello world\n" {
		t.Errorf("CaptureStdout() = %q", out)
	}
}
