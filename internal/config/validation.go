package config

import (
	"fmt"

	"github.com/iwvelando/solar-payback/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	seen := make(map[string]bool)
	for _, scenario := range conf.Scenarios {
		if scenario.Name == "" {
			warnings = append(warnings, "Scenario without a name")
		}
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once", scenario.Name))
		}
		seen[scenario.Name] = true
	}

	active := conf.ActiveScenarios()
	if len(active) == 0 {
		warnings = append(warnings, "No active scenarios; nothing will be simulated")
	}

	for _, scenario := range active {
		params, err := conf.ScenarioParameters(scenario)
		if err != nil {
			// Reported as an error when the scenario is simulated.
			continue
		}
		warnings = append(warnings, validation.ParameterWarnings(scenario.Name, params)...)
	}

	return warnings
}
