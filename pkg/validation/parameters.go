package validation

import (
	"fmt"

	"github.com/iwvelando/solar-payback/pkg/constants"
	"github.com/iwvelando/solar-payback/pkg/datetime"
	"github.com/iwvelando/solar-payback/pkg/simulation"
)

// Typical annual specific yield range for residential installations in kWh/Wp.
const (
	minTypicalYield = 0.5
	maxTypicalYield = 1.4
)

// ParameterWarnings returns plausibility warnings for a parameter set that is
// valid but probably not what the user meant. Hard invariant violations are
// reported by simulation.Parameters.Validate instead.
func ParameterWarnings(scenarioName string, p simulation.Parameters) []string {
	var warnings []string
	prefix := fmt.Sprintf("Scenario '%s': ", scenarioName)

	if p.ReplacementHorizonYears >= constants.MinHorizonYears && p.ReplacementHorizonYears < constants.RecommendedMinHorizonYears {
		warnings = append(warnings, prefix+fmt.Sprintf("replacement horizon of %d years is shorter than the usual %d-%d years",
			p.ReplacementHorizonYears, constants.RecommendedMinHorizonYears, constants.MaxHorizonYears))
	}

	if !p.StartDate.IsZero() && !p.NetMeteringEndDate.IsZero() && !p.StartDate.Before(p.NetMeteringEndDate) {
		warnings = append(warnings, prefix+fmt.Sprintf("net metering ends on %s, not after the start date %s; no year is net metered",
			p.NetMeteringEndDate.Format(datetime.DateLayout), p.StartDate.Format(datetime.DateLayout)))
	}

	if !p.StartDate.IsZero() && p.StartDate.Year() >= constants.TariffCliffYear {
		warnings = append(warnings, prefix+fmt.Sprintf("start date is in or after %d; the fixed tariffs apply to every year",
			constants.TariffCliffYear))
	}

	if p.InverterLifespanYears >= 1 && p.ReplacementHorizonYears-p.InverterLifespanYears <= constants.InverterReplacementMinRemainingYears {
		warnings = append(warnings, prefix+fmt.Sprintf("inverter lifespan of %d years leaves no replacement more than %d years before the end of the %d year horizon; no inverter cost is charged",
			p.InverterLifespanYears, constants.InverterReplacementMinRemainingYears, p.ReplacementHorizonYears))
	}

	if p.PanelCount > 0 && (p.YieldPerWattPeakPerYear < minTypicalYield || p.YieldPerWattPeakPerYear > maxTypicalYield) {
		warnings = append(warnings, prefix+fmt.Sprintf("yield of %.2f kWh/Wp per year is outside the typical %.1f-%.1f range",
			p.YieldPerWattPeakPerYear, minTypicalYield, maxTypicalYield))
	}

	return warnings
}
