// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"github.com/iwvelando/solar-payback/pkg/datetime"
	"github.com/iwvelando/solar-payback/pkg/simulation"
)

// ToSimulationParameters parses the dates of s and converts it into the
// engine's parameter type. It does not validate invariants; the simulator
// does that before running.
func (s SolarParameters) ToSimulationParameters() (simulation.Parameters, error) {
	start, err := datetime.ParseDate(s.StartDate)
	if err != nil {
		return simulation.Parameters{}, fmt.Errorf("startDate: %w", err)
	}
	netMeteringEnd, err := datetime.ParseDate(s.NetMeteringEndDate)
	if err != nil {
		return simulation.Parameters{}, fmt.Errorf("netMeteringEndDate: %w", err)
	}

	return simulation.Parameters{
		StartDate:                     start,
		NetMeteringEndDate:            netMeteringEnd,
		AnnualHouseholdConsumptionKWh: s.AnnualHouseholdConsumptionKWh,
		ReplacementHorizonYears:       s.ReplacementHorizonYears,
		PurchaseCostEUR:               s.PurchaseCostEUR,
		InverterReplacementCostEUR:    s.InverterReplacementCostEUR,
		InverterLifespanYears:         s.InverterLifespanYears,
		WattPeakPerPanel:              s.WattPeakPerPanel,
		PanelCount:                    s.PanelCount,
		YieldPerWattPeakPerYear:       s.YieldPerWattPeakPerYear,
		AnnualDegradationRate:         s.AnnualDegradationRate,
		SelfConsumptionShare:          s.SelfConsumptionShare,
		SupplyPriceEURPerKWh:          s.SupplyPriceEURPerKWh,
		SupplyPriceAnnualGrowth:       s.SupplyPriceAnnualGrowth,
		SupplyPriceFrom2035:           s.SupplyPriceFrom2035,
		EnergyTaxEURPerKWh:            s.EnergyTaxEURPerKWh,
		EnergyTaxAnnualTrend:          s.EnergyTaxAnnualTrend,
		EnergyTaxFrom2035:             s.EnergyTaxFrom2035,
		VATRate:                       s.VATRate,
		FeedInSharePercent:            s.FeedInSharePercent,
		AnnualFeedInSurchargeEUR:      s.AnnualFeedInSurchargeEUR,
	}, nil
}

// ScenarioParameters merges the scenario's overrides onto the common
// parameters and converts the result.
func (conf *Configuration) ScenarioParameters(scenario Scenario) (simulation.Parameters, error) {
	params, err := conf.Common.WithOverrides(scenario.Overrides).ToSimulationParameters()
	if err != nil {
		return simulation.Parameters{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return params, nil
}
