// Package simulation computes the year-by-year cash flow of a residential
// solar installation: generation after degradation, the split of that
// generation over self consumption, net metering and feed-in, the recurring
// feed-in surcharge and scheduled inverter replacements.
package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/solar-payback/pkg/constants"
	"github.com/iwvelando/solar-payback/pkg/mathutil"
	"go.uber.org/multierr"
)

// ErrInvalidParameter is matched by every error returned from
// Parameters.Validate.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError describes a single parameter that violates an invariant.
type ParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidParameter).
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Parameters holds the economic and technical inputs of one simulation run.
// Rates and shares are fractions (0.21 for 21%).
type Parameters struct {
	StartDate          time.Time
	NetMeteringEndDate time.Time

	AnnualHouseholdConsumptionKWh float64
	ReplacementHorizonYears       int

	PurchaseCostEUR            float64
	InverterReplacementCostEUR float64
	InverterLifespanYears      int

	WattPeakPerPanel        float64
	PanelCount              int
	YieldPerWattPeakPerYear float64
	AnnualDegradationRate   float64
	SelfConsumptionShare    float64

	SupplyPriceEURPerKWh    float64
	SupplyPriceAnnualGrowth float64
	SupplyPriceFrom2035     float64
	EnergyTaxEURPerKWh      float64
	EnergyTaxAnnualTrend    float64
	EnergyTaxFrom2035       float64

	VATRate                  float64
	FeedInSharePercent       float64
	AnnualFeedInSurchargeEUR float64
}

// PeakPowerWp returns the installed capacity in watt peak.
func (p Parameters) PeakPowerWp() float64 {
	return p.WattPeakPerPanel * float64(p.PanelCount)
}

// Validate checks every invariant and returns all violations combined, or nil.
func (p Parameters) Validate() error {
	var err error

	if p.StartDate.IsZero() {
		err = multierr.Append(err, &ParameterError{Field: "startDate", Value: "", Reason: "must be set"})
	}
	if p.NetMeteringEndDate.IsZero() {
		err = multierr.Append(err, &ParameterError{Field: "netMeteringEndDate", Value: "", Reason: "must be set"})
	}

	if p.ReplacementHorizonYears < constants.MinHorizonYears || p.ReplacementHorizonYears > constants.MaxHorizonYears {
		err = multierr.Append(err, &ParameterError{
			Field:  "replacementHorizonYears",
			Value:  p.ReplacementHorizonYears,
			Reason: fmt.Sprintf("must be between %d and %d", constants.MinHorizonYears, constants.MaxHorizonYears),
		})
	}
	if p.InverterLifespanYears < 1 {
		err = multierr.Append(err, &ParameterError{Field: "inverterLifespanYears", Value: p.InverterLifespanYears, Reason: "must be at least 1"})
	}
	if p.PanelCount < 0 {
		err = multierr.Append(err, &ParameterError{Field: "panelCount", Value: p.PanelCount, Reason: "must not be negative"})
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"annualHouseholdConsumptionKWh", p.AnnualHouseholdConsumptionKWh},
		{"purchaseCostEUR", p.PurchaseCostEUR},
		{"inverterReplacementCostEUR", p.InverterReplacementCostEUR},
		{"wattPeakPerPanel", p.WattPeakPerPanel},
		{"yieldPerWattPeakPerYear", p.YieldPerWattPeakPerYear},
		{"supplyPriceEURPerKWh", p.SupplyPriceEURPerKWh},
		{"supplyPriceFrom2035", p.SupplyPriceFrom2035},
		{"energyTaxEURPerKWh", p.EnergyTaxEURPerKWh},
		{"energyTaxFrom2035", p.EnergyTaxFrom2035},
		{"vatRate", p.VATRate},
		{"feedInSharePercent", p.FeedInSharePercent},
		{"annualFeedInSurchargeEUR", p.AnnualFeedInSurchargeEUR},
	}
	for _, f := range nonNegative {
		err = multierr.Append(err, checkFinite(f.field, f.value))
		if f.value < 0 {
			err = multierr.Append(err, &ParameterError{Field: f.field, Value: f.value, Reason: "must not be negative"})
		}
	}

	fractions := []struct {
		field string
		value float64
	}{
		{"selfConsumptionShare", p.SelfConsumptionShare},
		{"annualDegradationRate", p.AnnualDegradationRate},
	}
	for _, f := range fractions {
		err = multierr.Append(err, checkFinite(f.field, f.value))
		if f.value < 0 || f.value > 1 {
			err = multierr.Append(err, &ParameterError{Field: f.field, Value: f.value, Reason: "must be between 0 and 1"})
		}
	}

	// Growth rates may be negative but may not push a price below zero.
	rates := []struct {
		field string
		value float64
	}{
		{"supplyPriceAnnualGrowth", p.SupplyPriceAnnualGrowth},
		{"energyTaxAnnualTrend", p.EnergyTaxAnnualTrend},
	}
	for _, f := range rates {
		err = multierr.Append(err, checkFinite(f.field, f.value))
		if f.value < -1 {
			err = multierr.Append(err, &ParameterError{Field: f.field, Value: f.value, Reason: "must not be below -1"})
		}
	}

	return err
}

func checkFinite(field string, value float64) error {
	if mathutil.IsFinite(value) {
		return nil
	}
	return &ParameterError{Field: field, Value: value, Reason: "must be a finite number"}
}
