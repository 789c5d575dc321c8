package simulation

import (
	"math"
	"time"

	"github.com/iwvelando/solar-payback/pkg/constants"
	"github.com/iwvelando/solar-payback/pkg/datetime"
	"github.com/iwvelando/solar-payback/pkg/mathutil"
)

// YearRecord is the outcome of one simulated year.
type YearRecord struct {
	YearIndex         int       `json:"year"`
	Date              time.Time `json:"date"`
	NetMeteringActive bool      `json:"netMeteringActive"`

	DegradationFactor float64 `json:"degradationFactor"`
	GeneratedKWh      float64 `json:"generatedKWh"`
	SelfConsumedKWh   float64 `json:"selfConsumedKWh"`
	ExportedKWh       float64 `json:"exportedKWh"`
	NetMeteredKWh     float64 `json:"netMeteredKWh"`
	SurplusKWh        float64 `json:"surplusKWh"`

	Tariff Tariff `json:"tariff"`

	SelfConsumptionRevenueEUR float64 `json:"selfConsumptionRevenueEUR"`
	NetMeteringRevenueEUR     float64 `json:"netMeteringRevenueEUR"`
	FeedInRevenueEUR          float64 `json:"feedInRevenueEUR"`

	SurchargeEUR           float64 `json:"surchargeEUR"`
	InverterReplacementEUR float64 `json:"inverterReplacementEUR"`
	// OneTimeCostsEUR is the negated sum of surcharge and inverter replacement.
	OneTimeCostsEUR float64 `json:"oneTimeCostsEUR"`

	NetCashFlowEUR float64 `json:"netCashFlowEUR"`
}

// RevenueEUR returns the sum of the three revenue channels.
func (r YearRecord) RevenueEUR() float64 {
	return r.SelfConsumptionRevenueEUR + r.NetMeteringRevenueEUR + r.FeedInRevenueEUR
}

// DegradationFactor returns the share of nameplate output left in the given
// 1-indexed year; the first year is undegraded.
func DegradationFactor(rate float64, year int) float64 {
	return math.Pow(1-rate, float64(year-1))
}

// InverterReplacementDue reports whether an inverter replacement is charged
// in the given year. Replacements are skipped when the horizon ends within
// the minimum remaining window since they would not be recouped.
func InverterReplacementDue(p Parameters, year int) bool {
	if p.InverterLifespanYears < 1 {
		return false
	}
	remaining := p.ReplacementHorizonYears - year
	return year%p.InverterLifespanYears == 0 && remaining > constants.InverterReplacementMinRemainingYears
}

// SimulateYear computes the record for a single 1-indexed year. It does not
// validate p; callers go through Simulator.Run or validate first.
func SimulateYear(p Parameters, year int) YearRecord {
	date := datetime.AddYears(p.StartDate, year-1)
	netMetering := date.Before(p.NetMeteringEndDate)

	r := YearRecord{
		YearIndex:         year,
		Date:              date,
		NetMeteringActive: netMetering,
		DegradationFactor: DegradationFactor(p.AnnualDegradationRate, year),
	}
	r.GeneratedKWh = p.PeakPowerWp() * p.YieldPerWattPeakPerYear * r.DegradationFactor
	r.Tariff = TariffFor(p, date, year)

	r.SelfConsumedKWh = r.GeneratedKWh * p.SelfConsumptionShare
	r.SelfConsumptionRevenueEUR = r.SelfConsumedKWh * r.Tariff.PriceInclTaxEURPerKWh

	r.ExportedKWh = r.GeneratedKWh * (1 - p.SelfConsumptionShare)
	if netMetering {
		// Export offsets household usage not already covered by self
		// consumption; anything beyond that is plain feed-in.
		allowance := mathutil.ClampNonNegative(p.AnnualHouseholdConsumptionKWh - r.SelfConsumedKWh)
		r.NetMeteredKWh = min(r.ExportedKWh, allowance)
		r.SurplusKWh = mathutil.ClampNonNegative(r.ExportedKWh - allowance)
		r.NetMeteringRevenueEUR = r.NetMeteredKWh * r.Tariff.PriceInclTaxEURPerKWh
		r.FeedInRevenueEUR = r.SurplusKWh * r.Tariff.FeedInRateEURPerKWh
		r.SurchargeEUR = p.AnnualFeedInSurchargeEUR
	} else {
		r.SurplusKWh = r.ExportedKWh
		r.FeedInRevenueEUR = r.ExportedKWh * r.Tariff.FeedInRateEURPerKWh
	}

	if InverterReplacementDue(p, year) {
		r.InverterReplacementEUR = p.InverterReplacementCostEUR
	}

	costs := r.SurchargeEUR + r.InverterReplacementEUR
	if costs != 0 {
		// Avoid a negative zero in cost-free years.
		r.OneTimeCostsEUR = -costs
	}
	r.NetCashFlowEUR = r.SelfConsumptionRevenueEUR + r.NetMeteringRevenueEUR + r.FeedInRevenueEUR - costs
	return r
}
