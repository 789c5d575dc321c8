package simulation

import (
	"time"

	"github.com/iwvelando/solar-payback/pkg/constants"
	"github.com/iwvelando/solar-payback/pkg/mathutil"
)

// Tariff holds the per-kWh prices that apply in one simulated year.
type Tariff struct {
	SupplyPriceEURPerKWh  float64 `json:"supplyPriceEURPerKWh"`
	EnergyTaxEURPerKWh    float64 `json:"energyTaxEURPerKWh"`
	PriceInclTaxEURPerKWh float64 `json:"priceInclTaxEURPerKWh"`
	FeedInRateEURPerKWh   float64 `json:"feedInRateEURPerKWh"`
	// Fixed is true once the calendar year reaches the tariff cliff and the
	// terminal prices apply.
	Fixed bool `json:"fixed"`
}

// TariffFor returns the tariff for the given 1-indexed year whose calendar
// date is date. Before the cliff year supply price and energy tax compound
// from their base values; from the cliff year on both are replaced by their
// fixed values without further escalation.
func TariffFor(p Parameters, date time.Time, year int) Tariff {
	var t Tariff
	if date.Year() < constants.TariffCliffYear {
		t.SupplyPriceEURPerKWh = mathutil.Compound(p.SupplyPriceEURPerKWh, p.SupplyPriceAnnualGrowth, year-1)
		t.EnergyTaxEURPerKWh = mathutil.Compound(p.EnergyTaxEURPerKWh, p.EnergyTaxAnnualTrend, year-1)
	} else {
		t.SupplyPriceEURPerKWh = p.SupplyPriceFrom2035
		t.EnergyTaxEURPerKWh = p.EnergyTaxFrom2035
		t.Fixed = true
	}

	// Self-consumed and net-metered energy avoid the full retail price;
	// plain feed-in is paid a share of the bare supply price.
	t.PriceInclTaxEURPerKWh = (t.SupplyPriceEURPerKWh + t.EnergyTaxEURPerKWh) * (1 + p.VATRate)
	t.FeedInRateEURPerKWh = t.SupplyPriceEURPerKWh * p.FeedInSharePercent
	return t
}
