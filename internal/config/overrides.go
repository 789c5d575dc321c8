package config

// ParameterOverrides replaces individual common parameters for one scenario.
// Nil fields keep the common value.
type ParameterOverrides struct {
	StartDate          *string `yaml:"startDate,omitempty"`
	NetMeteringEndDate *string `yaml:"netMeteringEndDate,omitempty"`

	AnnualHouseholdConsumptionKWh *float64 `yaml:"annualHouseholdConsumptionKWh,omitempty"`
	ReplacementHorizonYears       *int     `yaml:"replacementHorizonYears,omitempty"`

	PurchaseCostEUR            *float64 `yaml:"purchaseCostEUR,omitempty"`
	InverterReplacementCostEUR *float64 `yaml:"inverterReplacementCostEUR,omitempty"`
	InverterLifespanYears      *int     `yaml:"inverterLifespanYears,omitempty"`

	WattPeakPerPanel        *float64 `yaml:"wattPeakPerPanel,omitempty"`
	PanelCount              *int     `yaml:"panelCount,omitempty"`
	YieldPerWattPeakPerYear *float64 `yaml:"yieldPerWattPeakPerYear,omitempty"`
	AnnualDegradationRate   *float64 `yaml:"annualDegradationRate,omitempty"`
	SelfConsumptionShare    *float64 `yaml:"selfConsumptionShare,omitempty"`

	SupplyPriceEURPerKWh    *float64 `yaml:"supplyPriceEURPerKWh,omitempty"`
	SupplyPriceAnnualGrowth *float64 `yaml:"supplyPriceAnnualGrowth,omitempty"`
	SupplyPriceFrom2035     *float64 `yaml:"supplyPriceFrom2035,omitempty"`
	EnergyTaxEURPerKWh      *float64 `yaml:"energyTaxEURPerKWh,omitempty"`
	EnergyTaxAnnualTrend    *float64 `yaml:"energyTaxAnnualTrend,omitempty"`
	EnergyTaxFrom2035       *float64 `yaml:"energyTaxFrom2035,omitempty"`

	VATRate                  *float64 `yaml:"vatRate,omitempty"`
	FeedInSharePercent       *float64 `yaml:"feedInSharePercent,omitempty"`
	AnnualFeedInSurchargeEUR *float64 `yaml:"annualFeedInSurchargeEUR,omitempty"`
}

// WithOverrides returns a copy of s with every non-nil override applied.
func (s SolarParameters) WithOverrides(o ParameterOverrides) SolarParameters {
	setString(&s.StartDate, o.StartDate)
	setString(&s.NetMeteringEndDate, o.NetMeteringEndDate)

	setFloat(&s.AnnualHouseholdConsumptionKWh, o.AnnualHouseholdConsumptionKWh)
	setInt(&s.ReplacementHorizonYears, o.ReplacementHorizonYears)

	setFloat(&s.PurchaseCostEUR, o.PurchaseCostEUR)
	setFloat(&s.InverterReplacementCostEUR, o.InverterReplacementCostEUR)
	setInt(&s.InverterLifespanYears, o.InverterLifespanYears)

	setFloat(&s.WattPeakPerPanel, o.WattPeakPerPanel)
	setInt(&s.PanelCount, o.PanelCount)
	setFloat(&s.YieldPerWattPeakPerYear, o.YieldPerWattPeakPerYear)
	setFloat(&s.AnnualDegradationRate, o.AnnualDegradationRate)
	setFloat(&s.SelfConsumptionShare, o.SelfConsumptionShare)

	setFloat(&s.SupplyPriceEURPerKWh, o.SupplyPriceEURPerKWh)
	setFloat(&s.SupplyPriceAnnualGrowth, o.SupplyPriceAnnualGrowth)
	setFloat(&s.SupplyPriceFrom2035, o.SupplyPriceFrom2035)
	setFloat(&s.EnergyTaxEURPerKWh, o.EnergyTaxEURPerKWh)
	setFloat(&s.EnergyTaxAnnualTrend, o.EnergyTaxAnnualTrend)
	setFloat(&s.EnergyTaxFrom2035, o.EnergyTaxFrom2035)

	setFloat(&s.VATRate, o.VATRate)
	setFloat(&s.FeedInSharePercent, o.FeedInSharePercent)
	setFloat(&s.AnnualFeedInSurchargeEUR, o.AnnualFeedInSurchargeEUR)
	return s
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
