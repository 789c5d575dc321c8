// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning scenarios into
// simulation parameters.
package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/iwvelando/solar-payback/pkg/constants"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for solar-payback.
type Configuration struct {
	Common    SolarParameters `yaml:"common"`
	Scenarios []Scenario      `yaml:"scenarios,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// SolarParameters holds one complete parameter set as written in the config
// file. Rates and shares are fractions, so 21% VAT is 0.21.
type SolarParameters struct {
	StartDate          string `yaml:"startDate"`
	NetMeteringEndDate string `yaml:"netMeteringEndDate"`

	AnnualHouseholdConsumptionKWh float64 `yaml:"annualHouseholdConsumptionKWh"`
	ReplacementHorizonYears       int     `yaml:"replacementHorizonYears"`

	PurchaseCostEUR            float64 `yaml:"purchaseCostEUR"`
	InverterReplacementCostEUR float64 `yaml:"inverterReplacementCostEUR"`
	InverterLifespanYears      int     `yaml:"inverterLifespanYears"`

	WattPeakPerPanel        float64 `yaml:"wattPeakPerPanel"`
	PanelCount              int     `yaml:"panelCount"`
	YieldPerWattPeakPerYear float64 `yaml:"yieldPerWattPeakPerYear"`
	AnnualDegradationRate   float64 `yaml:"annualDegradationRate"`
	SelfConsumptionShare    float64 `yaml:"selfConsumptionShare"`

	SupplyPriceEURPerKWh    float64 `yaml:"supplyPriceEURPerKWh"`
	SupplyPriceAnnualGrowth float64 `yaml:"supplyPriceAnnualGrowth"`
	SupplyPriceFrom2035     float64 `yaml:"supplyPriceFrom2035"`
	EnergyTaxEURPerKWh      float64 `yaml:"energyTaxEURPerKWh"`
	EnergyTaxAnnualTrend    float64 `yaml:"energyTaxAnnualTrend"`
	EnergyTaxFrom2035       float64 `yaml:"energyTaxFrom2035"`

	VATRate                  float64 `yaml:"vatRate"`
	FeedInSharePercent       float64 `yaml:"feedInSharePercent"`
	AnnualFeedInSurchargeEUR float64 `yaml:"annualFeedInSurchargeEUR"`
}

// Scenario is a named variation on the common parameters.
type Scenario struct {
	Name      string             `yaml:"name"`
	Active    bool               `yaml:"active"`
	Overrides ParameterOverrides `yaml:"overrides,omitempty"`
}

// defaults apply to every common parameter the config file leaves out.
var defaults = map[string]interface{}{
	"startDate":                     "2025-01-01",
	"netMeteringEndDate":            "2027-01-01",
	"annualHouseholdConsumptionKWh": 3600.0,
	"replacementHorizonYears":       25,
	"purchaseCostEUR":               4500.0,
	"inverterReplacementCostEUR":    1200.0,
	"inverterLifespanYears":         12,
	"wattPeakPerPanel":              400.0,
	"panelCount":                    10,
	"yieldPerWattPeakPerYear":       0.85,
	"annualDegradationRate":         0.007,
	"selfConsumptionShare":          0.30,
	"supplyPriceEURPerKWh":          0.15,
	"supplyPriceAnnualGrowth":       0.0138,
	"supplyPriceFrom2035":           0.18,
	"energyTaxEURPerKWh":            0.09,
	"energyTaxAnnualTrend":          -0.0174,
	"energyTaxFrom2035":             0.09,
	"vatRate":                       0.21,
	"feedInSharePercent":            0.25,
	"annualFeedInSurchargeEUR":      274.0,
}

// newViper prepares a viper instance with defaults and environment overrides,
// e.g. SOLAR_COMMON_PANELCOUNT=14.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault("common."+key, value)
	}
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		dateStringHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&configuration, hooks); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// dateStringHook turns unquoted YAML dates, which the parser reads as
// time.Time, back into DateLayout strings.
func dateStringHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to.Kind() != reflect.String {
			return data, nil
		}
		if t, ok := data.(time.Time); ok {
			return t.Format(DateLayout), nil
		}
		return data, nil
	}
}

// ActiveScenarios returns the scenarios to simulate, in config order. A
// configuration without scenarios implies a single active default scenario.
func (conf *Configuration) ActiveScenarios() []Scenario {
	if len(conf.Scenarios) == 0 {
		return []Scenario{{Name: constants.DefaultScenarioName, Active: true}}
	}

	var active []Scenario
	for _, scenario := range conf.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}
