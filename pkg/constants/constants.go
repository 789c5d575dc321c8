// Package constants provides shared constants for the solar-payback application.
package constants

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = "2006-01-02"

// Tariff and asset lifecycle constants
const (
	// TariffCliffYear is the first calendar year in which supply price and
	// energy tax stop compounding and switch to their fixed terminal values.
	TariffCliffYear = 2035

	// InverterReplacementMinRemainingYears is the number of horizon years that
	// must remain after a scheduled inverter replacement for it to be charged.
	InverterReplacementMinRemainingYears = 10

	// MinHorizonYears is the shortest simulation horizon accepted.
	MinHorizonYears = 1

	// MaxHorizonYears is the longest simulation horizon accepted.
	MaxHorizonYears = 40

	// RecommendedMinHorizonYears is the shortest panel replacement interval
	// considered realistic; shorter horizons only produce a warning.
	RecommendedMinHorizonYears = 10
)

// Rounding constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON report format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides, e.g.
	// SOLAR_COMMON_PANELCOUNT.
	EnvPrefix = "SOLAR"

	// DefaultScenarioName names the implicit scenario used when the
	// configuration lists none.
	DefaultScenarioName = "default"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
