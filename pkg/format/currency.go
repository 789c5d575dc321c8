// Package format renders amounts, energy and rates for display.
package format

import (
	"fmt"
	"math"

	"github.com/iwvelando/solar-payback/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a euro string with thousands separators (e.g., "-€1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if mathutil.Round(amount) < 0 {
		return "-€" + formatted
	}
	return "€" + formatted
}

// WholeCurrency returns a euro string rounded to whole euros (e.g., "€12,345").
func WholeCurrency(amount float64) string {
	rounded := math.Round(amount)
	formatted := printer.Sprintf("%.0f", math.Abs(rounded))
	if rounded < 0 {
		return "-€" + formatted
	}
	return "€" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded == 0 {
		// Normalize -0.00.
		rounded = 0
	}
	return printer.Sprintf("%.2f", rounded)
}

// PricePerKWh renders a tariff with four decimals (e.g., "€0.2904/kWh").
func PricePerKWh(price float64) string {
	return printer.Sprintf("€%.4f/kWh", price)
}

// Energy renders an energy quantity in whole kWh (e.g., "3,400 kWh").
func Energy(kwh float64) string {
	return printer.Sprintf("%.0f kWh", kwh)
}

// Percentage renders a fraction as a percentage with the given decimals
// (e.g., 0.0138 with 2 decimals is "1.38%").
func Percentage(fraction float64, decimals int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df%%%%", decimals), mathutil.ToPercentage(fraction))
}
