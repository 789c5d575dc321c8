// Package payoff finds the break-even point of a cumulative cash-flow series.
package payoff

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotRecovered is returned by Result.Value when the investment is not
// recovered within the simulated horizon.
var ErrNotRecovered = errors.New("investment not recovered within the simulated horizon")

// Result is either a fractional break-even year or "not recovered". The zero
// value is "not recovered"; there is no numeric stand-in for that outcome.
type Result struct {
	year      float64
	recovered bool
	horizon   int
}

// Recovered returns a result for a break-even at the given fractional year.
func Recovered(year float64, horizon int) Result {
	return Result{year: year, recovered: true, horizon: horizon}
}

// NotRecovered returns the outcome for a series that never turns non-negative.
func NotRecovered(horizon int) Result {
	return Result{horizon: horizon}
}

// Year returns the fractional break-even year and true, or 0 and false when
// the investment is not recovered.
func (r Result) Year() (float64, bool) {
	if !r.recovered {
		return 0, false
	}
	return r.year, true
}

// Value returns the break-even year or ErrNotRecovered.
func (r Result) Value() (float64, error) {
	if !r.recovered {
		return 0, ErrNotRecovered
	}
	return r.year, nil
}

// IsRecovered reports whether the cumulative result turned non-negative.
func (r Result) IsRecovered() bool {
	return r.recovered
}

// Horizon returns the number of years that were searched.
func (r Result) Horizon() int {
	return r.horizon
}

func (r Result) String() string {
	if !r.recovered {
		return fmt.Sprintf("not recovered within %d years", r.horizon)
	}
	return fmt.Sprintf("%.1f years", r.year)
}

// Estimate scans cumulative from index 1 for the first non-negative entry and
// interpolates linearly between it and its predecessor. cumulative[0] is the
// initial investment. A series shorter than two entries cannot cross.
func Estimate(cumulative []float64) Result {
	horizon := len(cumulative) - 1
	if horizon < 1 {
		return NotRecovered(0)
	}

	i, ok := FirstCrossing(cumulative)
	if !ok {
		return NotRecovered(horizon)
	}

	previous := math.Abs(cumulative[i-1])
	current := math.Abs(cumulative[i])

	fraction := 0.0
	if total := previous + current; total > 0 {
		fraction = previous / total
	}
	return Recovered(float64(i-1)+fraction, horizon)
}

// FirstCrossing returns the first index from 1 on whose cumulative value is
// non-negative. Later dips below zero, such as an inverter replacement, do not
// move it.
func FirstCrossing(cumulative []float64) (int, bool) {
	for i := 1; i < len(cumulative); i++ {
		if cumulative[i] >= 0 {
			return i, true
		}
	}
	return 0, false
}
