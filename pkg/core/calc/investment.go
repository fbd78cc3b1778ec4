package calc

import (
	"math"
	"strings"
)

// =============================================================================
// INVESTMENT CALCULATORS
// ROI and compound interest. Pure functions: validated inputs in, structured
// result or typed failure out.
// =============================================================================

// ROI calculates the return on an investment.
//
// FORMULA: roi = (final - initial) / initial
func ROI(initial, final float64) (*ROIResult, error) {
	if initial <= 0 {
		return nil, validationErrorf("initial", "La inversión inicial debe ser mayor que cero.")
	}

	roi := (final - initial) / initial
	return &ROIResult{
		ROI:               roi,
		ROIPercent:        roi * 100,
		InitialInvestment: initial,
		FinalValue:        final,
		ProfitLoss:        final - initial,
	}, nil
}

// compoundFrequencies maps a compounding frequency name to the number of
// capitalizations per year. Unknown names fall back to annual.
var compoundFrequencies = map[string]int{
	"annual":     1,
	"semiannual": 2,
	"quarterly":  4,
	"monthly":    12,
	"daily":      365,
}

// CompoundInterest calculates the final amount of a principal compounded at
// an annual percentage rate over a number of years.
//
// FORMULA: final = principal * (1 + r/freq)^(freq * periods)
func CompoundInterest(principal, rate, periods float64, frequency string) (*CompoundResult, error) {
	if principal <= 0 {
		return nil, validationErrorf("principal", "El capital inicial debe ser mayor que cero.")
	}
	if rate <= 0 {
		return nil, validationErrorf("rate", "La tasa de interés debe ser mayor que cero.")
	}

	if frequency == "" {
		frequency = "annual"
	}
	freq, ok := compoundFrequencies[strings.ToLower(frequency)]
	if !ok {
		freq = 1
	}

	r := (rate / 100) / float64(freq)
	n := float64(freq) * periods
	finalAmount := principal * math.Pow(1+r, n)

	return &CompoundResult{
		Principal:         principal,
		Rate:              rate,
		Periods:           periods,
		Frequency:         frequency,
		CompoundFrequency: freq,
		FinalAmount:       finalAmount,
		InterestEarned:    finalAmount - principal,
	}, nil
}
