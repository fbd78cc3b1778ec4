package calc

import (
	"errors"
	"math"
)

// Bounds for the IRR root finder. Rates below -100% are meaningless for a
// discounting factor, so the search domain is (-1, +∞) truncated at a rate
// high enough to cover any realistic project return.
const (
	irrLowerBound    = -0.9999
	irrUpperBound    = 10000.0
	irrMaxIterations = 200
	irrTolerance     = 1e-9
)

var errIRRNoConvergence = errors.New("el método numérico no converge a una TIR en el rango de búsqueda")

// npvAt evaluates Σ CF_i/(1+x)^i at a decimal rate x.
func npvAt(cashFlows []float64, x float64) float64 {
	total := 0.0
	for i, cf := range cashFlows {
		total += cf / math.Pow(1+x, float64(i))
	}
	return total
}

// solveIRR finds the decimal rate at which the series' NPV crosses zero
// using bisection over a sign-change bracket. The iteration count is fixed so
// the solver always terminates; failure to bracket or to converge is an error,
// never a hang.
func solveIRR(cashFlows []float64) (float64, error) {
	lo, hi, err := bracketIRR(cashFlows)
	if err != nil {
		return 0, err
	}

	fLo := npvAt(cashFlows, lo)
	for i := 0; i < irrMaxIterations; i++ {
		mid := (lo + hi) / 2
		fMid := npvAt(cashFlows, mid)

		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	return 0, errIRRNoConvergence
}

// bracketIRR scans a fixed grid of candidate rates for a sign change of the
// NPV function.
func bracketIRR(cashFlows []float64) (float64, float64, error) {
	grid := []float64{
		irrLowerBound, -0.99, -0.9, -0.75, -0.5, -0.3, -0.2, -0.1, -0.05,
		0, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5, 10, 100, 1000, irrUpperBound,
	}

	prev := grid[0]
	fPrev := npvAt(cashFlows, prev)
	for _, x := range grid[1:] {
		f := npvAt(cashFlows, x)
		if fPrev == 0 {
			return prev, prev, nil
		}
		if (fPrev < 0) != (f < 0) {
			return prev, x, nil
		}
		prev, fPrev = x, f
	}
	return 0, 0, errIRRNoConvergence
}
