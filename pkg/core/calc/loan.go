package calc

import "math"

// scheduleWindow is the number of periods retained at each end of the
// amortization schedule sample.
const scheduleWindow = 5

// LoanPayment calculates the level monthly payment of a loan and simulates
// its amortization period by period.
//
// FORMULA: pmt = P * i * (1+i)^n / ((1+i)^n - 1), with i the monthly rate.
// When i underflows to exactly zero the payment degenerates to P/n; the
// division by (1+i)^n - 1 must never be reached in that case.
//
// The returned schedule keeps only the first and last scheduleWindow periods,
// but total interest is accumulated across the full loop.
func LoanPayment(principal, rate, periods float64) (*LoanResult, error) {
	if principal <= 0 {
		return nil, validationErrorf("principal", "El monto del préstamo debe ser mayor que cero.")
	}
	if rate <= 0 {
		return nil, validationErrorf("rate", "La tasa de interés debe ser mayor que cero.")
	}
	if periods <= 0 {
		return nil, validationErrorf("periods", "El número de períodos debe ser mayor que cero.")
	}

	monthlyRate := (rate / 100) / 12

	var payment float64
	if monthlyRate == 0 {
		payment = principal / periods
	} else {
		growth := math.Pow(1+monthlyRate, periods)
		payment = principal * (monthlyRate * growth) / (growth - 1)
	}

	n := int(periods)
	balance := principal
	totalInterest := 0.0
	schedule := make([]AmortizationPeriod, 0, 2*scheduleWindow)

	for period := 1; period <= n; period++ {
		interest := balance * monthlyRate
		principalPart := payment - interest
		balance -= principalPart
		totalInterest += interest

		if period <= scheduleWindow || float64(period) > periods-scheduleWindow {
			schedule = append(schedule, AmortizationPeriod{
				Period:           period,
				Payment:          payment,
				Principal:        principalPart,
				Interest:         interest,
				RemainingBalance: math.Max(0, balance),
			})
		}
	}

	return &LoanResult{
		Principal:      principal,
		Rate:           rate,
		Periods:        periods,
		MonthlyPayment: payment,
		TotalPayments:  payment * periods,
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	}, nil
}
