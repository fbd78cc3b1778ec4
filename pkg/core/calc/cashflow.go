package calc

import (
	"fmt"
	"math"
)

// =============================================================================
// CASH FLOW CALCULATORS
// NPV and IRR over an ordered series of signed amounts indexed by period
// 0..n. Period 0 is conventionally the initial outlay (negative).
// =============================================================================

// presentValue discounts a single cash flow at period i.
func presentValue(cashFlow, rate float64, period int) float64 {
	return cashFlow / math.Pow(1+rate, float64(period))
}

// NPV calculates the net present value of a cash-flow series at a discount
// rate given in percent.
//
// FORMULA: npv = Σ CF_i / (1+r)^i, i from 0
func NPV(rate float64, cashFlows []float64) (*NPVResult, error) {
	if len(cashFlows) == 0 {
		return nil, validationErrorf("cash_flows", "Se requiere al menos un flujo de caja.")
	}

	rateDecimal := rate / 100
	npv := 0.0
	detail := make([]DiscountedFlow, 0, len(cashFlows))
	for i, cf := range cashFlows {
		pv := presentValue(cf, rateDecimal, i)
		npv += pv
		detail = append(detail, DiscountedFlow{Period: i, CashFlow: cf, PresentValue: pv})
	}

	verdict := "beneficios"
	viability := "El proyecto es financieramente viable."
	if npv <= 0 {
		verdict = "pérdidas"
		viability = "El proyecto no es financieramente viable."
	}

	return &NPVResult{
		NPV:       npv,
		Rate:      rate,
		CashFlows: cashFlows,
		Detail:    detail,
		Interpretation: fmt.Sprintf(
			"Un VAN de %.2f significa que el proyecto generará %s por un valor presente de $%.2f. %s",
			npv, verdict, math.Abs(npv), viability),
	}, nil
}

// IRR calculates the internal rate of return of a cash-flow series: the
// discount rate at which the series' NPV is zero. A series without both a
// positive and a negative flow has no guaranteed root and is rejected before
// the solver runs.
func IRR(cashFlows []float64) (*IRRResult, error) {
	if len(cashFlows) == 0 {
		return nil, validationErrorf("cash_flows", "Se requiere al menos un flujo de caja.")
	}

	hasPositive, hasNegative := false, false
	for _, cf := range cashFlows {
		if cf > 0 {
			hasPositive = true
		}
		if cf < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return nil, validationErrorf("cash_flows",
			"Para calcular la TIR, se necesitan flujos de caja tanto positivos como negativos.")
	}

	irr, err := solveIRR(cashFlows)
	if err != nil {
		return nil, &ComputationError{Msg: fmt.Sprintf("Error al calcular la TIR: %v", err)}
	}

	irrPercent := irr * 100
	return &IRRResult{
		IRR:        irr,
		IRRPercent: irrPercent,
		CashFlows:  cashFlows,
		Interpretation: fmt.Sprintf(
			"Una TIR del %.2f%% significa que el proyecto genera un rendimiento del %.2f%%. "+
				"Para determinar si el proyecto es viable, compare esta TIR con la tasa mínima de rendimiento requerida.",
			irrPercent, irrPercent),
	}, nil
}
