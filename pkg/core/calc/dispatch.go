package calc

import (
	"fmt"
)

// =============================================================================
// DISPATCHER
// Single public entry point of the engine: Parser -> required-field check ->
// Calculator -> Formatter. Every failure, including a panic inside a
// calculator, is converted to a user-facing error string here; nothing
// propagates to the caller.
// =============================================================================

// Execute runs a financial calculation from a raw query and returns the
// narrative text, or an "Error: ..." string on any failure.
func Execute(raw string) string {
	outcome := ExecuteOutcome(raw)
	if !outcome.Success {
		return outcome.Error
	}
	return outcome.Text
}

// ExecuteOutcome runs a financial calculation and returns the full outcome,
// structured result included, for callers that want raw numbers instead of
// prose.
func ExecuteOutcome(raw string) (outcome *Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = &Outcome{Success: false, Error: fmt.Sprintf("Error en el cálculo: %v", r)}
		}
	}()

	req, err := ParseRequest(raw)
	if err != nil {
		return &Outcome{Success: false, Error: fmt.Sprintf("Error: %v", err)}
	}

	calcType, ok := ResolveType(req.RawType)
	if !ok || calcType == TypeCompare {
		return &Outcome{Success: false, Error: fmt.Sprintf("Error: Tipo de cálculo '%s' no reconocido.", req.RawType)}
	}

	if msg := missingFields(calcType, req); msg != "" {
		return &Outcome{Success: false, Type: calcType, Error: msg}
	}

	result, err := run(calcType, req)
	if err != nil {
		return &Outcome{Success: false, Type: calcType, Error: fmt.Sprintf("Error en el cálculo: %v", err)}
	}

	return &Outcome{
		Success: true,
		Type:    calcType,
		Result:  result,
		Text:    FormatResult(calcType, result),
	}
}

// missingFields returns the field-specific error message when a required
// parameter for the resolved type is absent. Presence only; type coercion
// errors belong to the calculator layer.
func missingFields(t Type, req *Request) string {
	switch t {
	case TypeROI:
		if !req.Has("initial") || !req.Has("final") {
			return "Error: Se requieren los valores 'initial' (inversión inicial) y 'final' (valor final)."
		}
	case TypeCompound, TypeLoan:
		if !req.Has("principal") || !req.Has("rate") || !req.Has("periods") {
			return "Error: Se requieren los valores 'principal', 'rate' (tasa) y 'periods' (períodos)."
		}
	case TypeRatio:
		if !req.Has("ratio_name") || !req.Has("values") {
			return "Error: Se requieren los valores 'ratio_name' (nombre del ratio) y 'values' (valores para el cálculo)."
		}
	case TypeNPV:
		if !req.Has("rate") || !req.Has("cash_flows") {
			return "Error: Se requieren los valores 'rate' (tasa de descuento) y 'cash_flows' (flujos de caja)."
		}
	case TypeIRR:
		if !req.Has("cash_flows") {
			return "Error: Se requiere el valor 'cash_flows' (flujos de caja)."
		}
	}
	return ""
}

// run invokes the calculator for the resolved type with coerced parameters.
func run(t Type, req *Request) (interface{}, error) {
	switch t {
	case TypeROI:
		initial, err := req.Float("initial")
		if err != nil {
			return nil, err
		}
		final, err := req.Float("final")
		if err != nil {
			return nil, err
		}
		return ROI(initial, final)

	case TypeCompound:
		principal, rate, periods, err := principalRatePeriods(req)
		if err != nil {
			return nil, err
		}
		frequency, _ := req.String("frequency")
		return CompoundInterest(principal, rate, periods, frequency)

	case TypeLoan:
		principal, rate, periods, err := principalRatePeriods(req)
		if err != nil {
			return nil, err
		}
		return LoanPayment(principal, rate, periods)

	case TypeRatio:
		name, _ := req.String("ratio_name")
		values, err := req.Floats("values")
		if err != nil {
			return nil, err
		}
		return FinancialRatio(name, values)

	case TypeNPV:
		rate, err := req.Float("rate")
		if err != nil {
			return nil, err
		}
		flows, err := req.Floats("cash_flows")
		if err != nil {
			return nil, err
		}
		return NPV(rate, flows)

	case TypeIRR:
		flows, err := req.Floats("cash_flows")
		if err != nil {
			return nil, err
		}
		return IRR(flows)
	}
	return nil, fmt.Errorf("tipo de cálculo '%s' no soportado", t)
}

func principalRatePeriods(req *Request) (float64, float64, float64, error) {
	principal, err := req.Float("principal")
	if err != nil {
		return 0, 0, 0, err
	}
	rate, err := req.Float("rate")
	if err != nil {
		return 0, 0, 0, err
	}
	periods, err := req.Float("periods")
	if err != nil {
		return 0, 0, 0, err
	}
	return principal, rate, periods, nil
}
