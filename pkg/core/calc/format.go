package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// RESPONSE FORMATTER
// Deterministic, locale-fixed read-only projection of a structured result
// into a multi-line Spanish narrative. Never mutates the result.
// =============================================================================

// FormatResult renders a calculator result as a human-readable narrative.
func FormatResult(t Type, result interface{}) string {
	switch r := result.(type) {
	case *ROIResult:
		return formatROI(r)
	case *CompoundResult:
		return formatCompound(r)
	case *LoanResult:
		return formatLoan(r)
	case *RatioResult:
		return formatRatio(r)
	case *NPVResult:
		return formatNPV(r)
	case *IRRResult:
		return formatIRR(r)
	}
	return fmt.Sprintf("Error: no hay formato definido para el tipo de cálculo '%s'.", t)
}

func formatROI(r *ROIResult) string {
	verb := "se ganaron"
	if r.ROI <= 0 {
		verb = "se perdieron"
	}
	lines := []string{
		"Análisis de Retorno sobre Inversión (ROI):",
		fmt.Sprintf("Inversión inicial: $%.2f", r.InitialInvestment),
		fmt.Sprintf("Valor final: $%.2f", r.FinalValue),
		fmt.Sprintf("Ganancia/Pérdida: $%.2f", r.ProfitLoss),
		fmt.Sprintf("ROI: %.2f%%", r.ROIPercent),
		"",
		fmt.Sprintf("Interpretación: Por cada $1 invertido, %s $%.2f.", verb, abs(r.ROI)),
	}
	return strings.Join(lines, "\n")
}

func formatCompound(r *CompoundResult) string {
	lines := []string{
		"Cálculo de Interés Compuesto:",
		fmt.Sprintf("Capital inicial: $%.2f", r.Principal),
		fmt.Sprintf("Tasa de interés: %.2f%% (%s)", r.Rate, r.Frequency),
		fmt.Sprintf("Período: %s años", formatPeriods(r.Periods)),
		fmt.Sprintf("Monto final: $%.2f", r.FinalAmount),
		fmt.Sprintf("Interés ganado: $%.2f", r.InterestEarned),
		"",
		fmt.Sprintf("Nota: El interés se capitaliza %s (%d veces por año).", r.Frequency, r.CompoundFrequency),
	}
	return strings.Join(lines, "\n")
}

func formatLoan(r *LoanResult) string {
	lines := []string{
		"Cálculo de Préstamo:",
		fmt.Sprintf("Monto del préstamo: $%.2f", r.Principal),
		fmt.Sprintf("Tasa de interés anual: %.2f%%", r.Rate),
		fmt.Sprintf("Plazo: %s meses", formatPeriods(r.Periods)),
		fmt.Sprintf("Pago mensual: $%.2f", r.MonthlyPayment),
		fmt.Sprintf("Total a pagar: $%.2f", r.TotalPayments),
		fmt.Sprintf("Total de intereses: $%.2f", r.TotalInterest),
		"",
		"Calendario de amortización (muestra):",
	}

	for _, p := range r.Schedule {
		lines = append(lines, fmt.Sprintf(
			"Período %d: Pago $%.2f (Principal: $%.2f, Interés: $%.2f), Balance restante: $%.2f",
			p.Period, p.Payment, p.Principal, p.Interest, p.RemainingBalance))
		if p.Period == scheduleWindow && r.Periods > 2*scheduleWindow {
			lines = append(lines, "...")
		}
	}
	return strings.Join(lines, "\n")
}

func formatRatio(r *RatioResult) string {
	lines := []string{
		fmt.Sprintf("Cálculo de Ratio Financiero: %s", r.Name),
		fmt.Sprintf("Descripción: %s", r.Description),
		"",
		"Valores utilizados:",
	}
	for _, v := range r.Values {
		lines = append(lines, fmt.Sprintf("- %s: $%.2f", v.Label, v.Value))
	}

	lines = append(lines, "")
	if r.Percentage != nil {
		lines = append(lines, fmt.Sprintf("Resultado: %.2f%%", *r.Percentage))
	} else {
		lines = append(lines, fmt.Sprintf("Resultado: %.2f", r.RatioValue))
	}

	lines = append(lines, "", fmt.Sprintf("Interpretación: %s", r.Explanation))
	return strings.Join(lines, "\n")
}

func formatNPV(r *NPVResult) string {
	flows := make([]string, 0, len(r.CashFlows))
	for _, cf := range r.CashFlows {
		flows = append(flows, fmt.Sprintf("$%.2f", cf))
	}

	lines := []string{
		"Cálculo del Valor Actual Neto (VAN):",
		fmt.Sprintf("Tasa de descuento: %.2f%%", r.Rate),
		fmt.Sprintf("Flujos de caja: %s", strings.Join(flows, ", ")),
		fmt.Sprintf("VAN: $%.2f", r.NPV),
		"",
		"Detalle por período:",
	}
	for _, d := range r.Detail {
		lines = append(lines, fmt.Sprintf(
			"Período %d: Flujo $%.2f, Valor presente: $%.2f", d.Period, d.CashFlow, d.PresentValue))
	}
	lines = append(lines, "", fmt.Sprintf("Interpretación: %s", r.Interpretation))
	return strings.Join(lines, "\n")
}

func formatIRR(r *IRRResult) string {
	flows := make([]string, 0, len(r.CashFlows))
	for _, cf := range r.CashFlows {
		flows = append(flows, fmt.Sprintf("$%.2f", cf))
	}

	lines := []string{
		"Cálculo de la Tasa Interna de Retorno (TIR):",
		fmt.Sprintf("Flujos de caja: %s", strings.Join(flows, ", ")),
		fmt.Sprintf("TIR: %.2f%%", r.IRRPercent),
		"",
		fmt.Sprintf("Interpretación: %s", r.Interpretation),
	}
	return strings.Join(lines, "\n")
}

// FormatMagnitude renders a large monetary value scaled to billions or
// millions at the 1e9/1e6 thresholds, the way statement-style results from
// the market-data tool present them.
func FormatMagnitude(value float64) string {
	switch {
	case abs(value) >= 1e9:
		return fmt.Sprintf("$%.2f mil millones", value/1e9)
	case abs(value) >= 1e6:
		return fmt.Sprintf("$%.2f millones", value/1e6)
	default:
		return fmt.Sprintf("$%s", formatThousands(value))
	}
}

// formatThousands renders a value with a thousands separator and two
// decimals, matching Python's "{:,.2f}".
func formatThousands(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// formatPeriods renders a period count with an explicit decimal part, so
// whole values read "10.0 años" rather than "10 años".
func formatPeriods(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
