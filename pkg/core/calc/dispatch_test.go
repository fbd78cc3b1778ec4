package calc

import (
	"math"
	"strings"
	"testing"
)

func TestExecuteParserEquivalence(t *testing.T) {
	// Positional text and structured JSON must dispatch to the identical
	// calculator result.
	text := ExecuteOutcome("roi 1000 1500")
	structured := ExecuteOutcome(`{"type": "roi", "initial": 1000, "final": 1500}`)

	if !text.Success || !structured.Success {
		t.Fatalf("both forms must succeed: text=%+v structured=%+v", text, structured)
	}

	a, ok := text.Result.(*ROIResult)
	if !ok {
		t.Fatalf("unexpected result type %T", text.Result)
	}
	b := structured.Result.(*ROIResult)
	if *a != *b {
		t.Errorf("results differ: %+v vs %+v", a, b)
	}
	if text.Text != structured.Text {
		t.Error("narratives differ between input forms")
	}
}

func TestExecuteROINarrative(t *testing.T) {
	out := Execute("roi 1000 1500")
	for _, want := range []string{
		"Análisis de Retorno sobre Inversión (ROI):",
		"Inversión inicial: $1000.00",
		"ROI: 50.00%",
		"se ganaron $0.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("narrative missing %q:\n%s", want, out)
		}
	}
}

func TestExecutePeriodsKeepDecimalPart(t *testing.T) {
	out := Execute("compuesto 1000 5 10")
	if !strings.Contains(out, "Período: 10.0 años") {
		t.Errorf("whole periods must render with a decimal part:\n%s", out)
	}
	out = Execute(`{"type": "compuesto", "principal": 1000, "rate": 5, "periods": 10.5}`)
	if !strings.Contains(out, "Período: 10.5 años") {
		t.Errorf("fractional periods must render as given:\n%s", out)
	}
	out = Execute("prestamo 10000 5 36")
	if !strings.Contains(out, "Plazo: 36.0 meses") {
		t.Errorf("loan term must render with a decimal part:\n%s", out)
	}
}

func TestExecuteLoanNarrativeSampling(t *testing.T) {
	out := Execute("prestamo 10000 5 36")
	if !strings.Contains(out, "Pago mensual:") {
		t.Fatalf("expected loan narrative, got:\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Error("long schedules must show the ... separator after period 5")
	}
	if !strings.Contains(out, "Período 36:") {
		t.Error("expected the final period in the sample")
	}
	if strings.Contains(out, "Período 18:") {
		t.Error("middle periods must not be rendered")
	}
}

func TestExecuteShortLoanHasNoEllipsis(t *testing.T) {
	out := Execute("prestamo 1000 12 6")
	if strings.Contains(out, "...") {
		t.Errorf("schedules of <= 10 periods are rendered in full:\n%s", out)
	}
}

func TestExecuteMissingType(t *testing.T) {
	out := Execute(`{"initial": 1000}`)
	if !strings.Contains(out, "Se requiere especificar el tipo de cálculo") {
		t.Errorf("expected missing-type error, got: %s", out)
	}
}

func TestExecuteMissingFields(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"type": "roi", "initial": 1000}`, "'initial' (inversión inicial) y 'final'"},
		{`{"type": "prestamo", "principal": 1000}`, "'principal', 'rate' (tasa) y 'periods'"},
		{`{"type": "compuesto", "rate": 5}`, "'principal', 'rate' (tasa) y 'periods'"},
		{`{"type": "ratio", "ratio_name": "current"}`, "'ratio_name' (nombre del ratio) y 'values'"},
		{`{"type": "van", "cash_flows": [1]}`, "'rate' (tasa de descuento) y 'cash_flows'"},
		{`{"type": "tir"}`, "'cash_flows' (flujos de caja)"},
	}
	for _, c := range cases {
		out := Execute(c.raw)
		if !strings.HasPrefix(out, "Error:") || !strings.Contains(out, c.want) {
			t.Errorf("Execute(%s) = %q, want field-specific error containing %q", c.raw, out, c.want)
		}
	}
}

func TestExecuteUnknownType(t *testing.T) {
	out := Execute("fibonacci 1 2 3")
	if !strings.Contains(out, "Tipo de cálculo 'fibonacci' no reconocido") {
		t.Errorf("expected unknown-type error, got: %s", out)
	}
}

func TestExecuteCompareIsNotACalculation(t *testing.T) {
	// The positional grammar parses compare queries, but the engine has no
	// calculator for them; they belong to the market-data tool.
	out := Execute("comparar pe AAPL MSFT")
	if !strings.Contains(out, "no reconocido") {
		t.Errorf("expected rejection of compare queries, got: %s", out)
	}
}

func TestExecuteCalculationFailure(t *testing.T) {
	out := Execute("roi -1000 1500")
	if !strings.HasPrefix(out, "Error en el cálculo:") {
		t.Errorf("expected calculation error prefix, got: %s", out)
	}
	if !strings.Contains(out, "La inversión inicial debe ser mayor que cero") {
		t.Errorf("expected the exact failing-field message, got: %s", out)
	}
}

func TestExecuteIRREndToEnd(t *testing.T) {
	out := ExecuteOutcome("tir -100 110")
	if !out.Success {
		t.Fatalf("expected success, got: %s", out.Error)
	}
	res := out.Result.(*IRRResult)
	if math.Abs(res.IRRPercent-10) > 1e-4 {
		t.Errorf("expected IRR ~10%%, got %f", res.IRRPercent)
	}
	if !strings.Contains(out.Text, "TIR: 10.00%") {
		t.Errorf("narrative should render TIR: 10.00%%:\n%s", out.Text)
	}
}

func TestExecuteNPVEndToEnd(t *testing.T) {
	out := Execute("van 0 -100 60 80")
	if !strings.Contains(out, "VAN: $40.00") {
		t.Errorf("NPV at rate 0 is the plain sum:\n%s", out)
	}
	if !strings.Contains(out, "Período 0: Flujo $-100.00") {
		t.Errorf("expected per-period detail:\n%s", out)
	}
}

func TestExecuteRatioEndToEnd(t *testing.T) {
	out := Execute("ratio current 200 100")
	for _, want := range []string{
		"Cálculo de Ratio Financiero: current",
		"- Activo Corriente: $200.00",
		"Resultado: 2.00",
		"buena liquidez",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ratio narrative missing %q:\n%s", want, out)
		}
	}
}

func TestExecuteNeverPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Execute must never panic, got: %v", r)
		}
	}()
	for _, raw := range []string{
		"", "   ", "{", "[1,2,3]", "ratio", "van 5", "roi 0 0",
		`{"type": "ratio", "ratio_name": "current", "values": "x"}`,
	} {
		_ = Execute(raw)
	}
}

func TestFormatMagnitudeScaling(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{2.5e9, "$2.50 mil millones"},
		{-1.2e9, "$-1.20 mil millones"},
		{3.4e6, "$3.40 millones"},
		{999999, "$999,999.00"},
		{1234.5, "$1,234.50"},
	}
	for _, c := range cases {
		if got := FormatMagnitude(c.value); got != c.want {
			t.Errorf("FormatMagnitude(%f) = %q, want %q", c.value, got, c.want)
		}
	}
}
