package calc

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCurrentRatioBands(t *testing.T) {
	// Good liquidity band.
	res, err := FinancialRatio("current", []float64{200, 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.RatioValue-2.0) > tol {
		t.Errorf("expected ratio 2.00, got %f", res.RatioValue)
	}
	if !strings.Contains(res.Explanation, "buena liquidez") {
		t.Errorf("expected good-liquidity band, got: %s", res.Explanation)
	}

	// Liquidity concern band.
	res, err = FinancialRatio("current", []float64{50, 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.RatioValue-0.5) > tol {
		t.Errorf("expected ratio 0.50, got %f", res.RatioValue)
	}
	if !strings.Contains(res.Explanation, "problemas para cubrir las obligaciones") {
		t.Errorf("expected concern band, got: %s", res.Explanation)
	}

	// Adequate band: 1 <= ratio < 1.5.
	res, err = FinancialRatio("current", []float64{120, 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Explanation, "capacidad adecuada") {
		t.Errorf("expected adequate band, got: %s", res.Explanation)
	}
}

func TestQuickRatio(t *testing.T) {
	res, err := FinancialRatio("quick", []float64{200, 50, 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.RatioValue-1.5) > tol {
		t.Errorf("expected (200-50)/100 = 1.5, got %f", res.RatioValue)
	}
	if res.Percentage != nil {
		t.Error("quick ratio is presented raw, not as a percentage")
	}
}

func TestPercentageRatios(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		ratio  float64
	}{
		{"debt", []float64{400, 1000}, 0.4},
		{"roe", []float64{150, 1000}, 0.15},
		{"roa", []float64{80, 1000}, 0.08},
		{"profit_margin", []float64{120, 1000}, 0.12},
	}
	for _, c := range cases {
		res, err := FinancialRatio(c.name, c.values)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if math.Abs(res.RatioValue-c.ratio) > tol {
			t.Errorf("%s: expected %f, got %f", c.name, c.ratio, res.RatioValue)
		}
		if res.Percentage == nil {
			t.Errorf("%s: expected percentage presentation", c.name)
			continue
		}
		if math.Abs(*res.Percentage-c.ratio*100) > tol {
			t.Errorf("%s: expected %f%%, got %f%%", c.name, c.ratio*100, *res.Percentage)
		}
	}
}

func TestMarketRatios(t *testing.T) {
	res, err := FinancialRatio("pe", []float64{150, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.RatioValue-15) > tol {
		t.Errorf("expected P/E 15, got %f", res.RatioValue)
	}
	if !strings.Contains(res.Explanation, "moderado") {
		t.Errorf("P/E 15 belongs to the moderate band: %s", res.Explanation)
	}

	res, err = FinancialRatio("pb", []float64{45, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.RatioValue-4.5) > tol {
		t.Errorf("expected P/B 4.5, got %f", res.RatioValue)
	}
	if !strings.Contains(res.Explanation, "alto") {
		t.Errorf("P/B 4.5 belongs to the high band: %s", res.Explanation)
	}
}

func TestUnknownRatioEnumeratesValidNames(t *testing.T) {
	_, err := FinancialRatio("bogus", []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for unknown ratio")
	}
	msg := err.Error()
	for _, name := range RatioNames() {
		if !strings.Contains(msg, name) {
			t.Errorf("error message should list %q: %s", name, msg)
		}
	}
}

func TestRatioInsufficientValues(t *testing.T) {
	_, err := FinancialRatio("quick", []float64{200, 50})
	if err == nil {
		t.Fatal("expected error for insufficient values")
	}
	if !strings.Contains(err.Error(), "requiere 3 valores") {
		t.Errorf("expected required-count message, got: %v", err)
	}
}

func TestRatioSignValidation(t *testing.T) {
	// A negative non-liability input is rejected with the offending label.
	_, err := FinancialRatio("current", []float64{-200, 100})
	if err == nil {
		t.Fatal("expected error for negative assets")
	}
	if !strings.Contains(err.Error(), "Activo Corriente") {
		t.Errorf("expected label in message, got: %v", err)
	}

	// Liability-labeled inputs are exempt: net positions can be negative.
	if _, err := FinancialRatio("debt", []float64{-400, 1000}); err != nil {
		t.Errorf("negative total liabilities must be accepted: %v", err)
	}
	if _, err := FinancialRatio("current", []float64{200, -100}); err != nil {
		t.Errorf("negative current liabilities must be accepted: %v", err)
	}
}

func TestRatioZeroDenominators(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
	}{
		{"current", []float64{200, 0}},
		{"quick", []float64{200, 50, 0}},
		{"debt", []float64{400, 0}},
		{"roe", []float64{150, 0}},
		{"roa", []float64{80, 0}},
		{"profit_margin", []float64{120, 0}},
		{"pe", []float64{150, 0}},
		{"pb", []float64{45, 0}},
	}
	for _, c := range cases {
		_, err := FinancialRatio(c.name, c.values)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s with zero denominator: expected ValidationError, got %v", c.name, err)
		}
	}
}

func TestCatalogInvariant(t *testing.T) {
	if len(ratioCatalog) != 8 {
		t.Fatalf("expected 8 catalog entries, got %d", len(ratioCatalog))
	}
	for name, def := range ratioCatalog {
		if def.RequiredValues != len(def.Labels) {
			t.Errorf("%s: required_value_count %d != len(labels) %d",
				name, def.RequiredValues, len(def.Labels))
		}
	}
	for _, name := range ratioOrder {
		if _, ok := ratioCatalog[name]; !ok {
			t.Errorf("ratioOrder lists %q which is not in the catalog", name)
		}
	}
}

func TestLookupRatioCaseInsensitive(t *testing.T) {
	if _, ok := LookupRatio("CURRENT"); !ok {
		t.Error("lookup should be case-insensitive")
	}
}
