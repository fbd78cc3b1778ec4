package calc

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func TestROIBasic(t *testing.T) {
	res, err := ROI(1000, 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(res.ROI-0.5) > tol {
		t.Errorf("expected ROI 0.5, got %f", res.ROI)
	}
	if math.Abs(res.ROIPercent-50) > tol {
		t.Errorf("expected 50%%, got %f", res.ROIPercent)
	}
	if math.Abs(res.ProfitLoss-500) > tol {
		t.Errorf("expected profit 500, got %f", res.ProfitLoss)
	}
}

func TestROIExactFormula(t *testing.T) {
	cases := []struct{ initial, final float64 }{
		{1000, 1500},
		{250, 200},
		{1, 1},
		{3.5, 10.5},
	}
	for _, c := range cases {
		res, err := ROI(c.initial, c.final)
		if err != nil {
			t.Fatalf("ROI(%f, %f): %v", c.initial, c.final, err)
		}
		want := (c.final - c.initial) / c.initial
		if math.Abs(res.ROI-want) > tol {
			t.Errorf("ROI(%f, %f) = %f, want %f", c.initial, c.final, res.ROI, want)
		}
	}
}

func TestROIRejectsNonPositiveInitial(t *testing.T) {
	for _, initial := range []float64{0, -100} {
		_, err := ROI(initial, 500)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("ROI(%f, 500): expected ValidationError, got %v", initial, err)
		}
	}
}

func TestCompoundAnnualOnePeriod(t *testing.T) {
	// One annual period reduces to simple compounding.
	res, err := CompoundInterest(1000, 5, 1, "annual")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 1000 * (1 + 5.0/100)
	if math.Abs(res.FinalAmount-want) > tol {
		t.Errorf("expected final %f, got %f", want, res.FinalAmount)
	}
	if math.Abs(res.InterestEarned-50) > tol {
		t.Errorf("expected interest 50, got %f", res.InterestEarned)
	}
}

func TestCompoundFrequencies(t *testing.T) {
	cases := []struct {
		frequency string
		perYear   int
	}{
		{"annual", 1},
		{"semiannual", 2},
		{"quarterly", 4},
		{"monthly", 12},
		{"daily", 365},
		{"Monthly", 12},
		{"unknown", 1},
		{"", 1},
	}
	for _, c := range cases {
		res, err := CompoundInterest(1000, 6, 2, c.frequency)
		if err != nil {
			t.Fatalf("CompoundInterest(%q): %v", c.frequency, err)
		}
		if res.CompoundFrequency != c.perYear {
			t.Errorf("frequency %q: expected %d per year, got %d", c.frequency, c.perYear, res.CompoundFrequency)
		}
		want := 1000 * math.Pow(1+0.06/float64(c.perYear), float64(c.perYear)*2)
		if math.Abs(res.FinalAmount-want) > tol {
			t.Errorf("frequency %q: expected %f, got %f", c.frequency, want, res.FinalAmount)
		}
	}
}

func TestCompoundRejectsBadInputs(t *testing.T) {
	if _, err := CompoundInterest(0, 5, 1, "annual"); err == nil {
		t.Error("expected error for zero principal")
	}
	if _, err := CompoundInterest(1000, 0, 1, "annual"); err == nil {
		t.Error("expected error for zero rate")
	}
	if _, err := CompoundInterest(1000, -5, 1, "annual"); err == nil {
		t.Error("expected error for negative rate")
	}
}

func TestLoanPrincipalComponentsSumToPrincipal(t *testing.T) {
	// The schedule only samples ten rows, but the totals run over the full
	// loop: payment*n - totalInterest must recover the principal.
	res, err := LoanPayment(10000, 5, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	principalPaid := res.TotalPayments - res.TotalInterest
	if math.Abs(principalPaid-10000) > 0.01 {
		t.Errorf("principal components sum to %f, want 10000", principalPaid)
	}

	if len(res.Schedule) != 10 {
		t.Errorf("expected 10 sampled periods, got %d", len(res.Schedule))
	}
	if res.Schedule[0].Period != 1 || res.Schedule[9].Period != 36 {
		t.Errorf("expected sample periods 1..5 and 32..36, got %d..%d",
			res.Schedule[0].Period, res.Schedule[9].Period)
	}
}

func TestLoanShortTermKeepsFullSchedule(t *testing.T) {
	res, err := LoanPayment(1200, 12, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Schedule) != 6 {
		t.Errorf("expected all 6 periods retained, got %d", len(res.Schedule))
	}
}

func TestLoanFinalBalanceFlooredAtZero(t *testing.T) {
	res, err := LoanPayment(10000, 5, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := res.Schedule[len(res.Schedule)-1]
	if last.RemainingBalance < 0 {
		t.Errorf("final balance must be floored at zero, got %f", last.RemainingBalance)
	}
	if last.RemainingBalance > 0.01 {
		t.Errorf("final balance should be ~0, got %f", last.RemainingBalance)
	}
}

func TestLoanNearZeroRateApproachesStraightLine(t *testing.T) {
	// rate -> 0+ must approach principal/periods without a division error.
	res, err := LoanPayment(12000, 1e-9, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.MonthlyPayment-1000) > 0.01 {
		t.Errorf("expected payment ~1000, got %f", res.MonthlyPayment)
	}
}

func TestLoanRejectsBadInputs(t *testing.T) {
	cases := []struct{ principal, rate, periods float64 }{
		{0, 5, 12},
		{-1, 5, 12},
		{1000, 0, 12},
		{1000, 5, 0},
		{1000, 5, -12},
	}
	for _, c := range cases {
		if _, err := LoanPayment(c.principal, c.rate, c.periods); err == nil {
			t.Errorf("LoanPayment(%f, %f, %f): expected error", c.principal, c.rate, c.periods)
		}
	}
}

func TestNPVAtZeroRateIsPlainSum(t *testing.T) {
	flows := []float64{-1000, 300, 400, 500}
	res, err := NPV(0, flows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.NPV-200) > tol {
		t.Errorf("NPV at rate 0 should be the plain sum 200, got %f", res.NPV)
	}
	if len(res.Detail) != 4 {
		t.Errorf("expected 4 detail rows, got %d", len(res.Detail))
	}
}

func TestNPVDiscountsFromPeriodZero(t *testing.T) {
	// Period 0 is undiscounted by definition.
	res, err := NPV(10, []float64{-100, 110})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := -100 + 110/1.1
	if math.Abs(res.NPV-want) > tol {
		t.Errorf("expected %f, got %f", want, res.NPV)
	}
	if res.Detail[0].PresentValue != -100 {
		t.Errorf("period 0 must be undiscounted, got %f", res.Detail[0].PresentValue)
	}
}

func TestNPVRejectsEmptySeries(t *testing.T) {
	_, err := NPV(5, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestIRRClassicTwoFlow(t *testing.T) {
	res, err := IRR([]float64{-100, 110})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(res.IRR-0.10) > 1e-6 {
		t.Errorf("expected IRR ~0.10, got %f", res.IRR)
	}
}

func TestIRRZerosTheNPV(t *testing.T) {
	flows := []float64{-1000, 300, 420, 680}
	res, err := IRR(flows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := npvAt(flows, res.IRR); math.Abs(got) > 1e-4 {
		t.Errorf("NPV at IRR should be ~0, got %f", got)
	}
}

func TestIRRRejectsSignHomogeneousSeries(t *testing.T) {
	for _, flows := range [][]float64{
		{100, 200, 300},
		{-100, -200},
	} {
		_, err := IRR(flows)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("IRR(%v): expected ValidationError before the solver, got %v", flows, err)
		}
	}
}

func TestIRREmptySeries(t *testing.T) {
	if _, err := IRR(nil); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestSolverIsBounded(t *testing.T) {
	// A pathological alternating series must terminate in an error or a
	// root, never hang.
	flows := []float64{-1, 3, -3, 1}
	irr, err := solveIRR(flows)
	if err == nil {
		if got := npvAt(flows, irr); math.Abs(got) > 1e-4 {
			t.Errorf("solver returned %f which is not a root (NPV %f)", irr, got)
		}
	}
}
