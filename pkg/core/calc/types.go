package calc

// =============================================================================
// RESULT TYPES
// One structured result per calculator. Results are immutable once returned
// and remain inspectable by callers that bypass text rendering.
// =============================================================================

// ROIResult holds a return-on-investment calculation.
type ROIResult struct {
	ROI               float64 `json:"roi"`
	ROIPercent        float64 `json:"roi_percent"`
	InitialInvestment float64 `json:"initial_investment"`
	FinalValue        float64 `json:"final_value"`
	ProfitLoss        float64 `json:"profit_loss"`
}

// CompoundResult holds a compound interest calculation.
type CompoundResult struct {
	Principal         float64 `json:"principal"`
	Rate              float64 `json:"rate"`
	Periods           float64 `json:"periods"`
	Frequency         string  `json:"frequency"`
	CompoundFrequency int     `json:"compound_frequency"`
	FinalAmount       float64 `json:"final_amount"`
	InterestEarned    float64 `json:"interest_earned"`
}

// AmortizationPeriod is one row of a loan amortization schedule. The
// remaining balance is floored at zero so floating-point accumulation never
// shows a negative epsilon in the final row.
type AmortizationPeriod struct {
	Period           int     `json:"periodo"`
	Payment          float64 `json:"pago"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interes"`
	RemainingBalance float64 `json:"balance_restante"`
}

// LoanResult holds a level-payment loan calculation. Schedule keeps only the
// first five and last five periods; TotalPayments and TotalInterest are
// accumulated over the full loop regardless of the sampling window.
type LoanResult struct {
	Principal      float64              `json:"principal"`
	Rate           float64              `json:"rate"`
	Periods        float64              `json:"periods"`
	MonthlyPayment float64              `json:"monthly_payment"`
	TotalPayments  float64              `json:"total_payments"`
	TotalInterest  float64              `json:"total_interest"`
	Schedule       []AmortizationPeriod `json:"amortization_sample"`
}

// RatioInput echoes one labeled input value back to the caller.
type RatioInput struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RatioResult holds a named financial ratio calculation. Percentage is set
// only for ratios presented as percentages (debt, roe, roa, profit_margin).
type RatioResult struct {
	Name        string       `json:"ratio_name"`
	Description string       `json:"description"`
	Values      []RatioInput `json:"values"`
	RatioValue  float64      `json:"ratio_value"`
	Percentage  *float64     `json:"ratio_percentage,omitempty"`
	Explanation string       `json:"explanation"`
}

// DiscountedFlow is one period of an NPV breakdown.
type DiscountedFlow struct {
	Period       int     `json:"periodo"`
	CashFlow     float64 `json:"flujo_caja"`
	PresentValue float64 `json:"valor_presente"`
}

// NPVResult holds a net present value calculation over a cash-flow series
// indexed from period 0.
type NPVResult struct {
	NPV            float64          `json:"npv"`
	Rate           float64          `json:"rate"`
	CashFlows      []float64        `json:"cash_flows"`
	Detail         []DiscountedFlow `json:"detailed_results"`
	Interpretation string           `json:"interpretation"`
}

// IRRResult holds an internal rate of return calculation.
type IRRResult struct {
	IRR            float64   `json:"irr"`
	IRRPercent     float64   `json:"irr_percent"`
	CashFlows      []float64 `json:"cash_flows"`
	Interpretation string    `json:"interpretation"`
}

// Outcome is the tagged success/failure envelope the dispatcher returns to
// callers that want structured results instead of prose. On failure Result is
// nil and Error carries a single human-readable message; no partial results
// are ever returned.
type Outcome struct {
	Success bool        `json:"success"`
	Type    Type        `json:"type,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Text    string      `json:"text,omitempty"`
	Error   string      `json:"error,omitempty"`
}
