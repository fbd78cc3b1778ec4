package market

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeSource serves canned data so the query tool can be tested offline.
type fakeSource struct {
	points []PricePoint
}

func (f *fakeSource) StockInfo(ctx context.Context, ticker string) (*StockInfo, error) {
	if ticker == "FAIL" {
		return nil, fmt.Errorf("ticker desconocido")
	}
	return &StockInfo{
		Ticker:        ticker,
		Name:          "Apple Inc.",
		Sector:        "Technology",
		Industry:      "Consumer Electronics",
		Description:   "Diseña y vende dispositivos...",
		CurrentPrice:  189.5,
		ChangePercent: 1.25,
		DayLow:        187.2,
		DayHigh:       190.1,
		MarketCap:     2.95e12,
		PERatio:       31.2,
		EPS:           6.07,
		DividendYield: 0.52,
		QueriedAt:     "2025-01-15 10:00:00",
	}, nil
}

func (f *fakeSource) PriceHistory(ctx context.Context, ticker, period, interval string) ([]PricePoint, error) {
	return f.points, nil
}

func (f *fakeSource) Financials(ctx context.Context, ticker, statementType string) (*Statement, error) {
	v1 := 383_250_000_000.0
	v2 := 97_000_000_000.0
	return &Statement{
		Ticker: ticker,
		Type:   statementType,
		Name:   statementModules[statementType].name,
		Periods: []StatementPeriod{
			{Date: "2022-09-24", Items: []LineItem{{Concept: "totalRevenue", Value: &v1}}},
			{Date: "2023-09-30", Items: []LineItem{
				{Concept: "totalRevenue", Value: &v1},
				{Concept: "netIncome", Value: &v2},
				{Concept: "ebit", Value: nil},
			}},
		},
	}, nil
}

func makePoints(n int) []PricePoint {
	points := make([]PricePoint, n)
	for i := range points {
		points[i] = PricePoint{
			Date:   fmt.Sprintf("2025-01-%02d 00:00:00", i+1),
			Open:   100 + float64(i),
			Close:  101 + float64(i),
			High:   102 + float64(i),
			Low:    99 + float64(i),
			Volume: 1_000_000,
		}
	}
	return points
}

func TestParseQueryJSON(t *testing.T) {
	req, err := parseQuery(`{"ticker": "AAPL", "action": "history", "period": "1y"}`)
	if err != nil {
		t.Fatal(err)
	}
	if req.Ticker != "AAPL" || req.Action != "history" || req.Period != "1y" {
		t.Errorf("unexpected parse: %+v", req)
	}
}

func TestParseQueryPositional(t *testing.T) {
	cases := []struct {
		raw    string
		action string
		ticker string
	}{
		{"AAPL", "info", "AAPL"},
		{"AAPL info", "info", "AAPL"},
		{"MSFT history 1y 1wk", "history", "MSFT"},
		{"GOOGL financials balance", "financials", "GOOGL"},
		{"AAPL banana", "info", "AAPL"}, // unknown token keeps the default action
	}
	for _, tc := range cases {
		req, err := parseQuery(tc.raw)
		if err != nil {
			t.Errorf("%q: %v", tc.raw, err)
			continue
		}
		if req.Action != tc.action || req.Ticker != tc.ticker {
			t.Errorf("%q: got action=%s ticker=%s", tc.raw, req.Action, req.Ticker)
		}
	}

	req, _ := parseQuery("MSFT history 1y 1wk")
	if req.Period != "1y" || req.Interval != "1wk" {
		t.Errorf("history params not captured: %+v", req)
	}
}

func TestExecuteInfo(t *testing.T) {
	tool := NewTool(&fakeSource{})
	out := tool.Execute(context.Background(), "AAPL info")

	for _, want := range []string{
		"Información de AAPL - Apple Inc.",
		"Sector: Technology | Industria: Consumer Electronics",
		"Precio actual: $189.50 (1.25%)",
		"Capitalización de mercado: $2950.00 mil millones",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestExecuteHistorySampling(t *testing.T) {
	tool := NewTool(&fakeSource{points: makePoints(30)})
	out := tool.Execute(context.Background(), "AAPL history 1mo 1d")

	if !strings.Contains(out, "...") {
		t.Error("long history should be elided")
	}
	if !strings.Contains(out, "2025-01-05") || !strings.Contains(out, "2025-01-26") {
		t.Errorf("head/tail rows missing:\n%s", out)
	}
	if strings.Contains(out, "2025-01-15") {
		t.Error("middle rows should be elided")
	}
	// First close 101, last close 130.
	if !strings.Contains(out, "Variación en el período: $29.00 (28.71%)") {
		t.Errorf("missing period variation:\n%s", out)
	}
}

func TestExecuteHistoryShortFull(t *testing.T) {
	tool := NewTool(&fakeSource{points: makePoints(8)})
	out := tool.Execute(context.Background(), "AAPL history")
	if strings.Contains(out, "...") {
		t.Error("short history should print in full")
	}
}

func TestExecuteHistoryZeroFirstClose(t *testing.T) {
	points := makePoints(3)
	points[0].Close = 0
	tool := NewTool(&fakeSource{points: points})
	out := tool.Execute(context.Background(), "AAPL history")
	if strings.Contains(out, "Inf") || strings.Contains(out, "NaN") {
		t.Errorf("zero first close should not produce Inf/NaN: %s", out)
	}
	if !strings.Contains(out, "Variación en el período: $103.00") {
		t.Errorf("absolute change should still print: %s", out)
	}
}

func TestExecuteHistoryEmpty(t *testing.T) {
	tool := NewTool(&fakeSource{})
	out := tool.Execute(context.Background(), "AAPL history 1mo 1d")
	if !strings.Contains(out, "No hay datos históricos disponibles para AAPL") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestExecuteValidation(t *testing.T) {
	tool := NewTool(&fakeSource{})
	ctx := context.Background()

	if out := tool.Execute(ctx, "AAPL history 7y"); !strings.Contains(out, "Período inválido") {
		t.Errorf("bad period accepted: %s", out)
	}
	if out := tool.Execute(ctx, "AAPL history 1mo 45m"); !strings.Contains(out, "Intervalo inválido") {
		t.Errorf("bad interval accepted: %s", out)
	}
	if out := tool.Execute(ctx, `{"ticker": "AAPL", "action": "financials", "statement_type": "equity"}`); !strings.Contains(out, "Tipo de estado financiero inválido") {
		t.Errorf("bad statement type accepted: %s", out)
	}
	if out := tool.Execute(ctx, `{"action": "info"}`); !strings.Contains(out, "Se requiere un símbolo de ticker") {
		t.Errorf("missing ticker accepted: %s", out)
	}
	if out := tool.Execute(ctx, `{"ticker": "AAPL", "action": "compare"}`); !strings.Contains(out, "Acción 'compare' no reconocida") {
		t.Errorf("unknown action accepted: %s", out)
	}
	if out := tool.Execute(ctx, "   "); !strings.Contains(out, "formato de consulta inválido") {
		t.Errorf("empty query accepted: %s", out)
	}
}

func TestExecuteFinancials(t *testing.T) {
	tool := NewTool(&fakeSource{})
	out := tool.Execute(context.Background(), "AAPL financials income")

	for _, want := range []string{
		"Estado de Resultados para AAPL",
		"Período: 2023-09-30",
		"totalRevenue: $383.25 mil millones",
		"netIncome: $97.00 mil millones",
		"ebit: No disponible",
		"Períodos disponibles: 2022-09-24, 2023-09-30",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestExecuteSourceError(t *testing.T) {
	tool := NewTool(&fakeSource{})
	out := tool.Execute(context.Background(), "FAIL info")
	if !strings.Contains(out, "Error al consultar datos para FAIL") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.5e9, "$2.50 mil millones"},
		{-1.2e9, "$-1.20 mil millones"},
		{3.4e6, "$3.40 millones"},
		{125000, "$125,000.00"},
		{950.5, "$950.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
