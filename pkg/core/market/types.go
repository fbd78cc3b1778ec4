// Package market queries live stock data from Yahoo Finance: company
// profiles, price history and financial statements.
package market

import "context"

// StockInfo is the company snapshot the info action returns.
type StockInfo struct {
	Ticker          string  `json:"ticker"`
	Name            string  `json:"nombre"`
	Sector          string  `json:"sector"`
	Industry        string  `json:"industria"`
	Description     string  `json:"descripcion"`
	CurrentPrice    float64 `json:"precio_actual"`
	ChangePercent   float64 `json:"cambio_porcentual"`
	Open            float64 `json:"precio_apertura"`
	PreviousClose   float64 `json:"precio_cierre_anterior"`
	DayLow          float64 `json:"dia_bajo"`
	DayHigh         float64 `json:"dia_alto"`
	FiftyTwoWeekLow float64 `json:"semana52_bajo"`
	FiftyTwoWeekHi  float64 `json:"semana52_alto"`
	Volume          int64   `json:"volumen"`
	MarketCap       float64 `json:"capitalizacion_mercado"`
	Beta            float64 `json:"beta"`
	PERatio         float64 `json:"pe_ratio"`
	EPS             float64 `json:"eps"`
	DividendYield   float64 `json:"dividendo_yield"`
	QueriedAt       string  `json:"fecha_consulta"`
}

// PricePoint is one bar of price history.
type PricePoint struct {
	Date   string  `json:"fecha"`
	Open   float64 `json:"apertura"`
	High   float64 `json:"alto"`
	Low    float64 `json:"bajo"`
	Close  float64 `json:"cierre"`
	Volume int64   `json:"volumen"`
}

// LineItem is one concept of a financial statement.
type LineItem struct {
	Concept string   `json:"concepto"`
	Value   *float64 `json:"valor"`
}

// StatementPeriod groups a statement's line items for one reporting date.
type StatementPeriod struct {
	Date  string     `json:"fecha"`
	Items []LineItem `json:"partidas"`
}

// Statement is a company financial statement across reporting periods,
// oldest period first.
type Statement struct {
	Ticker  string            `json:"ticker"`
	Type    string            `json:"statement_type"`
	Name    string            `json:"statement_name"`
	Periods []StatementPeriod `json:"periodos"`
}

// Source abstracts the data backend so the query tool can be exercised
// without network access.
type Source interface {
	StockInfo(ctx context.Context, ticker string) (*StockInfo, error)
	PriceHistory(ctx context.Context, ticker, period, interval string) ([]PricePoint, error)
	Financials(ctx context.Context, ticker, statementType string) (*Statement, error)
}
