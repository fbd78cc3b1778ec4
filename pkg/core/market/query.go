package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// historyWindow is how many rows appear at each end of a long history.
const historyWindow = 5

var validPeriods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}
var validIntervals = []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h", "1d", "5d", "1wk", "1mo", "3mo"}

// Tool answers market queries in Spanish, accepting either a JSON object
// or positional text like "AAPL history 1mo 1d".
type Tool struct {
	source Source
}

// NewTool wraps a data source as a query tool.
func NewTool(source Source) *Tool {
	return &Tool{source: source}
}

type queryRequest struct {
	Ticker        string `json:"ticker"`
	Action        string `json:"action"`
	Period        string `json:"period"`
	Interval      string `json:"interval"`
	StatementType string `json:"statement_type"`
}

// parseQuery accepts strict JSON first and falls back to positional text:
// the first token is the ticker, the second an optional action, and further
// tokens are action parameters. A lone ticker defaults to the info action.
func parseQuery(raw string) (*queryRequest, error) {
	var req queryRequest
	if err := json.Unmarshal([]byte(raw), &req); err == nil {
		return &req, nil
	}

	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) == 0 {
		return nil, fmt.Errorf("formato de consulta inválido: proporciona al menos un símbolo de ticker")
	}

	req = queryRequest{Ticker: parts[0], Action: "info"}
	if len(parts) >= 2 {
		switch parts[1] {
		case "info", "price", "history", "financials":
			req.Action = parts[1]
		}
	}
	if req.Action == "history" || req.Action == "price" {
		if len(parts) >= 3 {
			req.Period = parts[2]
		}
		if len(parts) >= 4 {
			req.Interval = parts[3]
		}
	}
	if req.Action == "financials" && len(parts) >= 3 {
		req.StatementType = parts[2]
	}
	return &req, nil
}

// Execute runs a market query and renders the result as Spanish text.
func (t *Tool) Execute(ctx context.Context, raw string) string {
	req, err := parseQuery(raw)
	if err != nil {
		return "Error: " + err.Error() + "."
	}

	if req.Ticker == "" {
		return "Error: Se requiere un símbolo de ticker (ej: AAPL, MSFT)."
	}
	ticker := strings.ToUpper(req.Ticker)

	action := strings.ToLower(req.Action)
	if action == "" {
		action = "info"
	}

	switch action {
	case "info":
		info, err := t.source.StockInfo(ctx, ticker)
		if err != nil {
			return fmt.Sprintf("Error al consultar datos para %s: %v", ticker, err)
		}
		return formatStockInfo(info)

	case "price", "history":
		period := req.Period
		if period == "" {
			period = "1mo"
		}
		interval := req.Interval
		if interval == "" {
			interval = "1d"
		}
		if !contains(validPeriods, period) {
			return fmt.Sprintf("Error: Período inválido. Debe ser uno de: %s", strings.Join(validPeriods, ", "))
		}
		if !contains(validIntervals, interval) {
			return fmt.Sprintf("Error: Intervalo inválido. Debe ser uno de: %s", strings.Join(validIntervals, ", "))
		}

		points, err := t.source.PriceHistory(ctx, ticker, period, interval)
		if err != nil {
			return fmt.Sprintf("Error al consultar datos para %s: %v", ticker, err)
		}
		return formatPriceHistory(ticker, period, interval, points)

	case "financials":
		statementType := req.StatementType
		if statementType == "" {
			statementType = "income"
		}
		if _, ok := statementModules[statementType]; !ok {
			return "Error: Tipo de estado financiero inválido. Debe ser uno de: income, balance, cash"
		}

		st, err := t.source.Financials(ctx, ticker, statementType)
		if err != nil {
			return fmt.Sprintf("Error al consultar datos para %s: %v", ticker, err)
		}
		return formatStatement(st)

	default:
		return fmt.Sprintf("Error: Acción '%s' no reconocida. Las acciones disponibles son: info, price/history, financials.", action)
	}
}

func formatStockInfo(info *StockInfo) string {
	lines := []string{
		fmt.Sprintf("Información de %s - %s (%s)", info.Ticker, info.Name, info.QueriedAt),
		fmt.Sprintf("Sector: %s | Industria: %s", info.Sector, info.Industry),
		fmt.Sprintf("Precio actual: $%.2f (%.2f%%)", info.CurrentPrice, info.ChangePercent),
		fmt.Sprintf("Rango del día: $%.2f - %.2f", info.DayLow, info.DayHigh),
		fmt.Sprintf("Rango 52 semanas: $%.2f - %.2f", info.FiftyTwoWeekLow, info.FiftyTwoWeekHi),
		fmt.Sprintf("Capitalización de mercado: %s", FormatMoney(info.MarketCap)),
		fmt.Sprintf("P/E ratio: %.2f | EPS: $%.2f", info.PERatio, info.EPS),
		fmt.Sprintf("Dividendo yield: %.2f%%", info.DividendYield),
		"",
		"Descripción: " + info.Description,
	}
	return strings.Join(lines, "\n")
}

func formatPriceHistory(ticker, period, interval string, points []PricePoint) string {
	if len(points) == 0 {
		return fmt.Sprintf("No hay datos históricos disponibles para %s con período %s e intervalo %s.", ticker, period, interval)
	}

	lines := []string{
		fmt.Sprintf("Historial de precios para %s (Período: %s, Intervalo: %s)", ticker, period, interval),
		"",
		"Fecha | Apertura | Cierre | Alto | Bajo | Volumen",
	}

	appendPoint := func(p PricePoint) {
		lines = append(lines, fmt.Sprintf("%s | $%.2f | $%.2f | $%.2f | $%.2f | %s",
			p.Date, p.Open, p.Close, p.High, p.Low, formatVolume(p.Volume)))
	}

	if len(points) > historyWindow*2 {
		for _, p := range points[:historyWindow] {
			appendPoint(p)
		}
		lines = append(lines, "...")
		for _, p := range points[len(points)-historyWindow:] {
			appendPoint(p)
		}
	} else {
		for _, p := range points {
			appendPoint(p)
		}
	}

	if len(points) >= 2 {
		first := points[0].Close
		last := points[len(points)-1].Close
		change := last - first
		if first != 0 {
			changePct := change / first * 100
			lines = append(lines, "", fmt.Sprintf("Variación en el período: $%.2f (%.2f%%)", change, changePct))
		} else {
			lines = append(lines, "", fmt.Sprintf("Variación en el período: $%.2f", change))
		}
	}

	return strings.Join(lines, "\n")
}

// statementSampleSize limits how many concepts of the latest period print.
const statementSampleSize = 10

func formatStatement(st *Statement) string {
	if len(st.Periods) == 0 {
		return fmt.Sprintf("No hay datos financieros disponibles para %s.", st.Ticker)
	}

	lines := []string{fmt.Sprintf("%s para %s", st.Name, st.Ticker)}

	latest := st.Periods[len(st.Periods)-1]
	lines = append(lines, "", "Período: "+latest.Date)

	shown := latest.Items
	if len(shown) > statementSampleSize {
		shown = shown[:statementSampleSize]
	}
	for _, item := range shown {
		if item.Value != nil {
			lines = append(lines, fmt.Sprintf("%s: %s", item.Concept, FormatMoney(*item.Value)))
		} else {
			lines = append(lines, item.Concept+": No disponible")
		}
	}
	if len(latest.Items) > statementSampleSize {
		lines = append(lines, fmt.Sprintf("... (se muestran %d de los conceptos principales)", statementSampleSize))
	}

	dates := make([]string, len(st.Periods))
	for i, p := range st.Periods {
		dates[i] = p.Date
	}
	lines = append(lines, "", "Períodos disponibles: "+strings.Join(dates, ", "))

	return strings.Join(lines, "\n")
}

// FormatMoney renders large amounts at billion/million scale and smaller
// ones with thousands separators.
func FormatMoney(v float64) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("$%.2f mil millones", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2f millones", v/1e6)
	default:
		return "$" + groupThousands(v)
	}
}

func formatVolume(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func groupThousands(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}
	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)
	out := strings.Join(parts, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
