package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const descriptionLimit = 300

// YahooClient fetches market data from Yahoo Finance's public endpoints.
type YahooClient struct {
	BaseURL string
	HTTP    *http.Client
}

var _ Source = (*YahooClient)(nil)

// NewYahooClient builds a client against the public Yahoo Finance API.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		BaseURL: "https://query1.finance.yahoo.com",
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *YahooClient) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// Yahoo rejects requests without a browser-like agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read yahoo response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo returned status %d: %s", res.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode yahoo response: %w", err)
	}
	return nil
}

// yahooNumber is Yahoo's {raw, fmt} wrapper around numeric fields.
type yahooNumber struct {
	Raw float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			Price struct {
				ShortName                  string      `json:"shortName"`
				RegularMarketPrice         yahooNumber `json:"regularMarketPrice"`
				RegularMarketChangePercent yahooNumber `json:"regularMarketChangePercent"`
				RegularMarketOpen          yahooNumber `json:"regularMarketOpen"`
				RegularMarketPreviousClose yahooNumber `json:"regularMarketPreviousClose"`
				RegularMarketDayLow        yahooNumber `json:"regularMarketDayLow"`
				RegularMarketDayHigh       yahooNumber `json:"regularMarketDayHigh"`
				RegularMarketVolume        yahooNumber `json:"regularMarketVolume"`
				MarketCap                  yahooNumber `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				FiftyTwoWeekLow  yahooNumber `json:"fiftyTwoWeekLow"`
				FiftyTwoWeekHigh yahooNumber `json:"fiftyTwoWeekHigh"`
				Beta             yahooNumber `json:"beta"`
				TrailingPE       yahooNumber `json:"trailingPE"`
				DividendYield    yahooNumber `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps yahooNumber `json:"trailingEps"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// StockInfo returns general company and quote data.
func (c *YahooClient) StockInfo(ctx context.Context, ticker string) (*StockInfo, error) {
	params := url.Values{}
	params.Set("modules", "assetProfile,price,summaryDetail,defaultKeyStatistics")

	var resp quoteSummaryResponse
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), params, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s", ticker, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no hay datos disponibles para %s", ticker)
	}

	r := resp.QuoteSummary.Result[0]
	return &StockInfo{
		Ticker:          strings.ToUpper(ticker),
		Name:            r.Price.ShortName,
		Sector:          r.AssetProfile.Sector,
		Industry:        r.AssetProfile.Industry,
		Description:     truncate(r.AssetProfile.LongBusinessSummary, descriptionLimit) + "...",
		CurrentPrice:    r.Price.RegularMarketPrice.Raw,
		ChangePercent:   r.Price.RegularMarketChangePercent.Raw * 100,
		Open:            r.Price.RegularMarketOpen.Raw,
		PreviousClose:   r.Price.RegularMarketPreviousClose.Raw,
		DayLow:          r.Price.RegularMarketDayLow.Raw,
		DayHigh:         r.Price.RegularMarketDayHigh.Raw,
		FiftyTwoWeekLow: r.SummaryDetail.FiftyTwoWeekLow.Raw,
		FiftyTwoWeekHi:  r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		Volume:          int64(r.Price.RegularMarketVolume.Raw),
		MarketCap:       r.Price.MarketCap.Raw,
		Beta:            r.SummaryDetail.Beta.Raw,
		PERatio:         r.SummaryDetail.TrailingPE.Raw,
		EPS:             r.DefaultKeyStatistics.TrailingEps.Raw,
		DividendYield:   r.SummaryDetail.DividendYield.Raw * 100,
		QueriedAt:       time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// PriceHistory returns OHLCV bars for the given range and interval.
func (c *YahooClient) PriceHistory(ctx context.Context, ticker, period, interval string) ([]PricePoint, error) {
	params := url.Values{}
	params.Set("range", period)
	params.Set("interval", interval)

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), params, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no hay datos históricos disponibles para %s", ticker)
	}

	r := resp.Chart.Result[0]
	q := r.Indicators.Quote[0]

	points := make([]PricePoint, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) {
			break
		}
		points = append(points, PricePoint{
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05"),
			Open:   round2(q.Open[i]),
			High:   round2(q.High[i]),
			Low:    round2(q.Low[i]),
			Close:  round2(q.Close[i]),
			Volume: q.Volume[i],
		})
	}
	return points, nil
}

var statementModules = map[string]struct {
	module string
	field  string
	name   string
}{
	"income":  {"incomeStatementHistory", "incomeStatementHistory", "Estado de Resultados"},
	"balance": {"balanceSheetHistory", "balanceSheetStatements", "Balance General"},
	"cash":    {"cashflowStatementHistory", "cashflowStatements", "Flujo de Efectivo"},
}

// Financials returns one of the three annual statements.
func (c *YahooClient) Financials(ctx context.Context, ticker, statementType string) (*Statement, error) {
	mod, ok := statementModules[statementType]
	if !ok {
		return nil, fmt.Errorf("tipo de estado financiero inválido: %s", statementType)
	}

	params := url.Values{}
	params.Set("modules", mod.module)

	var resp struct {
		QuoteSummary struct {
			Result []map[string]json.RawMessage `json:"result"`
			Error  *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"quoteSummary"`
	}
	if err := c.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), params, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s", ticker, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no hay datos disponibles para el %s", mod.name)
	}

	var history struct {
		Statements []map[string]interface{} `json:"-"`
	}
	raw, ok := resp.QuoteSummary.Result[0][mod.module]
	if !ok {
		return nil, fmt.Errorf("no hay datos disponibles para el %s", mod.name)
	}
	var wrapper map[string][]map[string]interface{}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", mod.module, err)
	}
	history.Statements = wrapper[mod.field]
	if len(history.Statements) == 0 {
		return nil, fmt.Errorf("no hay datos disponibles para el %s", mod.name)
	}

	st := &Statement{
		Ticker: strings.ToUpper(ticker),
		Type:   statementType,
		Name:   mod.name,
	}
	for _, entry := range history.Statements {
		st.Periods = append(st.Periods, parseStatementPeriod(entry))
	}
	sort.Slice(st.Periods, func(i, j int) bool { return st.Periods[i].Date < st.Periods[j].Date })
	return st, nil
}

// parseStatementPeriod flattens one reporting entry: every {raw, fmt}
// numeric field becomes a line item, endDate becomes the period date.
func parseStatementPeriod(entry map[string]interface{}) StatementPeriod {
	period := StatementPeriod{}

	if end, ok := entry["endDate"].(map[string]interface{}); ok {
		if fmtVal, ok := end["fmt"].(string); ok {
			period.Date = fmtVal
		}
	}

	concepts := make([]string, 0, len(entry))
	for key := range entry {
		if key == "endDate" || key == "maxAge" {
			continue
		}
		concepts = append(concepts, key)
	}
	sort.Strings(concepts)

	for _, concept := range concepts {
		field, ok := entry[concept].(map[string]interface{})
		if !ok {
			continue
		}
		if rawVal, ok := field["raw"].(float64); ok {
			v := rawVal
			period.Items = append(period.Items, LineItem{Concept: concept, Value: &v})
		} else {
			period.Items = append(period.Items, LineItem{Concept: concept, Value: nil})
		}
	}
	return period
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
