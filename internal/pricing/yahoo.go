package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"finfolio/internal/analytics"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResult is one result entry from the Yahoo Finance v8 chart API,
// reduced to the fields this package reads.
type yahooChartResult struct {
	Meta struct {
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		PreviousClose      float64 `json:"previousClose"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// yahooChartResponse is the top-level chart API envelope.
type yahooChartResponse struct {
	Chart struct {
		Result []yahooChartResult `json:"result"`
		Error  *json.RawMessage   `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches prices from the Yahoo Finance chart endpoint. It
// covers stocks and, via futures tickers, gold and silver.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance price provider.
func NewYahooProvider(httpClient *http.Client) *YahooProvider {
	return &YahooProvider{httpClient: httpClient, baseURL: yahooBaseURL}
}

// Name returns the provider's display name.
func (p *YahooProvider) Name() string { return "yahoo" }

// Supports returns true for the categories Yahoo can quote.
func (p *YahooProvider) Supports(category analytics.Category) bool {
	switch category {
	case analytics.CategoryStocks, analytics.CategoryGold, analytics.CategorySilver:
		return true
	default:
		return false
	}
}

// Quote fetches the current price for a Yahoo ticker.
func (p *YahooProvider) Quote(ctx context.Context, symbol string) (*Quote, error) {
	chart, err := p.fetchChart(ctx, symbol, "1d")
	if err != nil {
		return nil, err
	}

	if chart.Meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo: no market price for %s: %w", symbol, ErrUnavailable)
	}

	q := &Quote{
		Symbol:    symbol,
		Price:     chart.Meta.RegularMarketPrice,
		Timestamp: time.Now().UTC(),
		Source:    "yahoo",
	}

	previous := chart.Meta.PreviousClose
	if previous == 0 {
		previous = chart.Meta.ChartPreviousClose
	}
	if previous != 0 {
		q.Change = q.Price - previous
		q.ChangePercent = (q.Price - previous) / previous * 100
	}

	return q, nil
}

// Historical fetches daily closing prices for the given range (e.g. "1mo").
// Days without a close (market holidays, null padding) are skipped.
func (p *YahooProvider) Historical(ctx context.Context, symbol, rng string) ([]HistoricalPrice, error) {
	chart, err := p.fetchChart(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	if len(chart.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := chart.Indicators.Quote[0].Close

	history := make([]HistoricalPrice, 0, len(chart.Timestamp))
	for i, ts := range chart.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		history = append(history, HistoricalPrice{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Price: *closes[i],
		})
	}
	return history, nil
}

// fetchChart calls the chart endpoint and returns the first result.
func (p *YahooProvider) fetchChart(ctx context.Context, symbol, rng string) (*yahooChartResult, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&range=%s", p.baseURL, symbol, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("yahoo: building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo: http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: unexpected status %d for %s", resp.StatusCode, symbol)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("yahoo: decoding response: %w", err)
	}

	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart result for %s: %w", symbol, ErrUnavailable)
	}
	return &chartResp.Chart.Result[0], nil
}
