package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finfolio/internal/analytics"
)

// chartJSON builds a v8 chart response for one symbol.
func chartJSON(price, previousClose float64) yahooChartResponse {
	var resp yahooChartResponse
	var result yahooChartResult
	result.Meta.RegularMarketPrice = price
	result.Meta.PreviousClose = previousClose
	resp.Chart.Result = []yahooChartResult{result}
	return resp
}

// chartHistoryJSON builds a v8 chart response carrying daily closes.
func chartHistoryJSON(timestamps []int64, closes []*float64) yahooChartResponse {
	var resp yahooChartResponse
	var result yahooChartResult
	result.Meta.RegularMarketPrice = 1 // irrelevant for history
	result.Timestamp = timestamps
	result.Indicators.Quote = []struct {
		Close []*float64 `json:"close"`
	}{{Close: closes}}
	resp.Chart.Result = []yahooChartResult{result}
	return resp
}

// newChartServer serves chart responses keyed by ticker from the URL path.
// Unknown tickers get an empty result set.
func newChartServer(responses map[string]yahooChartResponse) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		resp, ok := responses[ticker]
		if !ok {
			resp = yahooChartResponse{}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestYahooProvider_Supports(t *testing.T) {
	p := NewYahooProvider(http.DefaultClient)

	for _, cat := range []analytics.Category{analytics.CategoryStocks, analytics.CategoryGold, analytics.CategorySilver} {
		if !p.Supports(cat) {
			t.Errorf("expected Supports(%q) = true", cat)
		}
	}
	for _, cat := range []analytics.Category{analytics.CategoryCrypto, analytics.CategoryCash, analytics.CategoryLiabilities} {
		if p.Supports(cat) {
			t.Errorf("expected Supports(%q) = false", cat)
		}
	}
}

func TestYahooProvider_Quote(t *testing.T) {
	t.Run("success_with_change", func(t *testing.T) {
		server := newChartServer(map[string]yahooChartResponse{
			"AAPL": chartJSON(178.72, 175.00),
		})
		defer server.Close()

		p := &YahooProvider{httpClient: server.Client(), baseURL: server.URL}
		q, err := p.Quote(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if q.Price != 178.72 {
			t.Errorf("expected price 178.72, got %f", q.Price)
		}
		if q.Symbol != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", q.Symbol)
		}
		if q.Source != "yahoo" {
			t.Errorf("expected source yahoo, got %s", q.Source)
		}
		if q.Change < 3.71 || q.Change > 3.73 {
			t.Errorf("expected change ~3.72, got %f", q.Change)
		}
	})

	t.Run("unknown_symbol", func(t *testing.T) {
		server := newChartServer(nil)
		defer server.Close()

		p := &YahooProvider{httpClient: server.Client(), baseURL: server.URL}
		_, err := p.Quote(context.Background(), "NOPE")
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("http_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		p := &YahooProvider{httpClient: server.Client(), baseURL: server.URL}
		if _, err := p.Quote(context.Background(), "AAPL"); err == nil {
			t.Error("expected error on HTTP 429")
		}
	})

	t.Run("zero_price_is_unavailable", func(t *testing.T) {
		server := newChartServer(map[string]yahooChartResponse{
			"HALT": chartJSON(0, 10),
		})
		defer server.Close()

		p := &YahooProvider{httpClient: server.Client(), baseURL: server.URL}
		_, err := p.Quote(context.Background(), "HALT")
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable for zero price, got %v", err)
		}
	})
}

func TestYahooProvider_Historical(t *testing.T) {
	day := int64(86400)
	base := int64(1735689600) // 2025-01-01 UTC
	p1, p3 := 100.5, 102.25

	server := newChartServer(map[string]yahooChartResponse{
		"SPY": chartHistoryJSON(
			[]int64{base, base + day, base + 2*day},
			[]*float64{&p1, nil, &p3},
		),
	})
	defer server.Close()

	p := &YahooProvider{httpClient: server.Client(), baseURL: server.URL}
	history, err := p.Historical(context.Background(), "SPY", "1mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("expected 2 points (null close skipped), got %d", len(history))
	}
	if history[0].Date != "2025-01-01" || history[0].Price != 100.5 {
		t.Errorf("unexpected first point: %+v", history[0])
	}
	if history[1].Date != "2025-01-03" || history[1].Price != 102.25 {
		t.Errorf("unexpected second point: %+v", history[1])
	}
}
