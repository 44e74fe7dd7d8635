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

// newGeckoServer serves simple/price responses for the given coins.
func newGeckoServer(t *testing.T, prices map[string]coingeckoEntry) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		payload := make(map[string]coingeckoEntry)
		for _, id := range ids {
			if entry, ok := prices[id]; ok {
				payload[id] = entry
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func TestCoinGeckoProvider_Supports(t *testing.T) {
	p := NewCoinGeckoProvider(http.DefaultClient)

	if !p.Supports(analytics.CategoryCrypto) {
		t.Error("expected crypto to be supported")
	}
	if p.Supports(analytics.CategoryStocks) || p.Supports(analytics.CategoryGold) {
		t.Error("only crypto should be supported")
	}
}

func TestCoinGeckoProvider_Quote(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := newGeckoServer(t, map[string]coingeckoEntry{
			"bitcoin": {USD: 97123.45, USDChange: -2.1},
		})
		defer server.Close()

		p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
		q, err := p.Quote(context.Background(), "Bitcoin") // case-insensitive
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if q.Price != 97123.45 {
			t.Errorf("expected price 97123.45, got %f", q.Price)
		}
		if q.ChangePercent != -2.1 {
			t.Errorf("expected change -2.1, got %f", q.ChangePercent)
		}
		if q.Source != "coingecko" {
			t.Errorf("expected source coingecko, got %s", q.Source)
		}
	})

	t.Run("unknown_coin", func(t *testing.T) {
		server := newGeckoServer(t, nil)
		defer server.Close()

		p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
		_, err := p.Quote(context.Background(), "dogelon-mars-inu")
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestCoinGeckoProvider_Quotes(t *testing.T) {
	server := newGeckoServer(t, map[string]coingeckoEntry{
		"bitcoin":  {USD: 97000},
		"ethereum": {USD: 3400},
	})
	defer server.Close()

	p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
	quotes, err := p.Quotes(context.Background(), []string{"bitcoin", "ethereum", "missing-coin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes["bitcoin"].Price != 97000 {
		t.Errorf("expected bitcoin at 97000, got %f", quotes["bitcoin"].Price)
	}
	if _, ok := quotes["missing-coin"]; ok {
		t.Error("missing coin should be absent, not zero-valued")
	}
}
