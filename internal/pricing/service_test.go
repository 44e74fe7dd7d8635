package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"finfolio/internal/analytics"
)

// newTestService wires a service against httptest-backed providers. The
// yahoo server serves the given chart responses; the gecko server serves
// the given coin prices.
func newTestService(t *testing.T, charts map[string]yahooChartResponse, coins map[string]coingeckoEntry) (*Service, func()) {
	t.Helper()
	yahooSrv := newChartServer(charts)
	geckoSrv := newGeckoServer(t, coins)

	svc := NewService(
		&YahooProvider{httpClient: yahooSrv.Client(), baseURL: yahooSrv.URL},
		&CoinGeckoProvider{httpClient: geckoSrv.Client(), baseURL: geckoSrv.URL},
		NewTTLCache(time.Minute),
	)
	return svc, func() {
		yahooSrv.Close()
		geckoSrv.Close()
	}
}

func TestService_GetPrice_Dispatch(t *testing.T) {
	svc, cleanup := newTestService(t,
		map[string]yahooChartResponse{
			"AAPL": chartJSON(178.72, 175.00),
			"GC=F": chartJSON(2640.50, 2630.00),
			"SI=F": chartJSON(31.20, 30.90),
		},
		map[string]coingeckoEntry{
			"bitcoin": {USD: 97000},
		},
	)
	defer cleanup()
	ctx := context.Background()

	t.Run("stocks_uppercased_to_yahoo", func(t *testing.T) {
		q, err := svc.GetPrice(ctx, analytics.CategoryStocks, "aapl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 178.72 {
			t.Errorf("expected 178.72, got %f", q.Price)
		}
		if q.Source != "yahoo" {
			t.Errorf("expected source yahoo, got %s", q.Source)
		}
	})

	t.Run("gold_maps_to_futures", func(t *testing.T) {
		q, err := svc.GetPrice(ctx, analytics.CategoryGold, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 2640.50 {
			t.Errorf("expected 2640.50, got %f", q.Price)
		}
	})

	t.Run("silver_maps_to_futures", func(t *testing.T) {
		q, err := svc.GetPrice(ctx, analytics.CategorySilver, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 31.20 {
			t.Errorf("expected 31.20, got %f", q.Price)
		}
	})

	t.Run("crypto_lowercased_to_coingecko", func(t *testing.T) {
		q, err := svc.GetPrice(ctx, analytics.CategoryCrypto, "BITCOIN")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 97000 {
			t.Errorf("expected 97000, got %f", q.Price)
		}
		if q.Source != "coingecko" {
			t.Errorf("expected source coingecko, got %s", q.Source)
		}
	})

	t.Run("unmarketable_categories", func(t *testing.T) {
		for _, cat := range []analytics.Category{
			analytics.CategoryRealEstate,
			analytics.CategoryFixedIncome,
			analytics.CategoryCash,
			analytics.CategoryLiabilities,
		} {
			if _, err := svc.GetPrice(ctx, cat, "X"); !errors.Is(err, ErrUnavailable) {
				t.Errorf("category %q: expected ErrUnavailable, got %v", cat, err)
			}
		}
	})
}

func TestService_GetPrice_CacheFirst(t *testing.T) {
	svc, cleanup := newTestService(t,
		map[string]yahooChartResponse{"AAPL": chartJSON(178.72, 175.00)},
		nil,
	)
	defer cleanup()
	ctx := context.Background()

	first, err := svc.GetPrice(ctx, analytics.CategoryStocks, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Source != "yahoo" {
		t.Errorf("first fetch should come from the provider, got %s", first.Source)
	}

	second, err := svc.GetPrice(ctx, analytics.CategoryStocks, "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Source != "cache" {
		t.Errorf("second fetch should come from the cache, got %s", second.Source)
	}
	if second.Price != first.Price {
		t.Errorf("cached price %f differs from fetched %f", second.Price, first.Price)
	}
}

func TestService_GetCommodityPrice(t *testing.T) {
	svc, cleanup := newTestService(t,
		map[string]yahooChartResponse{"CL=F": chartJSON(78.35, 77.90)},
		nil,
	)
	defer cleanup()
	ctx := context.Background()

	t.Run("known_commodity", func(t *testing.T) {
		q, err := svc.GetCommodityPrice(ctx, "Oil")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Price != 78.35 {
			t.Errorf("expected 78.35, got %f", q.Price)
		}
	})

	t.Run("unknown_commodity", func(t *testing.T) {
		if _, err := svc.GetCommodityPrice(ctx, "uranium"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}

func TestService_GetConvenienceWrappers(t *testing.T) {
	svc, cleanup := newTestService(t,
		map[string]yahooChartResponse{
			"MSFT": chartJSON(430.10, 428.00),
			"GC=F": chartJSON(2640.50, 2630.00),
			"SI=F": chartJSON(31.20, 30.90),
		},
		map[string]coingeckoEntry{"ethereum": {USD: 3400}},
	)
	defer cleanup()
	ctx := context.Background()

	if q, err := svc.GetStockPrice(ctx, "msft"); err != nil || q.Price != 430.10 {
		t.Errorf("GetStockPrice: got %v, %v", q, err)
	}
	if q, err := svc.GetCryptoPrice(ctx, "Ethereum"); err != nil || q.Price != 3400 {
		t.Errorf("GetCryptoPrice: got %v, %v", q, err)
	}
	if q, err := svc.GetGoldPrice(ctx); err != nil || q.Price != 2640.50 {
		t.Errorf("GetGoldPrice: got %v, %v", q, err)
	}
	if q, err := svc.GetSilverPrice(ctx); err != nil || q.Price != 31.20 {
		t.Errorf("GetSilverPrice: got %v, %v", q, err)
	}
}
