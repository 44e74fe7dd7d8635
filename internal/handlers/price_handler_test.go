package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "finfolio/internal/errors"
	"finfolio/internal/pricing"
)

type mockPriceQuoter struct {
	stockFn     func(symbol string) (*pricing.Quote, error)
	cryptoFn    func(coinID string) (*pricing.Quote, error)
	goldFn      func() (*pricing.Quote, error)
	silverFn    func() (*pricing.Quote, error)
	commodityFn func(name string) (*pricing.Quote, error)
}

func (m *mockPriceQuoter) GetStockPrice(_ context.Context, symbol string) (*pricing.Quote, error) {
	return m.stockFn(symbol)
}

func (m *mockPriceQuoter) GetCryptoPrice(_ context.Context, coinID string) (*pricing.Quote, error) {
	return m.cryptoFn(coinID)
}

func (m *mockPriceQuoter) GetGoldPrice(_ context.Context) (*pricing.Quote, error) {
	return m.goldFn()
}

func (m *mockPriceQuoter) GetSilverPrice(_ context.Context) (*pricing.Quote, error) {
	return m.silverFn()
}

func (m *mockPriceQuoter) GetCommodityPrice(_ context.Context, name string) (*pricing.Quote, error) {
	return m.commodityFn(name)
}

func setupPriceHandlerRouter(prices PriceQuoter) *gin.Engine {
	r := gin.New()
	h := NewPriceHandler(prices)
	grp := r.Group("/prices", authInject(testUserID))
	grp.GET("/stocks/:symbol", h.Stock)
	grp.GET("/crypto/:id", h.Crypto)
	grp.GET("/gold", h.Gold)
	grp.GET("/silver", h.Silver)
	grp.GET("/commodities/:name", h.Commodity)
	return r
}

func TestPriceHandlerStock(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var gotSymbol string
		prices := &mockPriceQuoter{
			stockFn: func(symbol string) (*pricing.Quote, error) {
				gotSymbol = symbol
				return &pricing.Quote{Symbol: "AAPL", Price: 178.72, Source: "yahoo"}, nil
			},
		}
		r := setupPriceHandlerRouter(prices)
		rec := performRequest(r, http.MethodGet, "/prices/stocks/AAPL", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if gotSymbol != "AAPL" {
			t.Errorf("symbol = %q, want AAPL", gotSymbol)
		}
		body := decodeBody(t, rec)
		if body["price"] != 178.72 {
			t.Errorf("price = %v, want 178.72", body["price"])
		}
	})

	t.Run("provider_failure", func(t *testing.T) {
		prices := &mockPriceQuoter{
			stockFn: func(symbol string) (*pricing.Quote, error) {
				return nil, pricing.ErrUnavailable
			},
		}
		r := setupPriceHandlerRouter(prices)
		rec := performRequest(r, http.MethodGet, "/prices/stocks/NOSUCH", nil)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		assertErrorCode(t, rec, apperrors.ErrPriceUnavailable.Code)
	})
}

func TestPriceHandlerCrypto(t *testing.T) {
	prices := &mockPriceQuoter{
		cryptoFn: func(coinID string) (*pricing.Quote, error) {
			if coinID != "bitcoin" {
				return nil, pricing.ErrUnavailable
			}
			return &pricing.Quote{Symbol: "bitcoin", Price: 97123.45, Source: "coingecko"}, nil
		},
	}
	r := setupPriceHandlerRouter(prices)

	rec := performRequest(r, http.MethodGet, "/prices/crypto/bitcoin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/prices/crypto/dogecorn", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown coin", rec.Code)
	}
}

func TestPriceHandlerMetals(t *testing.T) {
	prices := &mockPriceQuoter{
		goldFn: func() (*pricing.Quote, error) {
			return &pricing.Quote{Symbol: "GC=F", Price: 2640.50, Source: "yahoo"}, nil
		},
		silverFn: func() (*pricing.Quote, error) {
			return &pricing.Quote{Symbol: "SI=F", Price: 31.20, Source: "yahoo"}, nil
		},
	}
	r := setupPriceHandlerRouter(prices)

	rec := performRequest(r, http.MethodGet, "/prices/gold", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("gold status = %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["symbol"] != "GC=F" {
		t.Errorf("gold symbol = %v, want GC=F", body["symbol"])
	}

	rec = performRequest(r, http.MethodGet, "/prices/silver", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("silver status = %d, want 200", rec.Code)
	}
	if body := decodeBody(t, rec); body["symbol"] != "SI=F" {
		t.Errorf("silver symbol = %v, want SI=F", body["symbol"])
	}
}

func TestPriceHandlerCommodity(t *testing.T) {
	prices := &mockPriceQuoter{
		commodityFn: func(name string) (*pricing.Quote, error) {
			if name != "oil" {
				return nil, pricing.ErrUnavailable
			}
			return &pricing.Quote{Symbol: "CL=F", Price: 78.35, Source: "yahoo"}, nil
		},
	}
	r := setupPriceHandlerRouter(prices)

	rec := performRequest(r, http.MethodGet, "/prices/commodities/oil", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/prices/commodities/uranium", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unsupported commodity", rec.Code)
	}
}
