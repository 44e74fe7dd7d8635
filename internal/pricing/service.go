package pricing

import (
	"context"
	"fmt"
	"strings"

	"finfolio/internal/analytics"
)

// Service resolves (category, symbol) pairs to quotes through the
// registered providers, consulting the cache first. It is the single
// entry point the rest of the application uses for market data.
type Service struct {
	yahoo     *YahooProvider
	coingecko *CoinGeckoProvider
	cache     Cache
}

// NewService creates a pricing service over the given providers and cache.
func NewService(yahoo *YahooProvider, coingecko *CoinGeckoProvider, cache Cache) *Service {
	return &Service{yahoo: yahoo, coingecko: coingecko, cache: cache}
}

/// GetPrice returns a quote for the symbol interpreted per category:
// stocks go to Yahoo as-is, gold and silver map to their futures tickers,
// crypto goes to CoinGecko by coin ID. Categories without a market
// (real estate, fixed income, cash, liabilities) return ErrUnavailable.
func (s *Service) GetPrice(ctx context.Context, category analytics.Category, symbol string) (*Quote, error) {
	provider, resolved, err := s.resolve(category, symbol)
	if err != nil {
		return nil, err
	}

	key := provider.Name() + ":" + resolved
	if cached, ok := s.cache.Get(key); ok {
		return &cached, nil
	}

	q, err := provider.Quote(ctx, resolved)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *q)
	return q, nil
}

// GetStockPrice returns a quote for a stock ticker.
func (s *Service) GetStockPrice(ctx context.Context, symbol string) (*Quote, error) {
	return s.GetPrice(ctx, analytics.CategoryStocks, strings.ToUpper(symbol))
}

// GetCryptoPrice returns a quote for a CoinGecko coin ID.
func (s *Service) GetCryptoPrice(ctx context.Context, coinID string) (*Quote, error) {
	return s.GetPrice(ctx, analytics.CategoryCrypto, strings.ToLower(coinID))
}

// GetGoldPrice returns the gold futures quote.
func (s *Service) GetGoldPrice(ctx context.Context) (*Quote, error) {
	return s.GetPrice(ctx, analytics.CategoryGold, "")
}

// GetSilverPrice returns the silver futures quote.
func (s *Service) GetSilverPrice(ctx context.Context) (*Quote, error) {
	return s.GetPrice(ctx, analytics.CategorySilver, "")
}

// GetCommodityPrice returns a quote for a commodity by name ("oil",
// "platinum", ...), using the futures ticker map.
func (s *Service) GetCommodityPrice(ctx context.Context, name string) (*Quote, error) {
	ticker, ok := commoditySymbols[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("pricing: unknown commodity %q: %w", name, ErrUnavailable)
	}

	key := s.yahoo.Name() + ":" + ticker
	if cached, ok := s.cache.Get(key); ok {
		return &cached, nil
	}
	q, err := s.yahoo.Quote(ctx, ticker)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *q)
	return q, nil
}

// GetHistorical returns daily closes for a Yahoo ticker over the given
// range (e.g. "1mo"). Historical data is not cached: it is only requested
// by the benchmark comparison, which is already rate-limited by usage.
func (s *Service) GetHistorical(ctx context.Context, symbol, rng string) ([]HistoricalPrice, error) {
	return s.yahoo.Historical(ctx, strings.ToUpper(symbol), rng)
}

// resolve picks the provider and provider-native symbol for a category.
func (s *Service) resolve(category analytics.Category, symbol string) (Provider, string, error) {
	switch category {
	case analytics.CategoryStocks:
		return s.yahoo, strings.ToUpper(symbol), nil
	case analytics.CategoryGold:
		return s.yahoo, commoditySymbols["gold"], nil
	case analytics.CategorySilver:
		return s.yahoo, commoditySymbols["silver"], nil
	case analytics.CategoryCrypto:
		return s.coingecko, strings.ToLower(symbol), nil
	default:
		return nil, "", fmt.Errorf("pricing: no market data for category %q: %w", category, ErrUnavailable)
	}
}
