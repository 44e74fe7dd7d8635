package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finfolio/internal/analytics"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3/simple/price"

// CoinGeckoProvider fetches cryptocurrency prices from the CoinGecko
// simple/price endpoint. Symbols are CoinGecko coin IDs ("bitcoin",
// "ethereum"), not tickers.
type CoinGeckoProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewCoinGeckoProvider creates a new CoinGecko price provider.
func NewCoinGeckoProvider(httpClient *http.Client) *CoinGeckoProvider {
	return &CoinGeckoProvider{httpClient: httpClient, baseURL: coingeckoBaseURL}
}

// Name returns the provider's display name.
func (p *CoinGeckoProvider) Name() string { return "coingecko" }

// Supports returns true for the crypto category only.
func (p *CoinGeckoProvider) Supports(category analytics.Category) bool {
	return category == analytics.CategoryCrypto
}

// coingeckoEntry is the per-coin payload of the simple/price endpoint.
type coingeckoEntry struct {
	USD       float64 `json:"usd"`
	USDChange float64 `json:"usd_24h_change"`
}

// Quote fetches the current USD price for a single coin ID.
func (p *CoinGeckoProvider) Quote(ctx context.Context, coinID string) (*Quote, error) {
	quotes, err := p.Quotes(ctx, []string{coinID})
	if err != nil {
		return nil, err
	}
	q, ok := quotes[strings.ToLower(coinID)]
	if !ok {
		return nil, fmt.Errorf("coingecko: no data for %s: %w", coinID, ErrUnavailable)
	}
	return &q, nil
}

// Quotes fetches current USD prices for multiple coin IDs in one request.
// Coins missing from the response are simply absent from the result map.
func (p *CoinGeckoProvider) Quotes(ctx context.Context, coinIDs []string) (map[string]Quote, error) {
	if len(coinIDs) == 0 {
		return map[string]Quote{}, nil
	}

	ids := make([]string, len(coinIDs))
	for i, id := range coinIDs {
		ids[i] = strings.ToLower(id)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: building request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko: http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	var payload map[string]coingeckoEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("coingecko: decoding response: %w", err)
	}

	now := time.Now().UTC()
	quotes := make(map[string]Quote, len(payload))
	for _, id := range ids {
		entry, ok := payload[id]
		if !ok || entry.USD == 0 {
			continue
		}
		quotes[id] = Quote{
			Symbol:        id,
			Price:         entry.USD,
			ChangePercent: entry.USDChange,
			Timestamp:     now,
			Source:        "coingecko",
		}
	}
	return quotes, nil
}
