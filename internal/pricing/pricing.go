// Package pricing fetches market quotes from external data sources and
// serves them through a time-boxed cache. The analytics engine never sees
// this package: an adapter refreshes asset rows with these quotes before
// metrics are computed.
package pricing

import (
	"context"
	"errors"
	"time"

	"finfolio/internal/analytics"
)

// ErrUnavailable is returned when no provider can produce a quote for the
// requested symbol.
var ErrUnavailable = errors.New("pricing: quote unavailable")

// Quote is a single market price observation.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change,omitempty"`
	ChangePercent float64   `json:"change_percent,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
}

// HistoricalPrice is one daily closing price.
type HistoricalPrice struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// Provider fetches current market prices from one external source.
type Provider interface {
	// Name returns the provider's display name (e.g., "Yahoo Finance").
	Name() string

	// Supports reports whether this provider quotes the given category.
	Supports(category analytics.Category) bool

	// Quote fetches the current price for a provider-native symbol.
	Quote(ctx context.Context, symbol string) (*Quote, error)
}

// commoditySymbols maps commodity names to Yahoo Finance futures tickers.
var commoditySymbols = map[string]string{
	"gold":        "GC=F",
	"silver":      "SI=F",
	"platinum":    "PL=F",
	"palladium":   "PA=F",
	"oil":         "CL=F",
	"crude oil":   "CL=F",
	"natural gas": "NG=F",
}
