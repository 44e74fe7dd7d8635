// Package analytics implements the portfolio metrics engine and the XIRR
// solver. Everything in this package is pure computation over in-memory
// asset snapshots: no database, no network, no shared state. Callers may
// invoke any function concurrently.
package analytics

import "time"

// Category is the closed set of asset categories the engine understands.
type Category string

const (
	CategoryStocks      Category = "stocks"
	CategoryGold        Category = "gold"
	CategorySilver      Category = "silver"
	CategoryCrypto      Category = "crypto"
	CategoryRealEstate  Category = "real_estate"
	CategoryFixedIncome Category = "fixed_income"
	CategoryCash        Category = "cash"
	CategoryLiabilities Category = "liabilities"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryStocks,
	CategoryGold,
	CategorySilver,
	CategoryCrypto,
	CategoryRealEstate,
	CategoryFixedIncome,
	CategoryCash,
	CategoryLiabilities,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStocks, CategoryGold, CategorySilver, CategoryCrypto,
		CategoryRealEstate, CategoryFixedIncome, CategoryCash, CategoryLiabilities:
		return true
	}
	return false
}

// Asset is an immutable snapshot of a single holding at computation time.
// The engine trusts its input: quantities and prices are not validated here,
// that is the ingestion layer's job. All monetary fields are assumed to be
// in a single reporting currency; Currency is carried for display only and
// no conversion is performed (multi-currency portfolios are summed as-is,
// which is a documented limitation).
type Asset struct {
	ID            string
	Name          string
	Category      Category
	Quantity      float64
	PurchasePrice float64
	// CurrentPrice is the latest known unit price. Adapters fall back to
	// PurchasePrice when no live quote is available, so by the time an
	// Asset reaches the engine this field is always populated.
	CurrentPrice float64
	PurchaseDate time.Time
	// IsLiability is derived from Category at ingestion. The partition
	// helper still honors it independently so rows written before the
	// category became authoritative keep partitioning correctly.
	IsLiability   bool
	InterestRate  float64 // annual %, fixed_income / cash / liabilities
	DividendYield float64 // annual %, stocks
	Currency      string
}

// Liability reports whether the asset counts against net worth.
// An asset is a liability iff the flag is set or its category says so.
func (a Asset) Liability() bool {
	return a.IsLiability || a.Category == CategoryLiabilities
}

// CurrentValue returns the asset's market value at the snapshot prices.
func (a Asset) CurrentValue() float64 {
	return a.CurrentPrice * a.Quantity
}

// CostBasis returns the original amount paid for the position.
func (a Asset) CostBasis() float64 {
	return a.PurchasePrice * a.Quantity
}

// yieldRate returns the annual percentage rate that drives the asset's
// passive income, per category: interest for fixed income and cash,
// dividends for stocks, nothing for everything else.
func (a Asset) yieldRate() float64 {
	switch a.Category {
	case CategoryFixedIncome, CategoryCash:
		return a.InterestRate
	case CategoryStocks:
		return a.DividendYield
	case CategoryGold, CategorySilver, CategoryCrypto,
		CategoryRealEstate, CategoryLiabilities:
		return 0
	}
	return 0
}

// AnnualIncome returns the passive income the asset generates per year.
func (a Asset) AnnualIncome() float64 {
	return a.CurrentValue() * a.yieldRate() / 100
}
