package models

import (
	"time"

	"gorm.io/gorm"

	"finfolio/internal/analytics"
)

// Asset represents a single holding or liability inside a portfolio.
// Category is the authoritative liability signal; IsLiability is derived
// from it on create so older readers keep working.
type Asset struct {
	Base
	PortfolioID   string             `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	Category      analytics.Category `gorm:"not null" json:"category"`
	Symbol        string             `json:"symbol,omitempty"`
	Name          string             `gorm:"not null" json:"name"`
	Quantity      float64            `gorm:"not null" json:"quantity"`
	PurchasePrice float64            `gorm:"not null" json:"purchase_price"`
	PurchaseDate  time.Time          `gorm:"not null" json:"purchase_date"`
	// CurrentPrice is refreshed by the sync worker. Zero means no quote
	// has arrived yet; readers fall back to PurchasePrice.
	CurrentPrice  float64    `json:"current_price"`
	Currency      string     `gorm:"not null;default:'USD'" json:"currency"`
	Platform      string     `json:"platform,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	MaturityDate  *time.Time `json:"maturity_date,omitempty"`
	InterestRate  float64    `json:"interest_rate,omitempty"`
	DividendYield float64    `json:"dividend_yield,omitempty"`
	IsLiability   bool       `json:"is_liability"`
	PriceSyncedAt *time.Time `json:"price_synced_at,omitempty"`

	// Relationships
	Portfolio Portfolio `gorm:"foreignKey:PortfolioID" json:"-"`
}

// BeforeCreate derives the liability flag from the category.
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if err := a.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if a.Category == analytics.CategoryLiabilities {
		a.IsLiability = true
	}
	return nil
}

// EffectivePrice returns the current price, or the purchase price when no
// live quote has been recorded. This fallback is documented behavior, not
// an error condition.
func (a *Asset) EffectivePrice() float64 {
	if a.CurrentPrice > 0 {
		return a.CurrentPrice
	}
	return a.PurchasePrice
}

// Record converts the row into the analytics engine's input shape,
// applying the price fallback.
func (a *Asset) Record() analytics.Asset {
	return analytics.Asset{
		ID:            a.ID,
		Name:          a.Name,
		Category:      a.Category,
		Quantity:      a.Quantity,
		PurchasePrice: a.PurchasePrice,
		CurrentPrice:  a.EffectivePrice(),
		PurchaseDate:  a.PurchaseDate,
		IsLiability:   a.IsLiability,
		InterestRate:  a.InterestRate,
		DividendYield: a.DividendYield,
		Currency:      a.Currency,
	}
}
