package models

// Portfolio groups a user's assets under a single reporting currency.
// All metrics are computed in this currency; asset rows carry their own
// currency code for display but are summed without conversion.
type Portfolio struct {
	Base
	UserID       string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `json:"description"`
	BaseCurrency string  `gorm:"not null;default:'USD'" json:"base_currency"`
	Assets       []Asset `gorm:"foreignKey:PortfolioID" json:"assets,omitempty"`
}
