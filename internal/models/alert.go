package models

import "time"

// AlertKind classifies an alert.
type AlertKind string

const (
	AlertMaturity    AlertKind = "maturity"     // fixed income reaching maturity date
	AlertPriceTarget AlertKind = "price_target" // asset crossed a user-set price
	AlertCustom      AlertKind = "custom"
)

// Alert is a presentation-level reminder derived from asset data or created
// by the user. Alerts never feed back into the metrics engine.
type Alert struct {
	Base
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetID     *string    `gorm:"type:uuid" json:"asset_id,omitempty"`
	Kind        AlertKind  `gorm:"not null" json:"kind"`
	Message     string     `gorm:"not null" json:"message"`
	TriggerAt   *time.Time `json:"trigger_at,omitempty"`
	TargetPrice float64    `json:"target_price,omitempty"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`
}
