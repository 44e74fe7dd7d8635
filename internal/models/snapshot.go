package models

import (
	"time"

	"finfolio/internal/uuid"

	"gorm.io/gorm"
)

// Snapshot represents a point-in-time record of a user's net worth.
// Rows are immutable time-series data: no Base embed, no soft deletes.
type Snapshot struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;not null;index" json:"user_id"`
	RecordedAt       time.Time `gorm:"not null" json:"recorded_at"`
	NetWorth         float64   `gorm:"not null" json:"net_worth"`
	TotalAssets      float64   `gorm:"not null" json:"total_assets"`
	TotalLiabilities float64   `gorm:"not null" json:"total_liabilities"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *Snapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
