package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"finfolio/internal/analytics"
	apperrors "finfolio/internal/errors"
	"finfolio/internal/models"
	"finfolio/internal/pagination"
)

// maturityWindow is how far ahead maturity alerts look.
const maturityWindow = 30 * 24 * time.Hour

// alertService handles alert-related business logic.
type alertService struct {
	db     *gorm.DB
	assets AssetServicer
}

// NewAlertService creates a new AlertServicer.
func NewAlertService(db *gorm.DB, assets AssetServicer) AlertServicer {
	return &alertService{db: db, assets: assets}
}

// CreateAlert creates a user-defined alert. When assetID is set the asset
// must belong to the user.
func (s *alertService) CreateAlert(userID string, assetID *string, kind models.AlertKind, message string, triggerAt *time.Time, targetPrice float64) (*models.Alert, error) {
	if message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "alert message is required")
	}
	if assetID != nil {
		if _, err := s.assets.GetAssetByID(userID, *assetID); err != nil {
			return nil, err
		}
	}

	alert := &models.Alert{
		UserID:      userID,
		AssetID:     assetID,
		Kind:        kind,
		Message:     message,
		TriggerAt:   triggerAt,
		TargetPrice: targetPrice,
	}
	if err := s.db.Create(alert).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return alert, nil
}

// GetUserAlerts retrieves a paginated list of the user's alerts, newest
// first, optionally restricted to unread ones.
func (s *alertService) GetUserAlerts(userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Alert], error) {
	page.Defaults()

	base := s.db.Model(&models.Alert{}).Where("user_id = ?", userID)
	if unreadOnly {
		base = base.Where("is_read = ?", false)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var alerts []models.Alert
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&alerts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(alerts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// MarkRead marks an alert as read.
func (s *alertService) MarkRead(userID, alertID string) (*models.Alert, error) {
	alert, err := s.getAlert(userID, alertID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(alert).Update("is_read", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	alert.IsRead = true
	return alert, nil
}

// DeleteAlert soft-deletes an alert.
func (s *alertService) DeleteAlert(userID, alertID string) error {
	alert, err := s.getAlert(userID, alertID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(alert).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *alertService) getAlert(userID, alertID string) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAlertNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &alert, nil
}

// GenerateAlerts scans the user's assets and creates system alerts:
// fixed income instruments maturing within thirty days, and price target
// alerts whose target the current price has crossed. An alert is created
// at most once per asset and kind.
func (s *alertService) GenerateAlerts(userID string) ([]models.Alert, error) {
	rows, err := s.assets.ListUserAssets(userID)
	if err != nil {
		return nil, err
	}

	created := []models.Alert{}
	now := time.Now()

	for i := range rows {
		a := &rows[i]

		if a.Category == analytics.CategoryFixedIncome && a.MaturityDate != nil {
			until := a.MaturityDate.Sub(now)
			if until > 0 && until <= maturityWindow {
				alert, err := s.createOnce(userID, a.ID, models.AlertMaturity,
					fmt.Sprintf("%s matures on %s", a.Name, a.MaturityDate.Format("2006-01-02")),
					a.MaturityDate, 0)
				if err != nil {
					return nil, err
				}
				if alert != nil {
					created = append(created, *alert)
				}
			}
		}
	}

	// Price target alerts the user registered earlier: fire when crossed.
	var pending []models.Alert
	err = s.db.Where("user_id = ? AND kind = ? AND is_read = ? AND target_price > 0", userID, models.AlertPriceTarget, false).
		Find(&pending).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range pending {
		p := &pending[i]
		if p.AssetID == nil {
			continue
		}
		asset, err := s.assets.GetAssetByID(userID, *p.AssetID)
		if err != nil {
			continue
		}
		if asset.EffectivePrice() >= p.TargetPrice {
			now := time.Now()
			if err := s.db.Model(p).Update("trigger_at", now).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			p.TriggerAt = &now
			created = append(created, *p)
		}
	}

	return created, nil
}

// createOnce inserts an alert unless one already exists for the same
// asset and kind.
func (s *alertService) createOnce(userID, assetID string, kind models.AlertKind, message string, triggerAt *time.Time, targetPrice float64) (*models.Alert, error) {
	var count int64
	err := s.db.Model(&models.Alert{}).
		Where("user_id = ? AND asset_id = ? AND kind = ?", userID, assetID, kind).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, nil
	}

	alert := &models.Alert{
		UserID:      userID,
		AssetID:     &assetID,
		Kind:        kind,
		Message:     message,
		TriggerAt:   triggerAt,
		TargetPrice: targetPrice,
	}
	if err := s.db.Create(alert).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return alert, nil
}
