package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finfolio/internal/errors"
	"finfolio/internal/models"
	"finfolio/internal/pagination"
)

// assetService handles asset-related business logic.
type assetService struct {
	db         *gorm.DB
	portfolios PortfolioServicer
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB, portfolios PortfolioServicer) AssetServicer {
	return &assetService{db: db, portfolios: portfolios}
}

// CreateAsset adds a holding or liability to a portfolio. The portfolio
// must belong to the user; the liability flag is derived from the category
// on insert.
func (s *assetService) CreateAsset(userID, portfolioID string, input AssetInput) (*models.Asset, error) {
	if !input.Category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
	}
	if input.PurchasePrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price cannot be negative")
	}

	if _, err := s.portfolios.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	asset := &models.Asset{
		PortfolioID:   portfolioID,
		Category:      input.Category,
		Symbol:        input.Symbol,
		Name:          input.Name,
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  input.PurchaseDate,
		Currency:      currency,
		Platform:      input.Platform,
		Notes:         input.Notes,
		MaturityDate:  input.MaturityDate,
		InterestRate:  input.InterestRate,
		DividendYield: input.DividendYield,
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetPortfolioAssets retrieves a paginated, optionally filtered list of
// assets in a portfolio the user owns.
func (s *assetService) GetPortfolioAssets(userID, portfolioID string, page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error) {
	if _, err := s.portfolios.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Asset{}).Where("portfolio_id = ?", portfolioID)
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Liability != nil {
		base = base.Where("is_liability = ?", *filter.Liability)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Order("purchase_date ASC").Scopes(pagination.Paginate(page)).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAssetByID retrieves an asset, enforcing ownership through its portfolio.
func (s *assetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	err := s.db.Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
		Where("assets.id = ? AND portfolios.user_id = ? AND portfolios.deleted_at IS NULL", assetID, userID).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset applies the non-nil fields of the update to an asset the
// user owns. The category is immutable after creation.
func (s *assetService) UpdateAsset(userID, assetID string, update AssetUpdate) (*models.Asset, error) {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name cannot be empty")
		}
		updates["name"] = *update.Name
	}
	if update.Quantity != nil {
		if *update.Quantity <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be positive")
		}
		updates["quantity"] = *update.Quantity
	}
	if update.PurchasePrice != nil {
		if *update.PurchasePrice < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price cannot be negative")
		}
		updates["purchase_price"] = *update.PurchasePrice
	}
	if update.CurrentPrice != nil {
		updates["current_price"] = *update.CurrentPrice
	}
	if update.Platform != nil {
		updates["platform"] = *update.Platform
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if update.MaturityDate != nil {
		updates["maturity_date"] = *update.MaturityDate
	}
	if update.InterestRate != nil {
		updates["interest_rate"] = *update.InterestRate
	}
	if update.DividendYield != nil {
		updates["dividend_yield"] = *update.DividendYield
	}
	if len(updates) == 0 {
		return asset, nil
	}

	if err := s.db.Model(asset).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// DeleteAsset soft-deletes an asset the user owns.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListUserAssets returns every asset across all of a user's portfolios.
// Used by analytics and snapshots, which operate on the full picture.
func (s *assetService) ListUserAssets(userID string) ([]models.Asset, error) {
	var assets []models.Asset
	err := s.db.Joins("JOIN portfolios ON portfolios.id = assets.portfolio_id").
		Where("portfolios.user_id = ? AND portfolios.deleted_at IS NULL", userID).
		Find(&assets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}
