package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finfolio/internal/errors"
	"finfolio/internal/models"
	"finfolio/internal/pagination"
)

// portfolioService handles portfolio-related business logic.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePortfolio creates a new portfolio for a user.
func (s *portfolioService) CreatePortfolio(userID, name, description, baseCurrency string) (*models.Portfolio, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "portfolio name is required")
	}
	if baseCurrency == "" {
		baseCurrency = "USD"
	}

	portfolio := &models.Portfolio{
		UserID:       userID,
		Name:         name,
		Description:  description,
		BaseCurrency: baseCurrency,
	}

	if err := s.db.Create(portfolio).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return portfolio, nil
}

// GetUserPortfolios retrieves a paginated list of portfolios for a user.
func (s *portfolioService) GetUserPortfolios(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Portfolio{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var portfolios []models.Portfolio
	if err := base.Order("created_at ASC").Scopes(pagination.Paginate(page)).Find(&portfolios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(portfolios, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPortfolioByID retrieves a portfolio, enforcing ownership.
func (s *portfolioService) GetPortfolioByID(userID, portfolioID string) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	if err := s.db.Where("id = ? AND user_id = ?", portfolioID, userID).First(&portfolio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &portfolio, nil
}

// UpdatePortfolio updates a portfolio's name and description.
func (s *portfolioService) UpdatePortfolio(userID, portfolioID, name, description string) (*models.Portfolio, error) {
	portfolio, err := s.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if len(updates) == 0 {
		return portfolio, nil
	}

	if err := s.db.Model(portfolio).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return portfolio, nil
}

// DeletePortfolio soft-deletes a portfolio and its assets.
func (s *portfolioService) DeletePortfolio(userID, portfolioID string) error {
	portfolio, err := s.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("portfolio_id = ?", portfolio.ID).Delete(&models.Asset{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(portfolio).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
