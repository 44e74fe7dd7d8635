package services

import (
	"time"

	"gorm.io/gorm"

	"finfolio/internal/analytics"
	apperrors "finfolio/internal/errors"
	"finfolio/internal/models"
)

// analyticsService computes portfolio metrics from stored assets. All
// calculation lives in the analytics package; this service only loads
// rows, converts them, and hands the results back.
type analyticsService struct {
	db         *gorm.DB
	portfolios PortfolioServicer
	assets     AssetServicer
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, portfolios PortfolioServicer, assets AssetServicer) AnalyticsServicer {
	return &analyticsService{db: db, portfolios: portfolios, assets: assets}
}

// portfolioRecords loads a portfolio's assets as engine records,
// enforcing ownership.
func (s *analyticsService) portfolioRecords(userID, portfolioID string) ([]analytics.Asset, error) {
	if _, err := s.portfolios.GetPortfolioByID(userID, portfolioID); err != nil {
		return nil, err
	}

	var rows []models.Asset
	if err := s.db.Where("portfolio_id = ?", portfolioID).Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return toRecords(rows), nil
}

func toRecords(rows []models.Asset) []analytics.Asset {
	records := make([]analytics.Asset, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}
	return records
}

// PortfolioMetrics computes the full metrics set for one portfolio.
func (s *analyticsService) PortfolioMetrics(userID, portfolioID string) (*analytics.Metrics, error) {
	records, err := s.portfolioRecords(userID, portfolioID)
	if err != nil {
		return nil, err
	}
	m := analytics.ComputeMetrics(records)
	return &m, nil
}

// PortfolioReport computes metrics, XIRR, and insights in one pass over
// the same asset snapshot, so the three views never disagree.
func (s *analyticsService) PortfolioReport(userID, portfolioID string) (*PortfolioReport, error) {
	records, err := s.portfolioRecords(userID, portfolioID)
	if err != nil {
		return nil, err
	}

	m := analytics.ComputeMetrics(records)
	flows := analytics.BuildCashFlows(records, time.Now(), analytics.GrossValue)

	return &PortfolioReport{
		Metrics:  m,
		XIRR:     analytics.ComputeXIRR(flows),
		Insights: analytics.Insights(records, m),
	}, nil
}

// UserMetrics computes metrics across all of a user's portfolios.
func (s *analyticsService) UserMetrics(userID string) (*analytics.Metrics, error) {
	rows, err := s.assets.ListUserAssets(userID)
	if err != nil {
		return nil, err
	}
	m := analytics.ComputeMetrics(toRecords(rows))
	return &m, nil
}

// PortfolioXIRR computes the annualized money-weighted return of one
// portfolio as a percentage.
func (s *analyticsService) PortfolioXIRR(userID, portfolioID string) (float64, error) {
	records, err := s.portfolioRecords(userID, portfolioID)
	if err != nil {
		return 0, err
	}
	flows := analytics.BuildCashFlows(records, time.Now(), analytics.GrossValue)
	return analytics.ComputeXIRR(flows), nil
}
