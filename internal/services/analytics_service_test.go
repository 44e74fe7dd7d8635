package services

import (
	"math"
	"testing"
	"time"

	"finfolio/internal/analytics"
	"finfolio/internal/models"
	"finfolio/internal/testutil"
)

func TestPortfolioMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	portfolioSvc := NewPortfolioService(db)
	assetSvc := NewAssetService(db, portfolioSvc)
	svc := NewAnalyticsService(db, portfolioSvc, assetSvc)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

	// 10 shares bought at 100, now 150.
	testutil.CreateTestAsset(t, db, portfolio.ID, analytics.CategoryStocks, func(a *models.Asset) {
		a.CurrentPrice = 150
	})
	// 5000 outstanding loan.
	testutil.CreateTestLiability(t, db, portfolio.ID, 5000)

	m, err := svc.PortfolioMetrics(user.ID, portfolio.ID)
	testutil.AssertNoError(t, err)

	if m.TotalValue != 1500 {
		t.Errorf("expected total value 1500, got %f", m.TotalValue)
	}
	if m.Liabilities != 5000 {
		t.Errorf("expected liabilities 5000, got %f", m.Liabilities)
	}
	if m.NetWorth != -3500 {
		t.Errorf("expected net worth -3500, got %f", m.NetWorth)
	}

	t.Run("ownership_enforced", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		_, err := svc.PortfolioMetrics(other.ID, portfolio.ID)
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}

func TestPortfolioMetricsPriceFallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	portfolioSvc := NewPortfolioService(db)
	assetSvc := NewAssetService(db, portfolioSvc)
	svc := NewAnalyticsService(db, portfolioSvc, assetSvc)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

	// No live quote yet: current price is zero, purchase price stands in.
	testutil.CreateTestAsset(t, db, portfolio.ID, analytics.CategoryStocks)

	m, err := svc.PortfolioMetrics(user.ID, portfolio.ID)
	testutil.AssertNoError(t, err)

	if m.TotalValue != 1000 {
		t.Errorf("expected fallback value 1000 (10 x 100 purchase), got %f", m.TotalValue)
	}
	if m.TotalGain != 0 {
		t.Errorf("fallback pricing should show zero gain, got %f", m.TotalGain)
	}
}

func TestPortfolioReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	portfolioSvc := NewPortfolioService(db)
	assetSvc := NewAssetService(db, portfolioSvc)
	svc := NewAnalyticsService(db, portfolioSvc, assetSvc)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

	// A year-old position that grew 10%: XIRR should land near 10.
	testutil.CreateTestAsset(t, db, portfolio.ID, analytics.CategoryStocks, func(a *models.Asset) {
		a.PurchaseDate = time.Now().AddDate(-1, 0, 0)
		a.CurrentPrice = 110
	})

	report, err := svc.PortfolioReport(user.ID, portfolio.ID)
	testutil.AssertNoError(t, err)

	if math.Abs(report.XIRR-10) > 0.5 {
		t.Errorf("expected XIRR near 10%%, got %f", report.XIRR)
	}
	if len(report.Insights) == 0 {
		t.Error("expected at least one insight")
	}
	if report.Metrics.TotalValue != 1100 {
		t.Errorf("expected total value 1100, got %f", report.Metrics.TotalValue)
	}
}

func TestUserMetrics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	portfolioSvc := NewPortfolioService(db)
	assetSvc := NewAssetService(db, portfolioSvc)
	svc := NewAnalyticsService(db, portfolioSvc, assetSvc)

	user := testutil.CreateTestUser(t, db)
	first := testutil.CreateTestPortfolio(t, db, user.ID)
	second := testutil.CreateTestPortfolio(t, db, user.ID)
	testutil.CreateTestAsset(t, db, first.ID, analytics.CategoryStocks, func(a *models.Asset) {
		a.CurrentPrice = 100
	})
	testutil.CreateTestAsset(t, db, second.ID, analytics.CategoryGold, func(a *models.Asset) {
		a.CurrentPrice = 100
	})

	m, err := svc.UserMetrics(user.ID)
	testutil.AssertNoError(t, err)

	if m.TotalValue != 2000 {
		t.Errorf("expected combined value 2000, got %f", m.TotalValue)
	}
	if len(m.AllocationByType) != 2 {
		t.Errorf("expected 2 allocation buckets, got %d", len(m.AllocationByType))
	}
}

func TestPortfolioXIRREmptyPortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	portfolioSvc := NewPortfolioService(db)
	assetSvc := NewAssetService(db, portfolioSvc)
	svc := NewAnalyticsService(db, portfolioSvc, assetSvc)

	user := testutil.CreateTestUser(t, db)
	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)

	rate, err := svc.PortfolioXIRR(user.ID, portfolio.ID)
	testutil.AssertNoError(t, err)
	if rate != 0 {
		t.Errorf("expected 0 for an empty portfolio, got %f", rate)
	}
}
