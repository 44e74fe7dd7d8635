package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finfolio/internal/analytics"
	"finfolio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPortfolio creates a portfolio for the given user.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.Portfolio {
	t.Helper()

	portfolio := &models.Portfolio{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Portfolio %d", nextID()),
		BaseCurrency: "USD",
	}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return portfolio
}

// CreateTestAsset creates a holding in the given category with quantity 10
// bought at 100. Pass a mutator to adjust fields before insert.
func CreateTestAsset(t *testing.T, db *gorm.DB, portfolioID string, category analytics.Category, mutate ...func(*models.Asset)) *models.Asset {
	t.Helper()

	n := nextID()
	asset := &models.Asset{
		PortfolioID:   portfolioID,
		Category:      category,
		Symbol:        fmt.Sprintf("TST%d", n),
		Name:          fmt.Sprintf("Test Asset %d", n),
		Quantity:      10,
		PurchasePrice: 100,
		PurchaseDate:  time.Now().AddDate(-1, 0, 0),
		Currency:      "USD",
	}
	for _, m := range mutate {
		m(asset)
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestLiability creates a liability row with the given outstanding
// amount (quantity 1, purchase price = amount).
func CreateTestLiability(t *testing.T, db *gorm.DB, portfolioID string, amount float64) *models.Asset {
	t.Helper()

	return CreateTestAsset(t, db, portfolioID, analytics.CategoryLiabilities, func(a *models.Asset) {
		a.Name = fmt.Sprintf("Test Loan %d", nextID())
		a.Symbol = ""
		a.Quantity = 1
		a.PurchasePrice = amount
		a.CurrentPrice = amount
	})
}

// CreateTestSnapshot records a snapshot for the user at the given time.
func CreateTestSnapshot(t *testing.T, db *gorm.DB, userID string, recordedAt time.Time, netWorth float64) *models.Snapshot {
	t.Helper()

	snap := &models.Snapshot{
		UserID:      userID,
		RecordedAt:  recordedAt,
		NetWorth:    netWorth,
		TotalAssets: netWorth,
	}
	if err := db.Create(snap).Error; err != nil {
		t.Fatalf("failed to create test snapshot: %v", err)
	}
	return snap
}

// CreateTestAlert creates an unread custom alert for the user.
func CreateTestAlert(t *testing.T, db *gorm.DB, userID string) *models.Alert {
	t.Helper()

	alert := &models.Alert{
		UserID:  userID,
		Kind:    models.AlertCustom,
		Message: fmt.Sprintf("Test alert %d", nextID()),
	}
	if err := db.Create(alert).Error; err != nil {
		t.Fatalf("failed to create test alert: %v", err)
	}
	return alert
}
