package testutil_test

import (
	"testing"

	"finfolio/internal/analytics"
	"finfolio/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	var count int64
	for _, table := range []string{"users", "portfolios", "assets", "snapshots", "alerts", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should get a UUID on create")
	}

	portfolio := testutil.CreateTestPortfolio(t, db, user.ID)
	asset := testutil.CreateTestAsset(t, db, portfolio.ID, analytics.CategoryStocks)
	if asset.IsLiability {
		t.Error("a stock holding should not be flagged as a liability")
	}

	loan := testutil.CreateTestLiability(t, db, portfolio.ID, 5000)
	if !loan.IsLiability {
		t.Error("liability rows should derive the flag from the category")
	}

	other := testutil.CreateTestUser(t, db)
	if other.Email == user.Email {
		t.Error("fixture emails should be unique")
	}
}
