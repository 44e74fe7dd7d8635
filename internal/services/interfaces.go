package services

import (
	"context"
	"time"

	"finfolio/internal/analytics"
	"finfolio/internal/models"
	"finfolio/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// PortfolioServicer defines the contract for portfolio-related business logic.
type PortfolioServicer interface {
	CreatePortfolio(userID, name, description, baseCurrency string) (*models.Portfolio, error)
	GetUserPortfolios(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Portfolio], error)
	GetPortfolioByID(userID, portfolioID string) (*models.Portfolio, error)
	UpdatePortfolio(userID, portfolioID, name, description string) (*models.Portfolio, error)
	DeletePortfolio(userID, portfolioID string) error
}

// AssetInput carries the fields accepted when creating an asset.
type AssetInput struct {
	Category      analytics.Category
	Symbol        string
	Name          string
	Quantity      float64
	PurchasePrice float64
	PurchaseDate  time.Time
	Currency      string
	Platform      string
	Notes         string
	MaturityDate  *time.Time
	InterestRate  float64
	DividendYield float64
}

// AssetUpdate carries the mutable fields of an asset. Nil pointers leave
// the stored value untouched.
type AssetUpdate struct {
	Name          *string
	Quantity      *float64
	PurchasePrice *float64
	CurrentPrice  *float64
	Platform      *string
	Notes         *string
	MaturityDate  *time.Time
	InterestRate  *float64
	DividendYield *float64
}

// AssetFilter holds optional filter parameters for listing assets.
type AssetFilter struct {
	Category  *analytics.Category
	Liability *bool
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(userID, portfolioID string, input AssetInput) (*models.Asset, error)
	GetPortfolioAssets(userID, portfolioID string, page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error)
	GetAssetByID(userID, assetID string) (*models.Asset, error)
	UpdateAsset(userID, assetID string, update AssetUpdate) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
	ListUserAssets(userID string) ([]models.Asset, error)
}

// PortfolioReport bundles everything the dashboard needs in one shape:
// the computed metrics, the money-weighted return, and derived insights.
type PortfolioReport struct {
	Metrics  analytics.Metrics   `json:"metrics"`
	XIRR     float64             `json:"xirr"`
	Insights []analytics.Insight `json:"insights"`
}

// AnalyticsServicer defines the contract for portfolio analytics.
type AnalyticsServicer interface {
	PortfolioMetrics(userID, portfolioID string) (*analytics.Metrics, error)
	PortfolioReport(userID, portfolioID string) (*PortfolioReport, error)
	UserMetrics(userID string) (*analytics.Metrics, error)
	PortfolioXIRR(userID, portfolioID string) (float64, error)
}

// HistoryPoint is one entry of a net worth time series.
type HistoryPoint struct {
	Date     string  `json:"date"`
	NetWorth float64 `json:"net_worth"`
}

// BenchmarkComparison holds indexed growth of the user's net worth against
// a market benchmark over the same window. Both series start at 100.
type BenchmarkComparison struct {
	Benchmark string            `json:"benchmark"`
	Portfolio []ComparisonPoint `json:"portfolio"`
	Market    []ComparisonPoint `json:"market"`
}

// ComparisonPoint is one indexed value of a comparison series.
type ComparisonPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SnapshotServicer defines the contract for net worth snapshots.
type SnapshotServicer interface {
	RecordSnapshot(userID string, recordedAt time.Time) (*models.Snapshot, error)
	RecordAllSnapshots(recordedAt time.Time) (int, error)
	History(userID string, from, to time.Time) ([]HistoryPoint, error)
	Comparison(ctx context.Context, userID string, days int) (*BenchmarkComparison, error)
}

// SyncReport summarizes one price sync run.
type SyncReport struct {
	Updated  int `json:"updated"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
	Duration time.Duration
}

// SyncServicer defines the contract for refreshing market prices.
type SyncServicer interface {
	SyncPrices(ctx context.Context) (*SyncReport, error)
}

// AlertServicer defines the contract for alert-related business logic.
type AlertServicer interface {
	CreateAlert(userID string, assetID *string, kind models.AlertKind, message string, triggerAt *time.Time, targetPrice float64) (*models.Alert, error)
	GetUserAlerts(userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Alert], error)
	MarkRead(userID, alertID string) (*models.Alert, error)
	DeleteAlert(userID, alertID string) error
	GenerateAlerts(userID string) ([]models.Alert, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
