package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"finfolio/internal/analytics"
	apperrors "finfolio/internal/errors"
	"finfolio/internal/logger"
	"finfolio/internal/models"
	"finfolio/internal/pricing"
)

// historicalSource is the slice of the pricing service the snapshot
// comparison depends on.
type historicalSource interface {
	GetHistorical(ctx context.Context, symbol, rng string) ([]pricing.HistoricalPrice, error)
}

// snapshotService records and serves net worth snapshots.
type snapshotService struct {
	db        *gorm.DB
	assets    AssetServicer
	prices    historicalSource
	benchmark string
}

// NewSnapshotService creates a new SnapshotServicer. The benchmark symbol
// is used for market comparisons.
func NewSnapshotService(db *gorm.DB, assets AssetServicer, prices historicalSource, benchmark string) SnapshotServicer {
	return &snapshotService{db: db, assets: assets, prices: prices, benchmark: benchmark}
}

// RecordSnapshot computes and stores a net worth snapshot for one user.
// One snapshot per user per day: recording again on the same day updates
// the existing row instead of appending.
func (s *snapshotService) RecordSnapshot(userID string, recordedAt time.Time) (*models.Snapshot, error) {
	rows, err := s.assets.ListUserAssets(userID)
	if err != nil {
		return nil, err
	}

	m := analytics.ComputeMetrics(toRecords(rows))
	snapshot := &models.Snapshot{
		UserID:           userID,
		RecordedAt:       recordedAt,
		NetWorth:         m.NetWorth,
		TotalAssets:      m.TotalValue,
		TotalLiabilities: m.Liabilities,
	}

	dayStart := recordedAt.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var existing models.Snapshot
	result := s.db.Where("user_id = ? AND recorded_at >= ? AND recorded_at < ?", userID, dayStart, dayEnd).First(&existing)
	if result.Error == nil {
		if err := s.db.Model(&existing).Updates(map[string]interface{}{
			"recorded_at":       recordedAt,
			"net_worth":         snapshot.NetWorth,
			"total_assets":      snapshot.TotalAssets,
			"total_liabilities": snapshot.TotalLiabilities,
		}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		existing.RecordedAt = recordedAt
		existing.NetWorth = snapshot.NetWorth
		existing.TotalAssets = snapshot.TotalAssets
		existing.TotalLiabilities = snapshot.TotalLiabilities
		return &existing, nil
	}

	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// RecordAllSnapshots records a snapshot for every active user. Failures
// for individual users are logged and skipped so one bad row cannot stall
// the whole run.
func (s *snapshotService) RecordAllSnapshots(recordedAt time.Time) (int, error) {
	var userIDs []string
	if err := s.db.Model(&models.User{}).
		Where("is_active = ?", true).
		Pluck("id", &userIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	count := 0
	for _, userID := range userIDs {
		if _, err := s.RecordSnapshot(userID, recordedAt); err != nil {
			logger.Get().Errorw("snapshot failed", "user_id", userID, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

// History returns the user's net worth series between from and to,
// oldest first.
func (s *snapshotService) History(userID string, from, to time.Time) ([]HistoryPoint, error) {
	var snapshots []models.Snapshot
	err := s.db.Where("user_id = ? AND recorded_at >= ? AND recorded_at <= ?", userID, from, to).
		Order("recorded_at ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	points := make([]HistoryPoint, len(snapshots))
	for i, snap := range snapshots {
		points[i] = HistoryPoint{
			Date:     snap.RecordedAt.Format("2006-01-02"),
			NetWorth: snap.NetWorth,
		}
	}
	return points, nil
}

// Comparison indexes the user's net worth against the benchmark over the
// last N days. Both series are rebased to 100 at their first point so
// growth rates compare directly regardless of absolute size.
func (s *snapshotService) Comparison(ctx context.Context, userID string, days int) (*BenchmarkComparison, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)

	history, err := s.History(userID, from, to)
	if err != nil {
		return nil, err
	}

	market, err := s.prices.GetHistorical(ctx, s.benchmark, rangeForDays(days))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPriceUnavailable, err)
	}

	cmp := &BenchmarkComparison{
		Benchmark: s.benchmark,
		Portfolio: indexSeriesFromHistory(history),
		Market:    indexSeriesFromPrices(market),
	}
	return cmp, nil
}

// rangeForDays maps a day count onto the provider's named ranges.
func rangeForDays(days int) string {
	switch {
	case days <= 7:
		return "5d"
	case days <= 31:
		return "1mo"
	case days <= 93:
		return "3mo"
	case days <= 186:
		return "6mo"
	default:
		return "1y"
	}
}

func indexSeriesFromHistory(points []HistoryPoint) []ComparisonPoint {
	out := make([]ComparisonPoint, 0, len(points))
	var base float64
	for _, p := range points {
		if base == 0 {
			if p.NetWorth == 0 {
				continue
			}
			base = p.NetWorth
		}
		out = append(out, ComparisonPoint{Date: p.Date, Value: p.NetWorth / base * 100})
	}
	return out
}

func indexSeriesFromPrices(prices []pricing.HistoricalPrice) []ComparisonPoint {
	out := make([]ComparisonPoint, 0, len(prices))
	var base float64
	for _, p := range prices {
		if base == 0 {
			if p.Price == 0 {
				continue
			}
			base = p.Price
		}
		out = append(out, ComparisonPoint{Date: p.Date, Value: p.Price / base * 100})
	}
	return out
}
