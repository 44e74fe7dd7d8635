package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"finfolio/internal/analytics"
	apperrors "finfolio/internal/errors"
	"finfolio/internal/logger"
	"finfolio/internal/models"
	"finfolio/internal/pricing"
)

// priceSource is the slice of the pricing service the sync worker uses.
type priceSource interface {
	GetPrice(ctx context.Context, category analytics.Category, symbol string) (*pricing.Quote, error)
}

// syncable lists the categories with a live market behind them. Everything
// else (real estate, fixed income, cash, liabilities) keeps its stored price.
var syncable = map[analytics.Category]bool{
	analytics.CategoryStocks: true,
	analytics.CategoryCrypto: true,
	analytics.CategoryGold:   true,
	analytics.CategorySilver: true,
}

// syncService refreshes stored asset prices from market data providers
// and records fresh snapshots afterwards.
type syncService struct {
	db        *gorm.DB
	prices    priceSource
	snapshots SnapshotServicer
}

// NewSyncService creates a new SyncServicer. Pass a nil SnapshotServicer
// to skip snapshot recording after sync.
func NewSyncService(db *gorm.DB, prices priceSource, snapshots SnapshotServicer) SyncServicer {
	return &syncService{db: db, prices: prices, snapshots: snapshots}
}

// symbolKey identifies one distinct market lookup.
type symbolKey struct {
	category analytics.Category
	symbol   string
}

// SyncPrices fetches a quote for every distinct (category, symbol) pair
// held across all portfolios and writes the result back to the matching
// asset rows. Each distinct pair is fetched once regardless of how many
// users hold it. Individual fetch failures are logged and counted, never
// fatal.
func (s *syncService) SyncPrices(ctx context.Context) (*SyncReport, error) {
	start := time.Now()
	report := &SyncReport{}

	var rows []models.Asset
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Distinct lookups across all users.
	keys := make(map[symbolKey]bool)
	for i := range rows {
		a := &rows[i]
		if !syncable[a.Category] {
			report.Skipped++
			continue
		}
		symbol := a.Symbol
		if symbol == "" && a.Category != analytics.CategoryGold && a.Category != analytics.CategorySilver {
			report.Skipped++
			continue
		}
		keys[symbolKey{category: a.Category, symbol: symbol}] = true
	}

	// Fetch concurrently; the cache absorbs repeats within the TTL.
	type fetched struct {
		key   symbolKey
		quote *pricing.Quote
		err   error
	}
	results := make(chan fetched, len(keys))
	var wg sync.WaitGroup
	for key := range keys {
		wg.Add(1)
		go func(key symbolKey) {
			defer wg.Done()
			q, err := s.prices.GetPrice(ctx, key.category, key.symbol)
			results <- fetched{key: key, quote: q, err: err}
		}(key)
	}
	wg.Wait()
	close(results)

	quotes := make(map[symbolKey]*pricing.Quote, len(keys))
	for r := range results {
		if r.err != nil {
			logger.Get().Warnw("price fetch failed",
				"category", r.key.category,
				"symbol", r.key.symbol,
				"error", r.err,
			)
			report.Failed++
			continue
		}
		quotes[r.key] = r.quote
	}

	// Write back to every row holding a fetched symbol.
	now := time.Now()
	for i := range rows {
		a := &rows[i]
		q, ok := quotes[symbolKey{category: a.Category, symbol: a.Symbol}]
		if !ok {
			continue
		}
		err := s.db.Model(a).Updates(map[string]interface{}{
			"current_price":   q.Price,
			"price_synced_at": now,
		}).Error
		if err != nil {
			logger.Get().Errorw("price write failed", "asset_id", a.ID, "error", err)
			report.Failed++
			continue
		}
		report.Updated++
	}

	if s.snapshots != nil && report.Updated > 0 {
		if _, err := s.snapshots.RecordAllSnapshots(now); err != nil {
			logger.Get().Errorw("snapshot pass failed after sync", "error", err)
		}
	}

	report.Duration = time.Since(start)
	logger.Get().Infow("price sync completed",
		"updated", report.Updated,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration.String(),
	)
	return report, nil
}
