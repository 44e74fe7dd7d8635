package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"finfolio/internal/config"
	"finfolio/internal/database"
	"finfolio/internal/logger"
	"finfolio/internal/pricing"
	"finfolio/internal/services"

	"github.com/robfig/cron/v3"
)

// The sync worker refreshes market prices on a cron schedule and records
// daily net worth snapshots after each successful pass. Run with -once to
// execute a single pass and exit (useful from a system scheduler).

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	httpClient := &http.Client{Timeout: appConfig.ProviderTimeout}
	priceService := pricing.NewService(
		pricing.NewYahooProvider(httpClient),
		pricing.NewCoinGeckoProvider(httpClient),
		pricing.NewTTLCache(appConfig.PriceCacheTTL),
	)

	db := dbManager.DB()
	portfolioService := services.NewPortfolioService(db)
	assetService := services.NewAssetService(db, portfolioService)
	snapshotService := services.NewSnapshotService(db, assetService, priceService, appConfig.BenchmarkSymbol)
	syncService := services.NewSyncService(db, priceService, snapshotService)

	runPass := func() {
		ctx, cancel := context.WithTimeout(context.Background(), appConfig.ProviderTimeout*10)
		defer cancel()

		report, err := syncService.SyncPrices(ctx)
		if err != nil {
			log.Errorw("price sync failed", "error", err)
			return
		}
		log.Infow("price sync completed",
			"updated", report.Updated,
			"failed", report.Failed,
			"skipped", report.Skipped,
			"duration", report.Duration.String(),
		)
	}

	if len(os.Args) > 1 && os.Args[1] == "-once" {
		runPass()
		return nil
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(appConfig.PriceSyncSpec, runPass); err != nil {
		return fmt.Errorf("invalid sync schedule %q: %w", appConfig.PriceSyncSpec, err)
	}

	scheduler.Start()
	log.Infof("Sync worker started with schedule %q", appConfig.PriceSyncSpec)

	// Run one pass at startup so fresh deployments have prices immediately.
	runPass()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down sync worker...")
	<-scheduler.Stop().Done()
	return nil
}
