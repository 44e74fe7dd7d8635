package main

import (
	"fmt"
	"net/http"
	"os"

	"finfolio/internal/config"
	"finfolio/internal/database"
	"finfolio/internal/handlers"
	"finfolio/internal/logger"
	"finfolio/internal/middleware"
	"finfolio/internal/pricing"
	"finfolio/internal/services"
	"finfolio/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finfolio/internal/docs" // Import swagger docs
)

// @title           Finfolio API
// @version         1.0
// @description     Finfolio tracks multi-asset portfolios: net worth, allocation, diversification, passive income, XIRR and live market prices.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Create database manager and run migrations
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Market data providers share one HTTP client with the provider timeout.
	httpClient := &http.Client{Timeout: appConfig.ProviderTimeout}
	priceService := pricing.NewService(
		pricing.NewYahooProvider(httpClient),
		pricing.NewCoinGeckoProvider(httpClient),
		pricing.NewTTLCache(appConfig.PriceCacheTTL),
	)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	assetService := services.NewAssetService(db, portfolioService)
	analyticsService := services.NewAnalyticsService(db, portfolioService, assetService)
	snapshotService := services.NewSnapshotService(db, assetService, priceService, appConfig.BenchmarkSymbol)
	alertService := services.NewAlertService(db, assetService)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, snapshotService)
	priceHandler := handlers.NewPriceHandler(priceService)
	alertHandler := handlers.NewAlertHandler(alertService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Portfolio routes
	portfolios := protected.Group("/portfolios")
	portfolios.POST("", portfolioHandler.Create)
	portfolios.GET("", portfolioHandler.List)
	portfolios.GET("/:id", portfolioHandler.Get)
	portfolios.PUT("/:id", portfolioHandler.Update)
	portfolios.DELETE("/:id", portfolioHandler.Delete)
	portfolios.POST("/:id/assets", assetHandler.Create)
	portfolios.GET("/:id/assets", assetHandler.List)
	portfolios.GET("/:id/metrics", analyticsHandler.PortfolioMetrics)
	portfolios.GET("/:id/report", analyticsHandler.PortfolioReport)

	// Asset routes
	assets := protected.Group("/assets")
	assets.GET("/:id", assetHandler.Get)
	assets.PUT("/:id", assetHandler.Update)
	assets.DELETE("/:id", assetHandler.Delete)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.GET("/summary", analyticsHandler.UserMetrics)
	analytics.GET("/history", analyticsHandler.History)
	analytics.GET("/comparison", analyticsHandler.Comparison)
	analytics.POST("/snapshots", analyticsHandler.RecordSnapshot)

	// Market price routes
	prices := protected.Group("/prices")
	prices.GET("/stocks/:symbol", priceHandler.Stock)
	prices.GET("/crypto/:id", priceHandler.Crypto)
	prices.GET("/gold", priceHandler.Gold)
	prices.GET("/silver", priceHandler.Silver)
	prices.GET("/commodities/:name", priceHandler.Commodity)

	// Alert routes
	alerts := protected.Group("/alerts")
	alerts.POST("", alertHandler.Create)
	alerts.GET("", alertHandler.List)
	alerts.POST("/generate", alertHandler.Generate)
	alerts.POST("/:id/read", alertHandler.MarkRead)
	alerts.DELETE("/:id", alertHandler.Delete)

	log.Infof("Starting Finfolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
