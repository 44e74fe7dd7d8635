package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"finfolio/internal/services"
)

// AnalyticsHandler serves portfolio metrics, returns, history, and
// benchmark comparisons.
type AnalyticsHandler struct {
	analytics services.AnalyticsServicer
	snapshots services.SnapshotServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics services.AnalyticsServicer, snapshots services.SnapshotServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, snapshots: snapshots}
}

// PortfolioMetrics returns the metrics for one portfolio
// @Summary     Portfolio metrics
// @Description Net worth, gain/loss, allocation, diversification, and passive income for a portfolio
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} analytics.Metrics
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /portfolios/{id}/metrics [get]
func (h *AnalyticsHandler) PortfolioMetrics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics, err := h.analytics.PortfolioMetrics(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// PortfolioReport returns metrics, XIRR, and insights in one response
// @Summary     Portfolio report
// @Description Combined metrics, annualized XIRR, and derived insights
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} services.PortfolioReport
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /portfolios/{id}/report [get]
func (h *AnalyticsHandler) PortfolioReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.analytics.PortfolioReport(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// UserMetrics returns combined metrics across all portfolios
// @Summary     Overall metrics
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} analytics.Metrics
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) UserMetrics(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics, err := h.analytics.UserMetrics(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// History returns the user's net worth time series
// @Summary     Net worth history
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window in days (default 30)"
// @Success     200 {array} services.HistoryPoint
// @Router      /analytics/history [get]
func (h *AnalyticsHandler) History(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := parseDays(c, 30)
	to := time.Now()
	from := to.AddDate(0, 0, -days)

	points, err := h.snapshots.History(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// Comparison indexes the user's net worth against the market benchmark
// @Summary     Benchmark comparison
// @Description Net worth vs benchmark, both series rebased to 100
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       days query int false "Window in days (default 30)"
// @Success     200 {object} services.BenchmarkComparison
// @Failure     404 {object} ErrorResponse "Benchmark data unavailable"
// @Router      /analytics/comparison [get]
func (h *AnalyticsHandler) Comparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	days := parseDays(c, 30)
	cmp, err := h.snapshots.Comparison(c.Request.Context(), userID, days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cmp)
}

// RecordSnapshot stores a net worth snapshot for the user right now
// @Summary     Record a snapshot
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} models.Snapshot
// @Router      /analytics/snapshots [post]
func (h *AnalyticsHandler) RecordSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.snapshots.RecordSnapshot(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, snapshot)
}

// parseDays reads the days query parameter, clamped to [1, 1825].
func parseDays(c *gin.Context, fallback int) int {
	raw := c.Query("days")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return fallback
	}
	if days > 1825 {
		return 1825
	}
	return days
}
