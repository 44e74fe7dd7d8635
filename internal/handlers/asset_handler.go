package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finfolio/internal/analytics"
	apperrors "finfolio/internal/errors"
	"finfolio/internal/pagination"
	"finfolio/internal/services"
)

// AssetHandler handles asset CRUD requests
type AssetHandler struct {
	assets services.AssetServicer
	audit  services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assets services.AssetServicer, audit services.AuditServicer) *AssetHandler {
	return &AssetHandler{assets: assets, audit: audit}
}

// CreateAssetRequest represents the asset creation payload
type CreateAssetRequest struct {
	Category      string     `json:"category" binding:"required,asset_category"`
	Symbol        string     `json:"symbol" binding:"max=64"`
	Name          string     `json:"name" binding:"required,max=255"`
	Quantity      float64    `json:"quantity" binding:"required,gt=0"`
	PurchasePrice float64    `json:"purchase_price" binding:"gte=0"`
	PurchaseDate  time.Time  `json:"purchase_date" binding:"required"`
	Currency      string     `json:"currency" binding:"omitempty,iso4217"`
	Platform      string     `json:"platform" binding:"max=255"`
	Notes         string     `json:"notes" binding:"max=2000"`
	MaturityDate  *time.Time `json:"maturity_date"`
	InterestRate  float64    `json:"interest_rate" binding:"gte=0,lte=100"`
	DividendYield float64    `json:"dividend_yield" binding:"gte=0,lte=100"`
}

// UpdateAssetRequest represents the asset update payload. Omitted fields
// keep their stored values.
type UpdateAssetRequest struct {
	Name          *string    `json:"name"`
	Quantity      *float64   `json:"quantity"`
	PurchasePrice *float64   `json:"purchase_price"`
	CurrentPrice  *float64   `json:"current_price"`
	Platform      *string    `json:"platform"`
	Notes         *string    `json:"notes"`
	MaturityDate  *time.Time `json:"maturity_date"`
	InterestRate  *float64   `json:"interest_rate"`
	DividendYield *float64   `json:"dividend_yield"`
}

// Create adds an asset to a portfolio
// @Summary     Add an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       request body CreateAssetRequest true "Asset data"
// @Success     201 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
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

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assets.CreateAsset(userID, portfolioID, services.AssetInput{
		Category:      analytics.Category(req.Category),
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		Currency:      req.Currency,
		Platform:      req.Platform,
		Notes:         req.Notes,
		MaturityDate:  req.MaturityDate,
		InterestRate:  req.InterestRate,
		DividendYield: req.DividendYield,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "asset.create", "asset", asset.ID, c.ClientIP(), map[string]interface{}{
		"category": asset.Category,
		"name":     asset.Name,
	})
	c.JSON(http.StatusCreated, asset)
}

// List returns a portfolio's assets
// @Summary     List assets
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       category query string false "Filter by category"
// @Param       liability query bool false "Filter by liability flag"
// @Success     200 {object} pagination.PageResponse[models.Asset]
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/assets [get]
func (h *AssetHandler) List(c *gin.Context) {
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

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AssetFilter{}
	if raw := c.Query("category"); raw != "" {
		category := analytics.Category(raw)
		if !category.Valid() {
			respondWithError(c, apperrors.ErrInvalidCategory)
			return
		}
		filter.Category = &category
	}
	if raw := c.Query("liability"); raw != "" {
		liability := raw == "true"
		filter.Liability = &liability
	}

	result, err := h.assets.GetPortfolioAssets(userID, portfolioID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one asset
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assets.GetAssetByID(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// Update updates an asset
// @Summary     Update an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.Asset
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assets.UpdateAsset(userID, assetID, services.AssetUpdate{
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		Platform:      req.Platform,
		Notes:         req.Notes,
		MaturityDate:  req.MaturityDate,
		InterestRate:  req.InterestRate,
		DividendYield: req.DividendYield,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "asset.update", "asset", asset.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, asset)
}

// Delete removes an asset
// @Summary     Delete an asset
// @Tags        assets
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assets.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "asset.delete", "asset", assetID, c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}
