package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finfolio/internal/errors"
	"finfolio/internal/pagination"
	"finfolio/internal/services"
)

// PortfolioHandler handles portfolio CRUD requests
type PortfolioHandler struct {
	portfolios services.PortfolioServicer
	audit      services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolios services.PortfolioServicer, audit services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, audit: audit}
}

// CreatePortfolioRequest represents the portfolio creation payload
type CreatePortfolioRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Description  string `json:"description" binding:"max=1000"`
	BaseCurrency string `json:"base_currency" binding:"omitempty,iso4217"`
}

// UpdatePortfolioRequest represents the portfolio update payload
type UpdatePortfolioRequest struct {
	Name        string `json:"name" binding:"max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// Create creates a portfolio
// @Summary     Create a portfolio
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePortfolioRequest true "Portfolio data"
// @Success     201 {object} models.Portfolio
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /portfolios [post]
func (h *PortfolioHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolios.CreatePortfolio(userID, req.Name, req.Description, req.BaseCurrency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "portfolio.create", "portfolio", portfolio.ID, c.ClientIP(), nil)
	c.JSON(http.StatusCreated, portfolio)
}

// List returns the user's portfolios
// @Summary     List portfolios
// @Tags        portfolios
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Portfolio]
// @Router      /portfolios [get]
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.portfolios.GetUserPortfolios(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one portfolio
// @Summary     Get a portfolio
// @Tags        portfolios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} models.Portfolio
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) Get(c *gin.Context) {
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

	portfolio, err := h.portfolios.GetPortfolioByID(userID, portfolioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// Update updates a portfolio's name and description
// @Summary     Update a portfolio
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Param       request body UpdatePortfolioRequest true "Fields to update"
// @Success     200 {object} models.Portfolio
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /portfolios/{id} [put]
func (h *PortfolioHandler) Update(c *gin.Context) {
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

	var req UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	portfolio, err := h.portfolios.UpdatePortfolio(userID, portfolioID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "portfolio.update", "portfolio", portfolio.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, portfolio)
}

// Delete removes a portfolio and its assets
// @Summary     Delete a portfolio
// @Tags        portfolios
// @Security    BearerAuth
// @Param       id path string true "Portfolio ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) Delete(c *gin.Context) {
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

	if err := h.portfolios.DeletePortfolio(userID, portfolioID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "portfolio.delete", "portfolio", portfolioID, c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}
