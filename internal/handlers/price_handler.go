package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "finfolio/internal/errors"
	"finfolio/internal/pricing"
)

// PriceQuoter is the slice of the pricing service the handler needs.
type PriceQuoter interface {
	GetStockPrice(ctx context.Context, symbol string) (*pricing.Quote, error)
	GetCryptoPrice(ctx context.Context, coinID string) (*pricing.Quote, error)
	GetGoldPrice(ctx context.Context) (*pricing.Quote, error)
	GetSilverPrice(ctx context.Context) (*pricing.Quote, error)
	GetCommodityPrice(ctx context.Context, name string) (*pricing.Quote, error)
}

// PriceHandler proxies market price lookups through the pricing service.
// Responses are served from the TTL cache when fresh.
type PriceHandler struct {
	prices PriceQuoter
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(prices PriceQuoter) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// Stock returns the current quote for a stock ticker
// @Summary     Stock quote
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Ticker symbol"
// @Success     200 {object} pricing.Quote
// @Failure     404 {object} ErrorResponse "Symbol unknown or market data unavailable"
// @Router      /prices/stocks/{symbol} [get]
func (h *PriceHandler) Stock(c *gin.Context) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required"))
		return
	}

	quote, err := h.prices.GetStockPrice(c.Request.Context(), symbol)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrPriceUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Crypto returns the current quote for a CoinGecko coin ID
// @Summary     Crypto quote
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Coin ID (e.g. bitcoin)"
// @Success     200 {object} pricing.Quote
// @Failure     404 {object} ErrorResponse "Coin unknown or market data unavailable"
// @Router      /prices/crypto/{id} [get]
func (h *PriceHandler) Crypto(c *gin.Context) {
	coinID := strings.TrimSpace(c.Param("id"))
	if coinID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "coin id is required"))
		return
	}

	quote, err := h.prices.GetCryptoPrice(c.Request.Context(), coinID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrPriceUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Gold returns the current gold futures quote
// @Summary     Gold quote
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} pricing.Quote
// @Failure     404 {object} ErrorResponse "Market data unavailable"
// @Router      /prices/gold [get]
func (h *PriceHandler) Gold(c *gin.Context) {
	quote, err := h.prices.GetGoldPrice(c.Request.Context())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrPriceUnavailable, err))
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Silver returns the current silver futures quote
// @Summary     Silver quote
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} pricing.Quote
// @Failure     404 {object} ErrorResponse "Market data unavailable"
// @Router      /prices/silver [get]
func (h *PriceHandler) Silver(c *gin.Context) {
	quote, err := h.prices.GetSilverPrice(c.Request.Context())
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrPriceUnavailable, err))
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Commodity returns the current quote for a named commodity
// @Summary     Commodity quote
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       name path string true "Commodity name (oil, platinum, ...)"
// @Success     200 {object} pricing.Quote
// @Failure     404 {object} ErrorResponse "Commodity unknown or market data unavailable"
// @Router      /prices/commodities/{name} [get]
func (h *PriceHandler) Commodity(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "commodity name is required"))
		return
	}

	quote, err := h.prices.GetCommodityPrice(c.Request.Context(), name)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrPriceUnavailable, err))
		return
	}

	c.JSON(http.StatusOK, quote)
}
