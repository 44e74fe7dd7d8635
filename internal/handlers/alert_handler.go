package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finfolio/internal/errors"
	"finfolio/internal/models"
	"finfolio/internal/pagination"
	"finfolio/internal/services"
)

// AlertHandler handles alert requests
type AlertHandler struct {
	alerts services.AlertServicer
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alerts services.AlertServicer) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// CreateAlertRequest represents the alert creation payload
type CreateAlertRequest struct {
	AssetID     *string    `json:"asset_id"`
	Kind        string     `json:"kind" binding:"required,alert_kind"`
	Message     string     `json:"message" binding:"required,max=1000"`
	TriggerAt   *time.Time `json:"trigger_at"`
	TargetPrice float64    `json:"target_price" binding:"gte=0"`
}

// Create creates an alert
// @Summary     Create an alert
// @Tags        alerts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAlertRequest true "Alert data"
// @Success     201 {object} models.Alert
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /alerts [post]
func (h *AlertHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	alert, err := h.alerts.CreateAlert(userID, req.AssetID, models.AlertKind(req.Kind), req.Message, req.TriggerAt, req.TargetPrice)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, alert)
}

// List returns the user's alerts
// @Summary     List alerts
// @Tags        alerts
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Param       unread query bool false "Unread alerts only"
// @Success     200 {object} pagination.PageResponse[models.Alert]
// @Router      /alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
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

	unreadOnly := c.Query("unread") == "true"
	result, err := h.alerts.GetUserAlerts(userID, page, unreadOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkRead marks an alert as read
// @Summary     Mark an alert read
// @Tags        alerts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Alert ID"
// @Success     200 {object} models.Alert
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /alerts/{id}/read [post]
func (h *AlertHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alertID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	alert, err := h.alerts.MarkRead(userID, alertID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// Delete removes an alert
// @Summary     Delete an alert
// @Tags        alerts
// @Security    BearerAuth
// @Param       id path string true "Alert ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /alerts/{id} [delete]
func (h *AlertHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	alertID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.alerts.DeleteAlert(userID, alertID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Generate scans the user's assets and creates due system alerts
// @Summary     Generate alerts
// @Description Create maturity alerts and fire crossed price targets
// @Tags        alerts
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Alert
// @Router      /alerts/generate [post]
func (h *AlertHandler) Generate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	created, err := h.alerts.GenerateAlerts(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, created)
}
