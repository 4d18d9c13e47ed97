package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
)

// RateHandler handles currency rate requests.
type RateHandler struct {
	rateService    services.RateServicer
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService services.RateServicer, profileService services.ProfileServicer, auditService services.AuditServicer) *RateHandler {
	return &RateHandler{rateService: rateService, profileService: profileService, auditService: auditService}
}

// CreateRateRequest represents the payload for creating a rate row
type CreateRateRequest struct {
	FromCurrency models.Currency `json:"from_currency" binding:"required,ledger_currency"`
	ToCurrency   models.Currency `json:"to_currency" binding:"required,ledger_currency"`
	RateDate     string          `json:"rate_date" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// UpdateRateRequest represents the payload for changing a rate value
type UpdateRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// ListRates lists currency rates
// @Summary     List currency rates
// @Description Get rate rows, optionally filtered by pair and date. Readable by any authenticated user.
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       from      query string false "Filter by source currency (USD, GHS)"
// @Param       to        query string false "Filter by target currency (USD, GHS)"
// @Param       date      query string false "Filter by date (YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.CurrencyRate] "Paginated rates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates [get]
func (h *RateHandler) ListRates(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.RateFilter
	if v := c.Query("from"); v != "" {
		cur := models.Currency(v)
		filter.From = &cur
	}
	if v := c.Query("to"); v != "" {
		cur := models.Currency(v)
		filter.To = &cur
	}
	if v := c.Query("date"); v != "" {
		date, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		filter.Date = &date
	}

	result, err := h.rateService.ListRates(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateRate adds a rate row (admin)
// @Summary     Create a currency rate
// @Description Add a rate row for a currency pair and date. Admin only; one row per (from, to, date).
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRateRequest true "Rate details"
// @Success     201 {object} models.CurrencyRate "Rate created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     409 {object} ErrorResponse "Rate already exists for the pair and date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates [post]
func (h *RateHandler) CreateRate(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.RateDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid rate_date format, use RFC3339 or YYYY-MM-DD"))
		return
	}

	rate, err := h.rateService.CreateRate(caller, req.FromCurrency, req.ToCurrency, date, req.Rate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "CREATE_RATE", "currency_rate", rate.ID, c.ClientIP(),
		map[string]interface{}{"from": req.FromCurrency, "to": req.ToCurrency, "rate": req.Rate.String()})

	c.JSON(http.StatusCreated, gin.H{"rate": rate})
}

// UpdateRate changes a rate value (admin)
// @Summary     Update a currency rate
// @Description Change the value of an existing rate row. Admin only.
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Rate ID"
// @Param       request body UpdateRateRequest true "New rate value"
// @Success     200 {object} models.CurrencyRate "Updated rate"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Rate not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates/{id} [put]
func (h *RateHandler) UpdateRate(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rate, err := h.rateService.UpdateRate(caller, c.Param("id"), req.Rate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "UPDATE_RATE", "currency_rate", rate.ID, c.ClientIP(),
		map[string]interface{}{"rate": req.Rate.String()})

	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

// DeleteRate removes a rate row (admin)
// @Summary     Delete a currency rate
// @Description Delete a rate row. Admin only.
// @Tags        rates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Rate ID"
// @Success     200 {object} MessageResponse "Rate deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Rate not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates/{id} [delete]
func (h *RateHandler) DeleteRate(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rateID := c.Param("id")
	if err := h.rateService.DeleteRate(caller, rateID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "DELETE_RATE", "currency_rate", rateID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Currency rate deleted successfully"})
}
