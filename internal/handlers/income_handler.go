package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
)

// IncomeHandler handles income record requests.
type IncomeHandler struct {
	incomeService  services.IncomeServicer
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeService services.IncomeServicer, profileService services.ProfileServicer, auditService services.AuditServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, profileService: profileService, auditService: auditService}
}

// IncomeRequest represents the payload for creating or updating an income record
type IncomeRequest struct {
	Quarter     models.Quarter  `json:"quarter" binding:"required,quarter"`
	Year        int             `json:"year" binding:"required,min=2000,max=2100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    models.Currency `json:"currency" binding:"required,ledger_currency"`
	Source      string          `json:"source" binding:"required,max=200"`
	Description string          `json:"description" binding:"max=500"`
}

// parseLedgerFilter reads the shared quarter/year/currency query filters.
func parseLedgerFilter(c *gin.Context) (services.LedgerFilter, error) {
	var filter services.LedgerFilter
	if v := c.Query("quarter"); v != "" {
		q := models.Quarter(v)
		filter.Quarter = &q
	}
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year")
		}
		filter.Year = &year
	}
	if v := c.Query("currency"); v != "" {
		cur := models.Currency(v)
		filter.Currency = &cur
	}
	return filter, nil
}

// CreateIncome records an income entry
// @Summary     Create an income record
// @Description Record income for a quarter, owned by the authenticated user
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body IncomeRequest true "Income details"
// @Success     201 {object} models.IncomeRecord "Income record created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [post]
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.incomeService.CreateIncome(caller, req.Quarter, req.Year, req.Amount, req.Currency, req.Source, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "CREATE_INCOME", "income_record", record.ID, c.ClientIP(),
		map[string]interface{}{"quarter": req.Quarter, "year": req.Year, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"income": record})
}

// GetIncome retrieves one income record
// @Summary     Get an income record
// @Description Get one of the authenticated user's income records by ID
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income record ID"
// @Success     200 {object} models.IncomeRecord "Income record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [get]
func (h *IncomeHandler) GetIncome(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.incomeService.GetIncomeByID(caller, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": record})
}

// ListIncome lists the caller's income records
// @Summary     List income records
// @Description Get a paginated list of the authenticated user's income records
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       quarter   query string false "Filter by quarter (Q1..Q4)"
// @Param       year      query int    false "Filter by year"
// @Param       currency  query string false "Filter by currency (USD, GHS)"
// @Success     200 {object} pagination.PageResponse[models.IncomeRecord] "Paginated income records"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income [get]
func (h *IncomeHandler) ListIncome(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseLedgerFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.incomeService.ListIncome(caller, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateIncome updates an income record
// @Summary     Update an income record
// @Description Replace the fields of one of the authenticated user's income records
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string        true "Income record ID"
// @Param       request body IncomeRequest true "Income details"
// @Success     200 {object} models.IncomeRecord "Updated income record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [put]
func (h *IncomeHandler) UpdateIncome(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.incomeService.UpdateIncome(caller, c.Param("id"), req.Quarter, req.Year, req.Amount, req.Currency, req.Source, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "UPDATE_INCOME", "income_record", record.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"income": record})
}

// DeleteIncome removes an income record
// @Summary     Delete an income record
// @Description Delete one of the authenticated user's income records
// @Tags        income
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income record ID"
// @Success     200 {object} MessageResponse "Income record deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Income record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /income/{id} [delete]
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID := c.Param("id")
	if err := h.incomeService.DeleteIncome(caller, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "DELETE_INCOME", "income_record", incomeID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Income record deleted successfully"})
}
