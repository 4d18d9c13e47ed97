package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
)

// ExpenseHandler handles expense record requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, profileService services.ProfileServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, profileService: profileService, auditService: auditService}
}

// ExpenseRequest represents the payload for creating or updating an expense record
type ExpenseRequest struct {
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Quarter     models.Quarter  `json:"quarter" binding:"required,quarter"`
	Year        int             `json:"year" binding:"required,min=2000,max=2100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    models.Currency `json:"currency" binding:"required,ledger_currency"`
	ExpenseDate *string         `json:"expense_date"`
	Description string          `json:"description" binding:"max=500"`
}

// CreateExpense records an expense
// @Summary     Create an expense record
// @Description Record an expense against a category, owned by the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} models.ExpenseRecord "Expense record created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenseDate := time.Now()
	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.ExpenseDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		expenseDate = parsed
	}

	record, err := h.expenseService.CreateExpense(caller, req.CategoryID, req.Quarter, req.Year, req.Amount, req.Currency, expenseDate, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "CREATE_EXPENSE", "expense_record", record.ID, c.ClientIP(),
		map[string]interface{}{"category_id": req.CategoryID, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"expense": record})
}

// GetExpense retrieves one expense record
// @Summary     Get an expense record
// @Description Get one of the authenticated user's expense records by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense record ID"
// @Success     200 {object} models.ExpenseRecord "Expense record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.expenseService.GetExpenseByID(caller, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": record})
}

// ListExpenses lists the caller's expense records
// @Summary     List expense records
// @Description Get a paginated list of the authenticated user's expense records
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       quarter   query string false "Filter by quarter (Q1..Q4)"
// @Param       year      query int    false "Filter by year"
// @Param       currency  query string false "Filter by currency (USD, GHS)"
// @Success     200 {object} pagination.PageResponse[models.ExpenseRecord] "Paginated expense records"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
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

	result, err := h.expenseService.ListExpenses(caller, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateExpense updates an expense record
// @Summary     Update an expense record
// @Description Replace the fields of one of the authenticated user's expense records
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Expense record ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} models.ExpenseRecord "Updated expense record"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense record or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var expenseDate time.Time
	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.ExpenseDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		expenseDate = parsed
	}

	record, err := h.expenseService.UpdateExpense(caller, c.Param("id"), req.CategoryID, req.Quarter, req.Year, req.Amount, req.Currency, expenseDate, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "UPDATE_EXPENSE", "expense_record", record.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"expense": record})
}

// DeleteExpense removes an expense record
// @Summary     Delete an expense record
// @Description Delete one of the authenticated user's expense records
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense record ID"
// @Success     200 {object} MessageResponse "Expense record deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense record not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID := c.Param("id")
	if err := h.expenseService.DeleteExpense(caller, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "DELETE_EXPENSE", "expense_record", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense record deleted successfully"})
}
