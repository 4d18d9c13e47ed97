package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
)

// SavingsHandler handles savings goal and transaction requests.
type SavingsHandler struct {
	savingsService services.SavingsServicer
	profileService services.ProfileServicer
	auditService   services.AuditServicer
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsService services.SavingsServicer, profileService services.ProfileServicer, auditService services.AuditServicer) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService, profileService: profileService, auditService: auditService}
}

// CreateGoalRequest represents the payload for creating a savings goal
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	Currency     models.Currency `json:"currency" binding:"required,ledger_currency"`
	TargetDate   *string         `json:"target_date"`
	GoalType     models.GoalType `json:"goal_type" binding:"required,goal_type"`
	Description  string          `json:"description" binding:"max=500"`
}

// UpdateGoalRequest represents the payload for updating a savings goal.
// All fields are optional; omitted fields keep their current value.
type UpdateGoalRequest struct {
	Name         string           `json:"name" binding:"omitempty,max=200"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	TargetDate   *string          `json:"target_date"`
	GoalType     *models.GoalType `json:"goal_type" binding:"omitempty,goal_type"`
	Description  *string          `json:"description"`
	IsActive     *bool            `json:"is_active"`
}

// RecordTransactionRequest represents the payload for a deposit or withdrawal
type RecordTransactionRequest struct {
	Amount      decimal.Decimal               `json:"amount" binding:"required"`
	Type        models.SavingsTransactionType `json:"type" binding:"required,savings_tx_type"`
	Description string                        `json:"description" binding:"max=500"`
	Date        *string                       `json:"date"`
}

// CreateGoal creates a savings goal
// @Summary     Create a savings goal
// @Description Create a savings goal owned by the authenticated user, starting at a zero balance
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.SavingsGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals [post]
func (h *SavingsHandler) CreateGoal(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var targetDate *time.Time
	if req.TargetDate != nil && *req.TargetDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.TargetDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		targetDate = &parsed
	}

	goal, err := h.savingsService.CreateGoal(caller, req.Name, req.TargetAmount, req.Currency, targetDate, req.GoalType, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "CREATE_GOAL", "savings_goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_amount": req.TargetAmount.String()})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoal retrieves one savings goal
// @Summary     Get a savings goal
// @Description Get one of the authenticated user's savings goals by ID
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.SavingsGoal "Goal"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals/{id} [get]
func (h *SavingsHandler) GetGoal(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.savingsService.GetGoalByID(caller, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// ListGoals lists the caller's savings goals
// @Summary     List savings goals
// @Description Get a paginated list of the authenticated user's savings goals
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Param       active    query bool false "Only active goals"
// @Success     200 {object} pagination.PageResponse[models.SavingsGoal] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals [get]
func (h *SavingsHandler) ListGoals(c *gin.Context) {
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

	activeOnly := c.Query("active") == "true"

	result, err := h.savingsService.ListGoals(caller, page, activeOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateGoal updates a savings goal
// @Summary     Update a savings goal
// @Description Update the mutable fields of a goal. The balance cannot be set directly.
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Goal fields"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals/{id} [put]
func (h *SavingsHandler) UpdateGoal(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var targetDate *time.Time
	if req.TargetDate != nil && *req.TargetDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.TargetDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		targetDate = &parsed
	}

	goal, err := h.savingsService.UpdateGoal(caller, c.Param("id"), req.Name, req.TargetAmount, targetDate, req.GoalType, req.Description, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "UPDATE_GOAL", "savings_goal", goal.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal removes a savings goal and its transactions
// @Summary     Delete a savings goal
// @Description Delete a goal together with its transaction history
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals/{id} [delete]
func (h *SavingsHandler) DeleteGoal(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID := c.Param("id")
	if err := h.savingsService.DeleteGoal(caller, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "DELETE_GOAL", "savings_goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Savings goal deleted successfully"})
}

// RecordTransaction records a deposit or withdrawal against a goal
// @Summary     Record a savings transaction
// @Description Record a deposit or withdrawal; the goal's balance is adjusted in the same database transaction
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Goal ID"
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} models.SavingsTransaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals/{id}/transactions [post]
func (h *SavingsHandler) RecordTransaction(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactionDate := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		transactionDate = parsed
	}

	transaction, err := h.savingsService.RecordTransaction(caller, c.Param("id"), req.Amount, req.Type, req.Description, transactionDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "RECORD_SAVINGS_TRANSACTION", "savings_transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"goal_id": transaction.GoalID, "type": req.Type, "amount": req.Amount.String()})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions lists a goal's transactions
// @Summary     List savings transactions
// @Description Get a paginated list of a goal's deposit and withdrawal history
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Goal ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.SavingsTransaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/goals/{id}/transactions [get]
func (h *SavingsHandler) ListTransactions(c *gin.Context) {
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

	result, err := h.savingsService.ListTransactions(caller, c.Param("id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTransaction removes a savings transaction, reversing its effect
// @Summary     Delete a savings transaction
// @Description Delete a transaction; the goal's balance is adjusted back in the same database transaction
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /savings/transactions/{id} [delete]
func (h *SavingsHandler) DeleteTransaction(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID := c.Param("id")
	if err := h.savingsService.DeleteTransaction(caller, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(caller.UserID, "DELETE_SAVINGS_TRANSACTION", "savings_transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Savings transaction deleted successfully"})
}

// VerifyGoalBalance reconciles a goal's stored balance
// @Summary     Verify a goal's balance
// @Description Recompute the balance from the transaction history and compare it to the stored value
// @Tags        savings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     200 {object} services.BalanceReport "Balance is consistent"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Stored balance diverges from history"
// @Router      /savings/goals/{id}/verify [get]
func (h *SavingsHandler) VerifyGoalBalance(c *gin.Context) {
	caller, err := resolveCaller(c, h.profileService)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.savingsService.VerifyGoalBalance(caller, c.Param("id"))
	if err != nil {
		// A mismatch still carries the report so operators can see both
		// balances alongside the error.
		if report != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				c.JSON(appErr.StatusCode, gin.H{
					"error": gin.H{
						"code":    appErr.Code,
						"message": appErr.Message,
					},
					"report": report,
				})
				return
			}
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
