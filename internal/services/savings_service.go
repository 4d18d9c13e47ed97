package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/logger"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
)

// savingsService handles savings goals and keeps each goal's
// current_amount equal to the signed sum of its transactions. Every
// mutation of a transaction row and its balance adjustment happen in
// one database transaction, with the goal row locked first so that
// concurrent mutations against the same goal serialize.
type savingsService struct {
	db *gorm.DB
}

// NewSavingsService creates a new SavingsServicer.
func NewSavingsService(db *gorm.DB) SavingsServicer {
	return &savingsService{db: db}
}

// validateMoney checks that an amount is positive with at most two
// fractional digits.
func validateMoney(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(2)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must have at most two decimal places")
	}
	return nil
}

// CreateGoal creates a savings goal with a zero starting balance.
func (s *savingsService) CreateGoal(caller authz.Caller, name string, targetAmount decimal.Decimal, currency models.Currency, targetDate *time.Time, goalType models.GoalType, description string) (*models.SavingsGoal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if err := validateMoney(targetAmount); err != nil {
		return nil, err
	}
	if goalType == "" {
		goalType = models.GoalTypeOther
	}

	if err := authz.Authorize(caller, authz.ResourceSavingsGoal, authz.ActionCreate, authz.Row{OwnerID: caller.UserID}); err != nil {
		return nil, err
	}

	goal := &models.SavingsGoal{
		UserID:        caller.UserID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		Currency:      currency,
		TargetDate:    targetDate,
		GoalType:      goalType,
		Description:   description,
		IsActive:      true,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoalByID retrieves a goal. A goal owned by someone else is
// reported as not found.
func (s *savingsService) GetGoalByID(caller authz.Caller, goalID string) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	if err := s.db.First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := authz.Authorize(caller, authz.ResourceSavingsGoal, authz.ActionRead, authz.Row{OwnerID: goal.UserID}); err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals retrieves the caller's goals. The owner scope is applied in
// the query itself so other users' rows never enter the result set.
func (s *savingsService) ListGoals(caller authz.Caller, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.SavingsGoal], error) {
	page.Defaults()

	base := s.db.Model(&models.SavingsGoal{}).Where("user_id = ?", caller.UserID)
	if activeOnly {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.SavingsGoal
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateGoal updates goal attributes. The derived balance is not an
// updatable field on any path through here.
func (s *savingsService) UpdateGoal(caller authz.Caller, goalID, name string, targetAmount *decimal.Decimal, targetDate *time.Time, goalType *models.GoalType, description *string, isActive *bool) (*models.SavingsGoal, error) {
	goal, err := s.GetGoalByID(caller, goalID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ResourceSavingsGoal, authz.ActionUpdate, authz.Row{OwnerID: goal.UserID}); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if targetAmount != nil {
		if err := validateMoney(*targetAmount); err != nil {
			return nil, err
		}
		updates["target_amount"] = *targetAmount
	}
	if targetDate != nil {
		updates["target_date"] = *targetDate
	}
	if goalType != nil {
		updates["goal_type"] = *goalType
	}
	if description != nil {
		updates["description"] = *description
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if len(updates) == 0 {
		return goal, nil
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// DeleteGoal removes a goal together with its transaction history.
func (s *savingsService) DeleteGoal(caller authz.Caller, goalID string) error {
	goal, err := s.GetGoalByID(caller, goalID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(caller, authz.ResourceSavingsGoal, authz.ActionDelete, authz.Row{OwnerID: goal.UserID}); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&models.SavingsTransaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// RecordTransaction inserts a savings transaction and applies its
// signed amount to the goal's balance. Both writes commit together or
// not at all; the goal row is locked for the duration so concurrent
// transactions against the same goal cannot lose an adjustment.
func (s *savingsService) RecordTransaction(caller authz.Caller, goalID string, amount decimal.Decimal, txType models.SavingsTransactionType, description string, date time.Time) (*models.SavingsTransaction, error) {
	if err := validateMoney(amount); err != nil {
		return nil, err
	}
	if txType != models.SavingsDeposit && txType != models.SavingsWithdrawal {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be deposit or withdrawal")
	}
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.SavingsTransaction{
		GoalID:          goalID,
		Amount:          amount,
		Type:            txType,
		Description:     description,
		TransactionDate: date,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.SavingsGoal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&goal, "id = ?", goalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Ownership is transitive through the goal; the check runs on
		// the locked row so the snapshot it sees is the one the
		// balance update will apply to. A goal the caller cannot
		// insert into is a goal the caller cannot see.
		if !authz.Can(caller, authz.ResourceSavingsTransaction, authz.ActionCreate, authz.Row{OwnerID: goal.UserID}) {
			return apperrors.ErrGoalNotFound
		}

		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		newBalance := goal.CurrentAmount.Add(transaction.SignedAmount())
		if err := tx.Model(&goal).Update("current_amount", newBalance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// DeleteTransaction removes a savings transaction and reverses its
// original balance adjustment under the same locking discipline as
// RecordTransaction.
func (s *savingsService) DeleteTransaction(caller authz.Caller, transactionID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var transaction models.SavingsTransaction
		if err := tx.First(&transaction, "id = ?", transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTransactionNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var goal models.SavingsGoal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&goal, "id = ?", transaction.GoalID).Error; err != nil {
			// A transaction without its goal is itself an integrity
			// breach; surface it as an internal error either way.
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := authz.Authorize(caller, authz.ResourceSavingsTransaction, authz.ActionDelete, authz.Row{OwnerID: goal.UserID}); err != nil {
			return err
		}

		if err := tx.Delete(&transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		newBalance := goal.CurrentAmount.Sub(transaction.SignedAmount())
		if err := tx.Model(&goal).Update("current_amount", newBalance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ListTransactions retrieves the transaction history of a goal the
// caller owns.
func (s *savingsService) ListTransactions(caller authz.Caller, goalID string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsTransaction], error) {
	goal, err := s.GetGoalByID(caller, goalID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ResourceSavingsTransaction, authz.ActionRead, authz.Row{OwnerID: goal.UserID}); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.SavingsTransaction{}).Where("goal_id = ?", goal.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.SavingsTransaction
	if err := base.Scopes(pagination.Paginate(page)).Order("transaction_date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// VerifyGoalBalance recomputes the fold over a goal's transactions and
// compares it with the stored balance. A divergence means an invariant
// breach somewhere outside the supported write paths; it is logged as
// an error and reported for reconciliation.
func (s *savingsService) VerifyGoalBalance(caller authz.Caller, goalID string) (*BalanceReport, error) {
	goal, err := s.GetGoalByID(caller, goalID)
	if err != nil {
		return nil, err
	}

	var transactions []models.SavingsTransaction
	if err := s.db.Where("goal_id = ?", goal.ID).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	computed := decimal.Zero
	for i := range transactions {
		computed = computed.Add(transactions[i].SignedAmount())
	}

	report := &BalanceReport{
		GoalID:           goal.ID,
		StoredBalance:    goal.CurrentAmount,
		ComputedBalance:  computed,
		TransactionCount: int64(len(transactions)),
		Consistent:       goal.CurrentAmount.Equal(computed),
	}

	if !report.Consistent {
		logger.Get().Errorw("savings goal balance diverges from transaction history",
			"goal_id", goal.ID,
			"stored", goal.CurrentAmount.String(),
			"computed", computed.String(),
		)
		return report, apperrors.ErrBalanceMismatch
	}
	return report, nil
}
