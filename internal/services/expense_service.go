package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
)

// expenseService handles expense record CRUD.
type expenseService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, categoryService CategoryServicer) ExpenseServicer {
	return &expenseService{db: db, categoryService: categoryService}
}

// CreateExpense creates an expense record owned by the caller. The
// referenced category must exist; a dangling reference fails the whole
// insert with no partial row.
func (s *expenseService) CreateExpense(caller authz.Caller, categoryID string, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, expenseDate time.Time, description string) (*models.ExpenseRecord, error) {
	if err := validateMoney(amount); err != nil {
		return nil, err
	}
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if expenseDate.IsZero() {
		expenseDate = time.Now()
	}
	if err := authz.Authorize(caller, authz.ResourceExpenseRecord, authz.ActionCreate, authz.Row{OwnerID: caller.UserID}); err != nil {
		return nil, err
	}

	if _, err := s.categoryService.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	record := &models.ExpenseRecord{
		UserID:      caller.UserID,
		CategoryID:  categoryID,
		Quarter:     quarter,
		Year:        year,
		Amount:      amount,
		Currency:    currency,
		ExpenseDate: expenseDate,
		Description: description,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record, nil
}

// GetExpenseByID retrieves one expense record with its category;
// rows owned by other users surface as not found.
func (s *expenseService) GetExpenseByID(caller authz.Caller, expenseID string) (*models.ExpenseRecord, error) {
	var record models.ExpenseRecord
	if err := s.db.Preload("Category").First(&record, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := authz.Authorize(caller, authz.ResourceExpenseRecord, authz.ActionRead, authz.Row{OwnerID: record.UserID}); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListExpenses retrieves the caller's expense records with optional
// quarter/year/currency filters.
func (s *expenseService) ListExpenses(caller authz.Caller, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.ExpenseRecord], error) {
	page.Defaults()

	base := applyLedgerFilters(s.db.Model(&models.ExpenseRecord{}).Where("user_id = ?", caller.UserID), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.ExpenseRecord
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("expense_date DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(records, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateExpense replaces the mutable fields of an expense record.
func (s *expenseService) UpdateExpense(caller authz.Caller, expenseID, categoryID string, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, expenseDate time.Time, description string) (*models.ExpenseRecord, error) {
	record, err := s.GetExpenseByID(caller, expenseID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ResourceExpenseRecord, authz.ActionUpdate, authz.Row{OwnerID: record.UserID}); err != nil {
		return nil, err
	}
	if err := validateMoney(amount); err != nil {
		return nil, err
	}
	if categoryID != "" && categoryID != record.CategoryID {
		if _, err := s.categoryService.GetCategoryByID(categoryID); err != nil {
			return nil, err
		}
		record.CategoryID = categoryID
	}

	updates := map[string]interface{}{
		"category_id": record.CategoryID,
		"quarter":     quarter,
		"year":        year,
		"amount":      amount,
		"currency":    currency,
		"description": description,
	}
	if !expenseDate.IsZero() {
		updates["expense_date"] = expenseDate
	}
	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record, nil
}

// DeleteExpense removes an expense record.
func (s *expenseService) DeleteExpense(caller authz.Caller, expenseID string) error {
	record, err := s.GetExpenseByID(caller, expenseID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(caller, authz.ResourceExpenseRecord, authz.ActionDelete, authz.Row{OwnerID: record.UserID}); err != nil {
		return err
	}
	if err := s.db.Delete(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
