package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
)

// incomeService handles income record CRUD.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// CreateIncome creates an income record owned by the caller. The owner
// is always the caller; there is no way to insert a row for someone
// else.
func (s *incomeService) CreateIncome(caller authz.Caller, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, source, description string) (*models.IncomeRecord, error) {
	if err := validateMoney(amount); err != nil {
		return nil, err
	}
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source is required")
	}
	if err := authz.Authorize(caller, authz.ResourceIncomeRecord, authz.ActionCreate, authz.Row{OwnerID: caller.UserID}); err != nil {
		return nil, err
	}

	record := &models.IncomeRecord{
		UserID:      caller.UserID,
		Quarter:     quarter,
		Year:        year,
		Amount:      amount,
		Currency:    currency,
		Source:      source,
		Description: description,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record, nil
}

// GetIncomeByID retrieves one income record; rows owned by other users
// surface as not found.
func (s *incomeService) GetIncomeByID(caller authz.Caller, incomeID string) (*models.IncomeRecord, error) {
	var record models.IncomeRecord
	if err := s.db.First(&record, "id = ?", incomeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := authz.Authorize(caller, authz.ResourceIncomeRecord, authz.ActionRead, authz.Row{OwnerID: record.UserID}); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListIncome retrieves the caller's income records with optional
// quarter/year/currency filters.
func (s *incomeService) ListIncome(caller authz.Caller, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.IncomeRecord], error) {
	page.Defaults()

	base := applyLedgerFilters(s.db.Model(&models.IncomeRecord{}).Where("user_id = ?", caller.UserID), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var records []models.IncomeRecord
	if err := base.Scopes(pagination.Paginate(page)).
		Order("year DESC, quarter DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(records, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateIncome replaces the mutable fields of an income record.
func (s *incomeService) UpdateIncome(caller authz.Caller, incomeID string, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, source, description string) (*models.IncomeRecord, error) {
	record, err := s.GetIncomeByID(caller, incomeID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ResourceIncomeRecord, authz.ActionUpdate, authz.Row{OwnerID: record.UserID}); err != nil {
		return nil, err
	}
	if err := validateMoney(amount); err != nil {
		return nil, err
	}
	if source == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source is required")
	}

	updates := map[string]interface{}{
		"quarter":     quarter,
		"year":        year,
		"amount":      amount,
		"currency":    currency,
		"source":      source,
		"description": description,
	}
	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return record, nil
}

// DeleteIncome removes an income record.
func (s *incomeService) DeleteIncome(caller authz.Caller, incomeID string) error {
	record, err := s.GetIncomeByID(caller, incomeID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(caller, authz.ResourceIncomeRecord, authz.ActionDelete, authz.Row{OwnerID: record.UserID}); err != nil {
		return err
	}
	if err := s.db.Delete(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func applyLedgerFilters(q *gorm.DB, f LedgerFilter) *gorm.DB {
	if f.Quarter != nil {
		q = q.Where("quarter = ?", *f.Quarter)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	if f.Currency != nil {
		q = q.Where("currency = ?", *f.Currency)
	}
	return q
}
