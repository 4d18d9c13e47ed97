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

// rateService handles the currency rate reference table. Rates are a
// static lookup table: no conversion math lives here.
type rateService struct {
	db *gorm.DB
}

// NewRateService creates a new RateServicer.
func NewRateService(db *gorm.DB) RateServicer {
	return &rateService{db: db}
}

// ListRates returns rates matching the filter. Readable by everyone.
func (s *rateService) ListRates(page pagination.PageRequest, filter RateFilter) (*pagination.PageResponse[models.CurrencyRate], error) {
	page.Defaults()

	base := s.db.Model(&models.CurrencyRate{})
	if filter.From != nil {
		base = base.Where("from_currency = ?", *filter.From)
	}
	if filter.To != nil {
		base = base.Where("to_currency = ?", *filter.To)
	}
	if filter.Date != nil {
		base = base.Where("rate_date = ?", truncateToDay(*filter.Date))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rates []models.CurrencyRate
	if err := base.Scopes(pagination.Paginate(page)).Order("rate_date DESC").Find(&rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rates, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// CreateRate adds a rate row. Admin only; one row per (from, to, date).
func (s *rateService) CreateRate(caller authz.Caller, from, to models.Currency, date time.Time, rate decimal.Decimal) (*models.CurrencyRate, error) {
	if err := authz.Authorize(caller, authz.ResourceCurrencyRate, authz.ActionCreate, authz.Row{}); err != nil {
		return nil, err
	}
	if !rate.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must be greater than zero")
	}
	if from == to {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to currencies must differ")
	}

	day := truncateToDay(date)

	var count int64
	s.db.Model(&models.CurrencyRate{}).
		Where("from_currency = ? AND to_currency = ? AND rate_date = ?", from, to, day).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateRate
	}

	row := &models.CurrencyRate{
		FromCurrency: from,
		ToCurrency:   to,
		RateDate:     day,
		Rate:         rate,
	}
	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}

// UpdateRate changes the rate value of an existing row. Admin only.
func (s *rateService) UpdateRate(caller authz.Caller, rateID string, rate decimal.Decimal) (*models.CurrencyRate, error) {
	if err := authz.Authorize(caller, authz.ResourceCurrencyRate, authz.ActionUpdate, authz.Row{}); err != nil {
		return nil, err
	}
	if !rate.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must be greater than zero")
	}

	var row models.CurrencyRate
	if err := s.db.First(&row, "id = ?", rateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&row).Update("rate", rate).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	row.Rate = rate
	return &row, nil
}

// DeleteRate removes a rate row. Admin only.
func (s *rateService) DeleteRate(caller authz.Caller, rateID string) error {
	if err := authz.Authorize(caller, authz.ResourceCurrencyRate, authz.ActionDelete, authz.Row{}); err != nil {
		return err
	}

	result := s.db.Delete(&models.CurrencyRate{}, "id = ?", rateID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRateNotFound
	}
	return nil
}

// truncateToDay normalizes a timestamp to midnight UTC so that rows and
// lookups agree on what "the same date" means regardless of the zone
// the input carried.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
