package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	apperrors "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/errors"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
)

// dashboardService aggregates the caller's ledger for the overview
// page. Sums are folded in Go with exact decimals rather than SQL SUM
// so the arithmetic is identical across database engines.
type dashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db}
}

// Summary returns per-quarter income/expense totals per currency for
// one year, plus progress on the caller's active savings goals. Only
// the caller's own rows enter the aggregation.
func (s *dashboardService) Summary(caller authz.Caller, year int) (*DashboardSummary, error) {
	var income []models.IncomeRecord
	if err := s.db.Where("user_id = ? AND year = ?", caller.UserID, year).Find(&income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.ExpenseRecord
	if err := s.db.Where("user_id = ? AND year = ?", caller.UserID, year).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	type bucket struct {
		income   decimal.Decimal
		expenses decimal.Decimal
	}
	type key struct {
		quarter  models.Quarter
		currency models.Currency
	}

	buckets := map[key]*bucket{}
	get := func(q models.Quarter, c models.Currency) *bucket {
		k := key{q, c}
		if b, ok := buckets[k]; ok {
			return b
		}
		b := &bucket{income: decimal.Zero, expenses: decimal.Zero}
		buckets[k] = b
		return b
	}

	for i := range income {
		b := get(income[i].Quarter, income[i].Currency)
		b.income = b.income.Add(income[i].Amount)
	}
	for i := range expenses {
		b := get(expenses[i].Quarter, expenses[i].Currency)
		b.expenses = b.expenses.Add(expenses[i].Amount)
	}

	summary := &DashboardSummary{Year: year, Quarters: []QuarterSummary{}, Goals: []GoalProgress{}}

	for _, quarter := range []models.Quarter{models.QuarterQ1, models.QuarterQ2, models.QuarterQ3, models.QuarterQ4} {
		for _, currency := range []models.Currency{models.CurrencyUSD, models.CurrencyGHS} {
			b, ok := buckets[key{quarter, currency}]
			if !ok {
				continue
			}
			summary.Quarters = append(summary.Quarters, QuarterSummary{
				Quarter:  quarter,
				Currency: currency,
				Income:   b.income,
				Expenses: b.expenses,
				Net:      b.income.Sub(b.expenses),
			})
		}
	}

	var goals []models.SavingsGoal
	if err := s.db.Where("user_id = ? AND is_active = ?", caller.UserID, true).Order("created_at").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range goals {
		progress := GoalProgress{
			GoalID:        goals[i].ID,
			Name:          goals[i].Name,
			Currency:      goals[i].Currency,
			TargetAmount:  goals[i].TargetAmount,
			CurrentAmount: goals[i].CurrentAmount,
		}
		if goals[i].TargetAmount.IsPositive() {
			pct, _ := goals[i].CurrentAmount.Div(goals[i].TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
			progress.Percentage = pct
		}
		summary.Goals = append(summary.Goals, progress)
	}

	return summary, nil
}
