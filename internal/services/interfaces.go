package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
)

// UserServicer defines the contract for identity and provisioning logic.
type UserServicer interface {
	// Register creates a user and its profile as one atomic unit. If
	// the profile cannot be created the registration fails entirely.
	Register(email, password, fullName string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProfileServicer defines the contract for profile access and the
// caller-context lookup every authorized request starts from.
type ProfileServicer interface {
	// CallerFor resolves the authorization context for a user from
	// their profile row. Missing profile means no access at all.
	CallerFor(userID string) (authz.Caller, error)
	GetOwnProfile(caller authz.Caller) (*models.Profile, error)
	GetProfileByUserID(caller authz.Caller, userID string) (*models.Profile, error)
	ListProfiles(caller authz.Caller, page pagination.PageRequest) (*pagination.PageResponse[models.Profile], error)
	UpdateFullName(caller authz.Caller, userID, fullName string) (*models.Profile, error)
	UpdateRole(caller authz.Caller, userID string, role models.Role) (*models.Profile, error)
	// CreateProfile is the admin escape hatch for provisioning a
	// profile directly; regular flow goes through Register.
	CreateProfile(caller authz.Caller, userID, fullName string, role models.Role) (*models.Profile, error)
}

// LedgerFilter holds optional filter parameters shared by income and
// expense listings.
type LedgerFilter struct {
	Quarter  *models.Quarter
	Year     *int
	Currency *models.Currency
}

// IncomeServicer defines the contract for income record CRUD.
type IncomeServicer interface {
	CreateIncome(caller authz.Caller, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, source, description string) (*models.IncomeRecord, error)
	GetIncomeByID(caller authz.Caller, incomeID string) (*models.IncomeRecord, error)
	ListIncome(caller authz.Caller, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.IncomeRecord], error)
	UpdateIncome(caller authz.Caller, incomeID string, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, source, description string) (*models.IncomeRecord, error)
	DeleteIncome(caller authz.Caller, incomeID string) error
}

// ExpenseServicer defines the contract for expense record CRUD.
type ExpenseServicer interface {
	CreateExpense(caller authz.Caller, categoryID string, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, expenseDate time.Time, description string) (*models.ExpenseRecord, error)
	GetExpenseByID(caller authz.Caller, expenseID string) (*models.ExpenseRecord, error)
	ListExpenses(caller authz.Caller, page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.ExpenseRecord], error)
	UpdateExpense(caller authz.Caller, expenseID, categoryID string, quarter models.Quarter, year int, amount decimal.Decimal, currency models.Currency, expenseDate time.Time, description string) (*models.ExpenseRecord, error)
	DeleteExpense(caller authz.Caller, expenseID string) error
}

// CategoryServicer defines the contract for expense category reference data.
type CategoryServicer interface {
	ListCategories(page pagination.PageRequest) (*pagination.PageResponse[models.ExpenseCategory], error)
	GetCategoryByID(categoryID string) (*models.ExpenseCategory, error)
	CreateCategory(caller authz.Caller, name, description string) (*models.ExpenseCategory, error)
	UpdateCategory(caller authz.Caller, categoryID, name, description string) (*models.ExpenseCategory, error)
	DeleteCategory(caller authz.Caller, categoryID string) error
}

// BalanceReport is the result of reconciling a goal's stored balance
// against the fold over its transaction history.
type BalanceReport struct {
	GoalID           string          `json:"goal_id"`
	StoredBalance    decimal.Decimal `json:"stored_balance"`
	ComputedBalance  decimal.Decimal `json:"computed_balance"`
	TransactionCount int64           `json:"transaction_count"`
	Consistent       bool            `json:"consistent"`
}

// SavingsServicer defines the contract for savings goals and the
// balance-maintaining transaction operations.
type SavingsServicer interface {
	CreateGoal(caller authz.Caller, name string, targetAmount decimal.Decimal, currency models.Currency, targetDate *time.Time, goalType models.GoalType, description string) (*models.SavingsGoal, error)
	GetGoalByID(caller authz.Caller, goalID string) (*models.SavingsGoal, error)
	ListGoals(caller authz.Caller, page pagination.PageRequest, activeOnly bool) (*pagination.PageResponse[models.SavingsGoal], error)
	UpdateGoal(caller authz.Caller, goalID, name string, targetAmount *decimal.Decimal, targetDate *time.Time, goalType *models.GoalType, description *string, isActive *bool) (*models.SavingsGoal, error)
	DeleteGoal(caller authz.Caller, goalID string) error

	// RecordTransaction writes the transaction row and the goal's
	// balance adjustment in one database transaction.
	RecordTransaction(caller authz.Caller, goalID string, amount decimal.Decimal, txType models.SavingsTransactionType, description string, date time.Time) (*models.SavingsTransaction, error)
	// DeleteTransaction removes the row and reverses its balance
	// adjustment atomically.
	DeleteTransaction(caller authz.Caller, transactionID string) error
	ListTransactions(caller authz.Caller, goalID string, page pagination.PageRequest) (*pagination.PageResponse[models.SavingsTransaction], error)
	VerifyGoalBalance(caller authz.Caller, goalID string) (*BalanceReport, error)
}

// RateFilter holds optional filter parameters for currency rate listings.
type RateFilter struct {
	From *models.Currency
	To   *models.Currency
	Date *time.Time
}

// RateServicer defines the contract for currency rate reference data.
type RateServicer interface {
	ListRates(page pagination.PageRequest, filter RateFilter) (*pagination.PageResponse[models.CurrencyRate], error)
	CreateRate(caller authz.Caller, from, to models.Currency, date time.Time, rate decimal.Decimal) (*models.CurrencyRate, error)
	UpdateRate(caller authz.Caller, rateID string, rate decimal.Decimal) (*models.CurrencyRate, error)
	DeleteRate(caller authz.Caller, rateID string) error
}

// QuarterSummary aggregates one quarter's ledger activity in one currency.
type QuarterSummary struct {
	Quarter  models.Quarter  `json:"quarter"`
	Currency models.Currency `json:"currency"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// GoalProgress summarizes a savings goal for the dashboard.
type GoalProgress struct {
	GoalID        string          `json:"goal_id"`
	Name          string          `json:"name"`
	Currency      models.Currency `json:"currency"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Percentage    float64         `json:"percentage"`
}

// DashboardSummary is the aggregate view for one year.
type DashboardSummary struct {
	Year     int              `json:"year"`
	Quarters []QuarterSummary `json:"quarters"`
	Goals    []GoalProgress   `json:"goals"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	Summary(caller authz.Caller, year int) (*DashboardSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
