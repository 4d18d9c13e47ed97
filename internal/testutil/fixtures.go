package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/authz"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// MustDecimal parses a decimal literal, failing the test on bad input.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

// CreateTestUser creates a user with a profile carrying the user role.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return createUserWithRole(t, db, email, models.RoleUser)
}

// CreateTestAdmin creates a user with a profile carrying the admin role.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("admin%d@test.com", nextID())
	return createUserWithRole(t, db, email, models.RoleAdmin)
}

func createUserWithRole(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	profile := &models.Profile{
		UserID:   user.ID,
		FullName: fmt.Sprintf("Test Person %d", nextID()),
		Role:     role,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	user.Profile = profile
	return user
}

// CallerFor builds the authorization context for a fixture user.
func CallerFor(t *testing.T, user *models.User) authz.Caller {
	t.Helper()
	if user.Profile == nil {
		t.Fatal("fixture user has no profile")
	}
	return authz.Caller{UserID: user.ID, Role: user.Profile.Role}
}

// CreateTestCategory creates an expense category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.ExpenseCategory {
	t.Helper()

	category := &models.ExpenseCategory{
		Name: fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGoal creates an active savings goal with a zero balance.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string) *models.SavingsGoal {
	t.Helper()

	goal := &models.SavingsGoal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.Zero,
		Currency:      models.CurrencyUSD,
		GoalType:      models.GoalTypeOther,
		IsActive:      true,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestIncome creates an income record for the given user.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID string, amount string) *models.IncomeRecord {
	t.Helper()

	record := &models.IncomeRecord{
		UserID:   userID,
		Quarter:  models.QuarterQ1,
		Year:     2025,
		Amount:   MustDecimal(t, amount),
		Currency: models.CurrencyUSD,
		Source:   fmt.Sprintf("Test Source %d", nextID()),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test income record: %v", err)
	}
	return record
}

// CreateTestExpense creates an expense record for the given user and category.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount string) *models.ExpenseRecord {
	t.Helper()

	record := &models.ExpenseRecord{
		UserID:      userID,
		CategoryID:  categoryID,
		Quarter:     models.QuarterQ1,
		Year:        2025,
		Amount:      MustDecimal(t, amount),
		Currency:    models.CurrencyUSD,
		ExpenseDate: time.Now(),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test expense record: %v", err)
	}
	return record
}

// CreateTestRate creates a currency rate row for the given date.
func CreateTestRate(t *testing.T, db *gorm.DB, date time.Time) *models.CurrencyRate {
	t.Helper()

	rate := &models.CurrencyRate{
		FromCurrency: models.CurrencyUSD,
		ToCurrency:   models.CurrencyGHS,
		RateDate:     date,
		Rate:         MustDecimal(t, "15.500000"),
	}
	if err := db.Create(rate).Error; err != nil {
		t.Fatalf("failed to create test currency rate: %v", err)
	}
	return rate
}
