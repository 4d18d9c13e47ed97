package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType classifies what a savings goal is for.
type GoalType string

const (
	GoalTypeVacation   GoalType = "vacation"
	GoalTypeCarService GoalType = "car_service"
	GoalTypeTechStocks GoalType = "tech_stocks"
	GoalTypeEmergency  GoalType = "emergency"
	GoalTypeOther      GoalType = "other"
)

// SavingsGoal is a user-owned savings target. CurrentAmount is derived:
// it must always equal the signed sum of the goal's transactions
// (deposits positive, withdrawals negative) and is only ever written by
// the savings service inside the same database transaction as the
// transaction row mutation that changes it.
type SavingsGoal struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_amount"`
	Currency      Currency        `gorm:"size:3;not null" json:"currency"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	GoalType      GoalType        `gorm:"not null;default:'other'" json:"goal_type"`
	Description   string          `json:"description"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`

	Transactions []SavingsTransaction `gorm:"foreignKey:GoalID" json:"transactions,omitempty"`
}

// SavingsTransactionType is the direction of a savings transaction.
type SavingsTransactionType string

const (
	SavingsDeposit    SavingsTransactionType = "deposit"
	SavingsWithdrawal SavingsTransactionType = "withdrawal"
)

// SavingsTransaction is a deposit into or withdrawal from a savings
// goal. Ownership is transitive through the goal; the row carries no
// user column. Rows are inserted and deleted, never updated.
type SavingsTransaction struct {
	Base
	GoalID          string                 `gorm:"type:uuid;not null;index" json:"goal_id"`
	Amount          decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type            SavingsTransactionType `gorm:"not null" json:"type"`
	Description     string                 `json:"description"`
	TransactionDate time.Time              `gorm:"not null" json:"transaction_date"`

	Goal *SavingsGoal `gorm:"foreignKey:GoalID" json:"-"`
}

// SignedAmount returns the transaction's contribution to the owning
// goal's balance: positive for deposits, negative for withdrawals.
func (t *SavingsTransaction) SignedAmount() decimal.Decimal {
	if t.Type == SavingsWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
