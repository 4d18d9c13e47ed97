package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is global reference data. Eight rows are seeded by
// migration (Housing through Other); only admins may change the set.
type ExpenseCategory struct {
	Base
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`

	Expenses []ExpenseRecord `gorm:"foreignKey:CategoryID" json:"-"`
}

// ExpenseRecord is a user-owned expense entry referencing one category.
type ExpenseRecord struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  string          `gorm:"type:uuid;not null" json:"category_id"`
	Quarter     Quarter         `gorm:"size:2;not null" json:"quarter"`
	Year        int             `gorm:"not null" json:"year"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    Currency        `gorm:"size:3;not null" json:"currency"`
	ExpenseDate time.Time       `gorm:"not null" json:"expense_date"`
	Description string          `json:"description"`

	Category *ExpenseCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
