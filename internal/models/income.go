package models

import "github.com/shopspring/decimal"

// IncomeRecord is a user-owned income entry for a fiscal quarter.
type IncomeRecord struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Quarter     Quarter         `gorm:"size:2;not null" json:"quarter"`
	Year        int             `gorm:"not null" json:"year"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency    Currency        `gorm:"size:3;not null" json:"currency"`
	Source      string          `gorm:"not null" json:"source"`
	Description string          `json:"description"`
}
