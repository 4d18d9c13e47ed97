package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/uuid"
)

// Base contains common columns for all tables.
//
// Ledger rows are deleted for real, never soft-deleted: a soft-deleted
// savings transaction would still have to be excluded from every balance
// fold, so the column buys nothing here.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// Currency is an ISO 4217 code for the two currencies the ledger tracks.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGHS Currency = "GHS"
)

// Quarter identifies a fiscal quarter.
type Quarter string

const (
	QuarterQ1 Quarter = "Q1"
	QuarterQ2 Quarter = "Q2"
	QuarterQ3 Quarter = "Q3"
	QuarterQ4 Quarter = "Q4"
)
