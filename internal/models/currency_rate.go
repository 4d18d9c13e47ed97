package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is reference data: the exchange rate between two
// currencies on a given date. One row per (from, to, date); readable by
// everyone, writable by admins only.
type CurrencyRate struct {
	Base
	FromCurrency Currency        `gorm:"size:3;not null;uniqueIndex:uq_currency_rates_from_to_date" json:"from_currency"`
	ToCurrency   Currency        `gorm:"size:3;not null;uniqueIndex:uq_currency_rates_from_to_date" json:"to_currency"`
	RateDate     time.Time       `gorm:"type:date;not null;uniqueIndex:uq_currency_rates_from_to_date" json:"rate_date"`
	Rate         decimal.Decimal `gorm:"type:decimal(12,6);not null" json:"rate"`
}
