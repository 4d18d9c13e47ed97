// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("quarter", validateQuarter)
		_ = v.RegisterValidation("ledger_currency", validateLedgerCurrency)
		_ = v.RegisterValidation("goal_type", validateGoalType)
		_ = v.RegisterValidation("savings_tx_type", validateSavingsTransactionType)
		_ = v.RegisterValidation("role", validateRole)
	}
}

func validateQuarter(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Q1", "Q2", "Q3", "Q4":
		return true
	}
	return false
}

// The ledger only tracks the two currencies the application was built
// around; everything else is rejected at the binding layer.
func validateLedgerCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "USD", "GHS":
		return true
	}
	return false
}

func validateGoalType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "vacation", "car_service", "tech_stocks", "emergency", "other":
		return true
	}
	return false
}

func validateSavingsTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "deposit", "withdrawal":
		return true
	}
	return false
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "user":
		return true
	}
	return false
}
