package services

import (
	"testing"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/testutil"
)

func TestIncomeCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeService(db)

	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	admin := testutil.CreateTestAdmin(t, db)

	t.Run("create_and_read_own", func(t *testing.T) {
		record, err := svc.CreateIncome(testutil.CallerFor(t, owner), models.QuarterQ1, 2025,
			testutil.MustDecimal(t, "2500.00"), models.CurrencyUSD, "Salary", "January pay")
		testutil.AssertNoError(t, err)
		if record.UserID != owner.ID {
			t.Error("expected record owned by the caller")
		}

		got, err := svc.GetIncomeByID(testutil.CallerFor(t, owner), record.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "2500.00", got.Amount)
	})

	t.Run("rejects_bad_money", func(t *testing.T) {
		caller := testutil.CallerFor(t, owner)
		_, err := svc.CreateIncome(caller, models.QuarterQ1, 2025,
			testutil.MustDecimal(t, "0"), models.CurrencyUSD, "Salary", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateIncome(caller, models.QuarterQ1, 2025,
			testutil.MustDecimal(t, "10.005"), models.CurrencyUSD, "Salary", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_source_rejected", func(t *testing.T) {
		_, err := svc.CreateIncome(testutil.CallerFor(t, owner), models.QuarterQ1, 2025,
			testutil.MustDecimal(t, "100.00"), models.CurrencyGHS, "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_record_looks_missing", func(t *testing.T) {
		record := testutil.CreateTestIncome(t, db, owner.ID, "300.00")

		_, err := svc.GetIncomeByID(testutil.CallerFor(t, intruder), record.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")

		_, err = svc.UpdateIncome(testutil.CallerFor(t, intruder), record.ID,
			models.QuarterQ2, 2025, testutil.MustDecimal(t, "1.00"), models.CurrencyUSD, "Theft", "")
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")

		err = svc.DeleteIncome(testutil.CallerFor(t, intruder), record.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")

		// Admins get no blanket access to other people's ledger rows.
		_, err = svc.GetIncomeByID(testutil.CallerFor(t, admin), record.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})

	t.Run("update_own", func(t *testing.T) {
		record := testutil.CreateTestIncome(t, db, owner.ID, "400.00")
		updated, err := svc.UpdateIncome(testutil.CallerFor(t, owner), record.ID,
			models.QuarterQ3, 2024, testutil.MustDecimal(t, "450.50"), models.CurrencyGHS, "Consulting", "adjusted")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "450.50", updated.Amount)
		if updated.Quarter != models.QuarterQ3 || updated.Currency != models.CurrencyGHS {
			t.Error("expected quarter and currency to change")
		}
	})

	t.Run("delete_own", func(t *testing.T) {
		record := testutil.CreateTestIncome(t, db, owner.ID, "50.00")
		testutil.AssertNoError(t, svc.DeleteIncome(testutil.CallerFor(t, owner), record.ID))
		_, err := svc.GetIncomeByID(testutil.CallerFor(t, owner), record.ID)
		testutil.AssertAppError(t, err, "INCOME_NOT_FOUND")
	})
}

func TestListIncome(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewIncomeService(db)

	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	q1 := models.QuarterQ1
	y2024 := 2024

	mk := func(userID string, quarter models.Quarter, year int) {
		t.Helper()
		record := testutil.CreateTestIncome(t, db, userID, "100.00")
		db.Model(record).Updates(map[string]interface{}{"quarter": quarter, "year": year})
	}

	mk(owner.ID, models.QuarterQ1, 2024)
	mk(owner.ID, models.QuarterQ2, 2024)
	mk(owner.ID, models.QuarterQ1, 2025)
	mk(other.ID, models.QuarterQ1, 2024)

	t.Run("scoped_to_caller", func(t *testing.T) {
		page, err := svc.ListIncome(testutil.CallerFor(t, owner), pagination.PageRequest{}, LedgerFilter{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 records for owner, got %d", page.TotalItems)
		}
		for _, record := range page.Data {
			if record.UserID != owner.ID {
				t.Fatal("listing leaked another user's record")
			}
		}
	})

	t.Run("quarter_and_year_filter", func(t *testing.T) {
		page, err := svc.ListIncome(testutil.CallerFor(t, owner), pagination.PageRequest{},
			LedgerFilter{Quarter: &q1, Year: &y2024})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 record for Q1 2024, got %d", page.TotalItems)
		}
	})
}
