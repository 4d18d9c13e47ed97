package services

import (
	"testing"
	"time"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/testutil"
)

func TestCreateRate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewRateService(db)

	admin := testutil.CreateTestAdmin(t, db)
	user := testutil.CreateTestUser(t, db)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("admin_only", func(t *testing.T) {
		_, err := svc.CreateRate(testutil.CallerFor(t, user), models.CurrencyUSD, models.CurrencyGHS,
			date, testutil.MustDecimal(t, "15.500000"))
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("one_row_per_pair_and_date", func(t *testing.T) {
		caller := testutil.CallerFor(t, admin)
		_, err := svc.CreateRate(caller, models.CurrencyUSD, models.CurrencyGHS,
			date, testutil.MustDecimal(t, "15.500000"))
		testutil.AssertNoError(t, err)

		// Same pair and date, even with a different clock time.
		_, err = svc.CreateRate(caller, models.CurrencyUSD, models.CurrencyGHS,
			date.Add(9*time.Hour), testutil.MustDecimal(t, "15.600000"))
		testutil.AssertAppError(t, err, "DUPLICATE_RATE")

		// The reverse direction on the same date is a distinct row.
		_, err = svc.CreateRate(caller, models.CurrencyGHS, models.CurrencyUSD,
			date, testutil.MustDecimal(t, "0.064516"))
		testutil.AssertNoError(t, err)
	})

	t.Run("same_currency_rejected", func(t *testing.T) {
		_, err := svc.CreateRate(testutil.CallerFor(t, admin), models.CurrencyUSD, models.CurrencyUSD,
			date, testutil.MustDecimal(t, "1.000000"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_rate_rejected", func(t *testing.T) {
		_, err := svc.CreateRate(testutil.CallerFor(t, admin), models.CurrencyUSD, models.CurrencyGHS,
			date.AddDate(0, 0, 1), testutil.MustDecimal(t, "0"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListRates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewRateService(db)

	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestRate(t, db, day1)
	testutil.CreateTestRate(t, db, day2)

	t.Run("all", func(t *testing.T) {
		page, err := svc.ListRates(pagination.PageRequest{}, RateFilter{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 rates, got %d", page.TotalItems)
		}
	})

	t.Run("by_date", func(t *testing.T) {
		page, err := svc.ListRates(pagination.PageRequest{}, RateFilter{Date: &day1})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 rate on day1, got %d", page.TotalItems)
		}
	})

	t.Run("by_pair", func(t *testing.T) {
		from := models.CurrencyUSD
		to := models.CurrencyGHS
		page, err := svc.ListRates(pagination.PageRequest{}, RateFilter{From: &from, To: &to})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 USD/GHS rates, got %d", page.TotalItems)
		}
	})
}

func TestUpdateAndDeleteRate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewRateService(db)

	admin := testutil.CreateTestAdmin(t, db)
	user := testutil.CreateTestUser(t, db)
	rate := testutil.CreateTestRate(t, db, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	t.Run("update", func(t *testing.T) {
		_, err := svc.UpdateRate(testutil.CallerFor(t, user), rate.ID, testutil.MustDecimal(t, "16.000000"))
		testutil.AssertAppError(t, err, "RATE_NOT_FOUND")

		updated, err := svc.UpdateRate(testutil.CallerFor(t, admin), rate.ID, testutil.MustDecimal(t, "16.000000"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "16.000000", updated.Rate)
	})

	t.Run("delete", func(t *testing.T) {
		err := svc.DeleteRate(testutil.CallerFor(t, user), rate.ID)
		testutil.AssertAppError(t, err, "RATE_NOT_FOUND")

		testutil.AssertNoError(t, svc.DeleteRate(testutil.CallerFor(t, admin), rate.ID))
		err = svc.DeleteRate(testutil.CallerFor(t, admin), rate.ID)
		testutil.AssertAppError(t, err, "RATE_NOT_FOUND")
	})
}
