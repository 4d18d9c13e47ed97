package services

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/pagination"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/testutil"
)

func TestRecordTransaction(t *testing.T) {
	t.Run("deposit_increases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		tx, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "100.00"), models.SavingsDeposit, "Payday", time.Now())
		testutil.AssertNoError(t, err)
		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}

		updated, err := svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "100.00", updated.CurrentAmount)
	})

	t.Run("withdrawal_decreases_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "100.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)
		_, err = svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "30.00"), models.SavingsWithdrawal, "", time.Now())
		testutil.AssertNoError(t, err)

		updated, err := svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "70.00", updated.CurrentAmount)
	})

	t.Run("balance_is_fold_over_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		// Many small exact-decimal amounts; float arithmetic would
		// drift over a sequence like this.
		expected := decimal.Zero
		for i := 0; i < 50; i++ {
			amount := testutil.MustDecimal(t, "0.10")
			_, err := svc.RecordTransaction(caller, goal.ID, amount, models.SavingsDeposit, "", time.Now())
			testutil.AssertNoError(t, err)
			expected = expected.Add(amount)
		}
		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "1.55"), models.SavingsWithdrawal, "", time.Now())
		testutil.AssertNoError(t, err)
		expected = expected.Sub(testutil.MustDecimal(t, "1.55"))

		updated, err := svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		if !updated.CurrentAmount.Equal(expected) {
			t.Errorf("expected balance %s, got %s", expected, updated.CurrentAmount)
		}

		report, err := svc.VerifyGoalBalance(caller, goal.ID)
		testutil.AssertNoError(t, err)
		if !report.Consistent {
			t.Error("expected consistent balance report")
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, decimal.Zero, models.SavingsDeposit, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("too_many_decimal_places", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "10.001"), models.SavingsDeposit, "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "10.00"), "transfer", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)

		_, err := svc.RecordTransaction(caller, "00000000-0000-0000-0000-000000000000", testutil.MustDecimal(t, "10.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("other_users_goal_looks_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, owner.ID)

		// A correctly guessed goal ID must behave exactly like a
		// nonexistent one, and must leave the balance untouched.
		_, err := svc.RecordTransaction(testutil.CallerFor(t, intruder), goal.ID, testutil.MustDecimal(t, "10.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

		updated, err := svc.GetGoalByID(testutil.CallerFor(t, owner), goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "0", updated.CurrentAmount)

		var count int64
		db.Model(&models.SavingsTransaction{}).Where("goal_id = ?", goal.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected no transaction rows after denied insert, got %d", count)
		}
	})
}

// isLockContention reports whether err is SQLite refusing a second
// concurrent writer. Unlike postgres, SQLite does not block on the row
// lock; it fails the statement, so writers racing on the same goal
// have to retry.
func isLockContention(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if strings.Contains(err.Error(), "locked") || strings.Contains(err.Error(), "busy") {
			return true
		}
	}
	return false
}

func TestRecordTransactionConcurrent(t *testing.T) {
	t.Run("parallel_deposits_all_reach_the_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		const depositors = 8
		amount := testutil.MustDecimal(t, "1.00")
		var wg sync.WaitGroup
		failures := make(chan error, depositors)
		for i := 0; i < depositors; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					_, err := svc.RecordTransaction(caller, goal.ID, amount, models.SavingsDeposit, "", time.Now())
					if err == nil {
						return
					}
					if !isLockContention(err) {
						failures <- err
						return
					}
					time.Sleep(time.Millisecond)
				}
			}()
		}
		wg.Wait()
		close(failures)
		for err := range failures {
			t.Fatalf("deposit failed: %v", err)
		}

		// Every committed deposit must be reflected in the stored
		// balance; a read-modify-write race would lose some of them.
		updated, err := svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "8.00", updated.CurrentAmount)

		report, err := svc.VerifyGoalBalance(caller, goal.ID)
		testutil.AssertNoError(t, err)
		if report.TransactionCount != depositors {
			t.Errorf("expected %d transaction rows, got %d", depositors, report.TransactionCount)
		}
		if !report.Consistent {
			t.Errorf("stored balance %s diverged from computed %s", report.StoredBalance, report.ComputedBalance)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("reverses_deposit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		deposit, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "100.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)
		withdrawal, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "30.00"), models.SavingsWithdrawal, "", time.Now())
		testutil.AssertNoError(t, err)

		// Removing the withdrawal adds its amount back.
		testutil.AssertNoError(t, svc.DeleteTransaction(caller, withdrawal.ID))
		updated, err := svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "100.00", updated.CurrentAmount)

		// Removing the deposit takes the balance back to zero.
		testutil.AssertNoError(t, svc.DeleteTransaction(caller, deposit.ID))
		updated, err = svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "0.00", updated.CurrentAmount)
	})

	t.Run("unknown_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteTransaction(testutil.CallerFor(t, user), "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("other_users_transaction_looks_missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, owner.ID)

		tx, err := svc.RecordTransaction(testutil.CallerFor(t, owner), goal.ID, testutil.MustDecimal(t, "50.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)

		err = svc.DeleteTransaction(testutil.CallerFor(t, intruder), tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		// The denied delete must not have touched the balance.
		updated, err := svc.GetGoalByID(testutil.CallerFor(t, owner), goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "50.00", updated.CurrentAmount)
	})
}

func TestVerifyGoalBalance(t *testing.T) {
	t.Run("detects_divergence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "100.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)

		// Corrupt the stored balance behind the service's back.
		if err := db.Model(&models.SavingsGoal{}).Where("id = ?", goal.ID).
			Update("current_amount", testutil.MustDecimal(t, "999.00")).Error; err != nil {
			t.Fatalf("failed to corrupt balance: %v", err)
		}

		report, err := svc.VerifyGoalBalance(caller, goal.ID)
		testutil.AssertAppError(t, err, "BALANCE_MISMATCH")
		if report == nil {
			t.Fatal("expected a balance report alongside the mismatch error")
		}
		if report.Consistent {
			t.Error("expected inconsistent report")
		}
		testutil.AssertDecimalEqual(t, "100.00", report.ComputedBalance)
		testutil.AssertDecimalEqual(t, "999.00", report.StoredBalance)
	})

	t.Run("clean_goal_is_consistent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		report, err := svc.VerifyGoalBalance(caller, goal.ID)
		testutil.AssertNoError(t, err)
		if !report.Consistent {
			t.Error("expected consistent report for untouched goal")
		}
		if report.TransactionCount != 0 {
			t.Errorf("expected zero transactions, got %d", report.TransactionCount)
		}
	})
}

func TestGoalCRUD(t *testing.T) {
	t.Run("create_starts_at_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)

		goal, err := svc.CreateGoal(caller, "Emergency fund", testutil.MustDecimal(t, "5000.00"), models.CurrencyGHS, nil, models.GoalTypeEmergency, "")
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "0", goal.CurrentAmount)
		if goal.UserID != user.ID {
			t.Error("goal owner must be the caller")
		}
	})

	t.Run("update_cannot_touch_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "25.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)

		newTarget := testutil.MustDecimal(t, "2000.00")
		inactive := false
		_, err = svc.UpdateGoal(caller, goal.ID, "Renamed", &newTarget, nil, nil, nil, &inactive)
		testutil.AssertNoError(t, err)

		updated, err := svc.GetGoalByID(caller, goal.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "25.00", updated.CurrentAmount)
		if updated.Name != "Renamed" || updated.IsActive {
			t.Error("expected name and active flag to be updated")
		}
	})

	t.Run("list_is_owner_scoped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		userA := testutil.CreateTestUser(t, db)
		userB := testutil.CreateTestUser(t, db)
		testutil.CreateTestGoal(t, db, userA.ID)
		testutil.CreateTestGoal(t, db, userA.ID)
		testutil.CreateTestGoal(t, db, userB.ID)

		page, err := svc.ListGoals(testutil.CallerFor(t, userA), pagination.PageRequest{}, false)
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 goals for owner, got %d", page.TotalItems)
		}
	})

	t.Run("delete_removes_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSavingsService(db)
		user := testutil.CreateTestUser(t, db)
		caller := testutil.CallerFor(t, user)
		goal := testutil.CreateTestGoal(t, db, user.ID)

		_, err := svc.RecordTransaction(caller, goal.ID, testutil.MustDecimal(t, "10.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteGoal(caller, goal.ID))

		var count int64
		db.Model(&models.SavingsTransaction{}).Where("goal_id = ?", goal.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected orphaned transactions to be deleted, got %d", count)
		}
	})
}

func TestListTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSavingsService(db)
	owner := testutil.CreateTestUser(t, db)
	intruder := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, owner.ID)

	for i := 0; i < 3; i++ {
		_, err := svc.RecordTransaction(testutil.CallerFor(t, owner), goal.ID, testutil.MustDecimal(t, "5.00"), models.SavingsDeposit, "", time.Now())
		testutil.AssertNoError(t, err)
	}

	page, err := svc.ListTransactions(testutil.CallerFor(t, owner), goal.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if page.TotalItems != 3 {
		t.Errorf("expected 3 transactions, got %d", page.TotalItems)
	}

	// The transaction rows carry no owner column; visibility is still
	// scoped by the parent goal's owner.
	_, err = svc.ListTransactions(testutil.CallerFor(t, intruder), goal.ID, pagination.PageRequest{})
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}
