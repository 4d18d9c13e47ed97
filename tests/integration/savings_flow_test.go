package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
)

func createGoal(t *testing.T, app *testApp, token, name, target string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"target_amount":%q,"currency":"USD","goal_type":"emergency"}`, name, target)
	rec := app.request("POST", "/api/v1/savings/goals", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["goal"].(map[string]interface{})["id"].(string)
}

func goalBalance(t *testing.T, app *testApp, token, goalID string) decimal.Decimal {
	t.Helper()
	rec := app.request("GET", "/api/v1/savings/goals/"+goalID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get goal failed: %d %s", rec.Code, rec.Body.String())
	}
	raw := parseJSON(t, rec)["goal"].(map[string]interface{})["current_amount"].(string)
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("bad balance %q: %v", raw, err)
	}
	return balance
}

func TestSavingsFlow_BalanceTracksTransactions(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "saver@test.com", "password123")
	goalID := createGoal(t, app, token, "Emergency fund", "1000.00")

	if balance := goalBalance(t, app, token, goalID); !balance.IsZero() {
		t.Fatalf("expected zero opening balance, got %s", balance)
	}

	rec := app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID),
		`{"amount":"250.00","type":"deposit"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID),
		`{"amount":"30.50","type":"withdrawal"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("withdrawal failed: %d %s", rec.Code, rec.Body.String())
	}
	withdrawalID := parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)

	if balance := goalBalance(t, app, token, goalID); !balance.Equal(decimal.RequireFromString("219.50")) {
		t.Fatalf("expected balance 219.50 after deposit and withdrawal, got %s", balance)
	}

	// Deleting the withdrawal reverses its effect.
	rec = app.request("DELETE", "/api/v1/savings/transactions/"+withdrawalID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	if balance := goalBalance(t, app, token, goalID); !balance.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("expected balance 250.00 after reversal, got %s", balance)
	}
}

func TestSavingsFlow_TransactionValidation(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "badtx@test.com", "password123")
	goalID := createGoal(t, app, token, "Vacation", "500.00")

	for name, body := range map[string]string{
		"zero amount":        `{"amount":"0","type":"deposit"}`,
		"sub-cent precision": `{"amount":"10.005","type":"deposit"}`,
		"unknown type":       `{"amount":"10.00","type":"transfer"}`,
	} {
		rec := app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID), body, token)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}

	if balance := goalBalance(t, app, token, goalID); !balance.IsZero() {
		t.Fatalf("expected balance untouched by rejected transactions, got %s", balance)
	}
}

func TestSavingsFlow_GoalsAreInvisibleToOtherUsers(t *testing.T) {
	app := setupApp(t)

	ownerToken, _, _ := app.registerUser(t, "goalowner@test.com", "password123")
	intruderToken, _, _ := app.registerUser(t, "goalintruder@test.com", "password123")
	adminToken, _, _ := app.registerUser(t, adminEmail, "password123")

	goalID := createGoal(t, app, ownerToken, "Private goal", "100.00")

	// Other users, admins included, see nothing.
	for name, token := range map[string]string{"intruder": intruderToken, "admin": adminToken} {
		rec := app.request("GET", "/api/v1/savings/goals/"+goalID, "", token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d: %s", name, rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")

		rec = app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID),
			`{"amount":"10.00","type":"deposit"}`, token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404 recording against invisible goal, got %d", name, rec.Code)
		}
	}
}

func TestSavingsFlow_VerifyDetectsDrift(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "verify@test.com", "password123")
	goalID := createGoal(t, app, token, "Audited goal", "1000.00")

	rec := app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID),
		`{"amount":"75.00","type":"deposit"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/savings/goals/%s/verify", goalID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify failed: %d %s", rec.Code, rec.Body.String())
	}
	report := parseJSON(t, rec)["report"].(map[string]interface{})
	if report["consistent"] != true {
		t.Fatalf("expected consistent report, got %v", report)
	}

	// Corrupt the stored balance behind the service's back.
	if err := app.DB.Model(&models.SavingsGoal{}).Where("id = ?", goalID).
		Update("current_amount", "999.99").Error; err != nil {
		t.Fatalf("failed to corrupt balance: %v", err)
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/savings/goals/%s/verify", goalID), "", token)
	if rec.Code == http.StatusOK {
		t.Fatalf("expected an error status for drifted balance, got 200: %s", rec.Body.String())
	}
	result := parseJSON(t, rec)
	assertErrorCode(t, result, "BALANCE_MISMATCH")
	report = result["report"].(map[string]interface{})
	if report["consistent"] != false {
		t.Errorf("expected inconsistent report, got %v", report)
	}
}

func TestSavingsFlow_DeleteGoalRemovesHistory(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "cleanup@test.com", "password123")
	goalID := createGoal(t, app, token, "Doomed goal", "100.00")

	rec := app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID),
		`{"amount":"10.00","type":"deposit"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", "/api/v1/savings/goals/"+goalID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete goal failed: %d %s", rec.Code, rec.Body.String())
	}

	var count int64
	if err := app.DB.Model(&models.SavingsTransaction{}).Where("goal_id = ?", goalID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no orphaned transactions, found %d", count)
	}
}
