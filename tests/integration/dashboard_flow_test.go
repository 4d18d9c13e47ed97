package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestDashboardFlow_SummaryAggregatesOwnLedger(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "dash@test.com", "password123")
	otherToken, _, _ := app.registerUser(t, "noise@test.com", "password123")
	categoryID := app.seedCategory(t, "Food")

	rec := app.request("POST", "/api/v1/income",
		`{"quarter":"Q1","year":2025,"amount":"1250.50","currency":"USD","source":"Salary"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create income failed: %d %s", rec.Code, rec.Body.String())
	}

	body := fmt.Sprintf(`{"category_id":%q,"quarter":"Q1","year":2025,"amount":"400.25","currency":"USD","expense_date":"2025-01-15"}`, categoryID)
	rec = app.request("POST", "/api/v1/expenses", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense failed: %d %s", rec.Code, rec.Body.String())
	}

	// Another user's ledger must not leak into the summary.
	rec = app.request("POST", "/api/v1/income",
		`{"quarter":"Q1","year":2025,"amount":"9999.00","currency":"USD","source":"Noise"}`, otherToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create noise income failed: %d %s", rec.Code, rec.Body.String())
	}

	// A goal with a deposit shows up as progress.
	goalID := createGoal(t, app, token, "Emergency fund", "1000.00")
	rec = app.request("POST", fmt.Sprintf("/api/v1/savings/goals/%s/transactions", goalID),
		`{"amount":"250.00","type":"deposit"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("deposit failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard/summary?year=2025", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})

	quarters := summary["quarters"].([]interface{})
	if len(quarters) != 1 {
		t.Fatalf("expected 1 quarter bucket, got %d", len(quarters))
	}
	q1 := quarters[0].(map[string]interface{})
	if q1["quarter"] != "Q1" || q1["currency"] != "USD" {
		t.Errorf("unexpected bucket: %v", q1)
	}
	if q1["income"] != "1250.5" && q1["income"] != "1250.50" {
		t.Errorf("expected income 1250.50, got %v", q1["income"])
	}
	if q1["net"] != "850.25" {
		t.Errorf("expected net 850.25, got %v", q1["net"])
	}

	goals := summary["goals"].([]interface{})
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal in summary, got %d", len(goals))
	}
	progress := goals[0].(map[string]interface{})
	if progress["percentage"].(float64) != 25 {
		t.Errorf("expected 25%% progress, got %v", progress["percentage"])
	}
}

func TestDashboardFlow_EmptyYear(t *testing.T) {
	app := setupApp(t)

	token, _, _ := app.registerUser(t, "empty@test.com", "password123")

	rec := app.request("GET", "/api/v1/dashboard/summary?year=1999", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if len(summary["quarters"].([]interface{})) != 0 {
		t.Errorf("expected no quarter buckets for an empty year, got %v", summary["quarters"])
	}
}
