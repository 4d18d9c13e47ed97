package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/config"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/handlers"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/logger"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/middleware"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/models"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/testutil"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/validator"
)

// adminEmail is provisioned with the admin role by the test config.
const adminEmail = "admin@test.com"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{AdminEmails: []string{adminEmail}}

	// Services
	userService := services.NewUserService(db, cfg)
	profileService := services.NewProfileService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	incomeService := services.NewIncomeService(db)
	expenseService := services.NewExpenseService(db, categoryService)
	savingsService := services.NewSavingsService(db)
	rateService := services.NewRateService(db)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, profileService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, profileService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, profileService, auditService)
	savingsHandler := handlers.NewSavingsHandler(savingsService, profileService, auditService)
	rateHandler := handlers.NewRateHandler(rateService, profileService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, profileService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", profileHandler.GetOwnProfile)
	protected.PUT("/profile", profileHandler.UpdateOwnProfile)

	admin := protected.Group("/admin/profiles")
	admin.GET("", profileHandler.ListProfiles)
	admin.POST("", profileHandler.CreateProfile)
	admin.GET("/:user_id", profileHandler.GetProfile)
	admin.PUT("/:user_id/role", profileHandler.UpdateRole)

	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.ListIncome)
	income.GET("/:id", incomeHandler.GetIncome)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	savings := protected.Group("/savings")
	savings.POST("/goals", savingsHandler.CreateGoal)
	savings.GET("/goals", savingsHandler.ListGoals)
	savings.GET("/goals/:id", savingsHandler.GetGoal)
	savings.PUT("/goals/:id", savingsHandler.UpdateGoal)
	savings.DELETE("/goals/:id", savingsHandler.DeleteGoal)
	savings.POST("/goals/:id/transactions", savingsHandler.RecordTransaction)
	savings.GET("/goals/:id/transactions", savingsHandler.ListTransactions)
	savings.GET("/goals/:id/verify", savingsHandler.VerifyGoalBalance)
	savings.DELETE("/transactions/:id", savingsHandler.DeleteTransaction)

	rates := protected.Group("/rates")
	rates.GET("", rateHandler.ListRates)
	rates.POST("", rateHandler.CreateRate)
	rates.PUT("/:id", rateHandler.UpdateRate)
	rates.DELETE("/:id", rateHandler.DeleteRate)

	protected.GET("/dashboard/summary", dashboardHandler.Summary)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// assertErrorCode checks the error envelope for the expected code.
func assertErrorCode(t *testing.T, result map[string]interface{}, expected string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %v", result)
	}
	if errObj["code"] != expected {
		t.Errorf("expected error code %s, got %v", expected, errObj["code"])
	}
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"full_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// seedCategory inserts an expense category directly and returns its ID.
func (app *testApp) seedCategory(t *testing.T, name string) string {
	t.Helper()
	category := &models.ExpenseCategory{Name: name}
	if err := app.DB.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category.ID
}
