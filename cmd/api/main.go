package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/config"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/database"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/handlers"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/logger"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/middleware"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/services"
	"github.com/lloyd-theophilus/finflow-ghana-dollar/internal/validator"

	_ "github.com/lloyd-theophilus/finflow-ghana-dollar/internal/docs" // Import swagger docs
)

// @title           FinFlow API
// @version         1.0
// @description     FinFlow is a dual-currency personal finance service for tracking quarterly income, categorized expenses, savings goals, and USD/GHS exchange rates.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db, appConfig)
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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes, throttled per client IP
	loginLimiter := middleware.NewRateLimiter()
	defer loginLimiter.Stop()
	auth := v1.Group("/auth")
	auth.Use(loginLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Own profile
	protected.GET("/profile", profileHandler.GetOwnProfile)
	protected.PUT("/profile", profileHandler.UpdateOwnProfile)

	// Profile administration
	admin := protected.Group("/admin/profiles")
	admin.GET("", profileHandler.ListProfiles)
	admin.POST("", profileHandler.CreateProfile)
	admin.GET("/:user_id", profileHandler.GetProfile)
	admin.PUT("/:user_id/role", profileHandler.UpdateRole)

	// Income routes
	income := protected.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.ListIncome)
	income.GET("/:id", incomeHandler.GetIncome)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Category routes
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Savings routes
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

	// Exchange rate routes
	rates := protected.Group("/rates")
	rates.GET("", rateHandler.ListRates)
	rates.POST("", rateHandler.CreateRate)
	rates.PUT("/:id", rateHandler.UpdateRate)
	rates.DELETE("/:id", rateHandler.DeleteRate)

	// Dashboard routes
	protected.GET("/dashboard/summary", dashboardHandler.Summary)

	log.Infof("Starting FinFlow backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
