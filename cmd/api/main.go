package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"budgetboard/internal/config"
	"budgetboard/internal/handlers"
	"budgetboard/internal/logger"
	"budgetboard/internal/middleware"
	"budgetboard/internal/services"
	"budgetboard/internal/store"
	"budgetboard/internal/validator"
)

// @title           Budgetboard API
// @version         1.0
// @description     Budgetboard is a personal finance tracker: users keep monthly budgets broken into categories and sub-categories, and compete on a savings leaderboard.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	manager, err := store.NewManager(ctx, appConfig.MongoURI, appConfig.MongoDBName)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := manager.Close(closeCtx); err != nil {
			log.Warnf("store close error: %v", err)
		}
	}()

	// Register custom request validators
	validator.Register()

	// Initialize stores and services
	ledgers := manager.Ledgers()
	users := manager.Users()
	userService := services.NewUserService(users, ledgers)
	ledgerService := services.NewLedgerService(ledgers)
	leaderboardService := services.NewLeaderboardService(users, ledgers)
	auditService := services.NewAuditService(manager.Audit())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Initialize Gin router
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

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Expense routes
	expenses := protected.Group("/expenses/:userId")
	expenses.GET("", ledgerHandler.GetLedger)
	expenses.POST("", ledgerHandler.CreateLedger)
	expenses.PUT("", ledgerHandler.ReplaceLedger)
	expenses.PUT("/modify-budget", ledgerHandler.ModifyBudget)
	expenses.GET("/month/:month", ledgerHandler.GetMonth)
	expenses.POST("/month/:month", ledgerHandler.AddCategory)
	expenses.POST("/month/:month/category/:category", ledgerHandler.AddSubCategory)
	expenses.DELETE("/month/:month/category/:category", ledgerHandler.DeleteCategory)
	expenses.PUT("/month/:month/category/:category/subcategory/:subCategory", ledgerHandler.UpdateSubCategoryAmount)
	expenses.DELETE("/month/:month/category/:category/subcategory/:subCategory", ledgerHandler.DeleteSubCategory)

	// Leaderboard
	protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

	log.Infof("Starting Budgetboard backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
