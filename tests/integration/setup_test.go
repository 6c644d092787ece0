package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"budgetboard/internal/handlers"
	"budgetboard/internal/logger"
	"budgetboard/internal/middleware"
	"budgetboard/internal/services"
	"budgetboard/internal/testutil"
	"budgetboard/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	Ledgers *testutil.MemLedgerStore
	Users   *testutil.MemUserStore
	Audit   *testutil.MemAuditStore
	Router  *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by in-memory stores.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	ledgers := testutil.NewMemLedgerStore()
	users := testutil.NewMemUserStore()
	audit := testutil.NewMemAuditStore()

	// Services
	userService := services.NewUserService(users, ledgers)
	ledgerService := services.NewLedgerService(ledgers)
	leaderboardService := services.NewLeaderboardService(users, ledgers)
	auditService := services.NewAuditService(audit)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Router mirrors cmd/api
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())

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

	protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)

	return &testApp{Ledgers: ledgers, Users: users, Audit: audit, Router: router}
}

// do performs a request against the test router with an optional JSON body
// and bearer token.
func (app *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// register creates a user via the API and returns the issued token.
func (app *testApp) register(t *testing.T, userID string) string {
	t.Helper()

	rec := app.do(t, http.MethodPost, "/register", "", gin.H{
		"userid":   userID,
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: expected 200, got %d (%s)", userID, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the register response")
	}
	return resp.Token
}

// decode unmarshals the response body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
