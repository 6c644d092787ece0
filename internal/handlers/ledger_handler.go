package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/models"
	"budgetboard/internal/services"
)

// LedgerHandler handles budget ledger requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, auditService: auditService}
}

// LedgerRequest represents a whole-document create or replace payload.
type LedgerRequest struct {
	Months []models.MonthRecord `json:"months" binding:"required"`
}

// CategoryRequest represents the payload for adding a category to a month.
type CategoryRequest struct {
	Category      string                     `json:"category" binding:"required,min=1,max=100"`
	TotalBudget   int                        `json:"total_budget" binding:"gte=0"`
	SubCategories []models.SubCategoryRecord `json:"sub_categories" binding:"dive"`
}

// SubCategoryRequest represents the payload for adding a spend entry.
type SubCategoryRequest struct {
	SubCategory string `json:"sub_category" binding:"required,min=1,max=100"`
	AmountSpent int    `json:"amount_spent" binding:"gte=0"`
}

// GetLedger returns the user's whole expense document.
// @Summary     Read full ledger
// @Description Get the user's entire budget document
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Success     200 {object} models.Ledger "Budget document"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId} [get]
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	ledger, err := h.ledgerService.GetLedger(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// GetMonth returns a single month record.
// @Summary     Read month
// @Description Get one month's budget record
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId path string true "User ID"
// @Param       month  path string true "Month name"
// @Success     200 {object} models.MonthRecord "Month record"
// @Failure     404 {object} ErrorResponse "Expense or month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/month/{month} [get]
func (h *LedgerHandler) GetMonth(c *gin.Context) {
	month, err := pathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	record, err := h.ledgerService.GetMonth(c.Request.Context(), c.Param("userId"), month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CreateLedger creates a whole expense document for a user.
// @Summary     Create ledger
// @Description Create a user's budget document wholesale (bulk import)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       userId  path string        true "User ID"
// @Param       request body LedgerRequest true "Budget document"
// @Success     200 {object} MessageResponse "Created"
// @Failure     400 {object} ErrorResponse "Invalid input or document exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId} [post]
func (h *LedgerHandler) CreateLedger(c *gin.Context) {
	userID := c.Param("userId")

	var req LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if _, err := h.ledgerService.CreateLedger(c.Request.Context(), userID, req.Months); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "ledger", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense created successfully."})
}

// ReplaceLedger overwrites the user's expense document unconditionally.
// @Summary     Replace ledger
// @Description Replace the user's budget document (last writer wins)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       userId  path string        true "User ID"
// @Param       request body LedgerRequest true "Budget document"
// @Success     200 {object} MessageResponse "Replaced"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId} [put]
func (h *LedgerHandler) ReplaceLedger(c *gin.Context) {
	userID := c.Param("userId")

	var req LedgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if _, err := h.ledgerService.ReplaceLedger(c.Request.Context(), userID, req.Months); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "REPLACE_EXPENSE", "ledger", c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully."})
}

// AddCategory appends a category to a month.
// @Summary     Add category
// @Description Add a budget category to a month
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       userId  path string          true "User ID"
// @Param       month   path string          true "Month name"
// @Param       request body CategoryRequest true "Category details"
// @Success     200 {object} MessageResponse "Category added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense or month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/month/{month} [post]
func (h *LedgerHandler) AddCategory(c *gin.Context) {
	userID := c.Param("userId")
	month, err := pathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category := models.CategoryRecord{
		Category:      req.Category,
		TotalBudget:   req.TotalBudget,
		SubCategories: req.SubCategories,
	}
	if _, err := h.ledgerService.AddCategory(c.Request.Context(), userID, month, category); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_CATEGORY", "category", c.ClientIP(),
		map[string]any{"month": month, "category": req.Category, "total_budget": req.TotalBudget})

	c.JSON(http.StatusOK, gin.H{"message": "Category added successfully and total amount updated."})
}

// DeleteCategory removes all categories with the given name from a month.
// @Summary     Delete category
// @Description Delete a budget category from a month
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId   path string true "User ID"
// @Param       month    path string true "Month name"
// @Param       category path string true "Category name"
// @Success     200 {object} MessageResponse "Category deleted"
// @Failure     404 {object} ErrorResponse "Expense or month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/month/{month}/category/{category} [delete]
func (h *LedgerHandler) DeleteCategory(c *gin.Context) {
	userID := c.Param("userId")
	month, err := pathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.ledgerService.DeleteCategory(c.Request.Context(), userID, month, c.Param("category")); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CATEGORY", "category", c.ClientIP(),
		map[string]any{"month": month, "category": c.Param("category")})

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully and total amount updated."})
}

// ModifyBudget sets a category's budget and shifts the month budget by the delta.
// @Summary     Modify category budget
// @Description Update a category's budget; the monthly budget absorbs the difference
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId     path  string true "User ID"
// @Param       month      query string true "Month name"
// @Param       category   query string true "Category name"
// @Param       new_budget query int    true "New category budget"
// @Success     200 {object} MessageResponse "Budget updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense, month, or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/modify-budget [put]
func (h *LedgerHandler) ModifyBudget(c *gin.Context) {
	userID := c.Param("userId")
	month := c.Query("month")
	category := c.Query("category")
	if month == "" || category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month and category are required"))
		return
	}

	newBudget, err := strconv.Atoi(c.Query("new_budget"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "new_budget must be an integer"))
		return
	}

	if _, err := h.ledgerService.ModifyCategoryBudget(c.Request.Context(), userID, month, category, newBudget); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "MODIFY_BUDGET", "category", c.ClientIP(),
		map[string]any{"month": month, "category": category, "new_budget": newBudget})

	c.JSON(http.StatusOK, gin.H{"message": "Budget for " + category + " updated successfully. Monthly budget adjusted."})
}

// AddSubCategory appends a spend entry to a category.
// @Summary     Add sub-category
// @Description Add an itemized spend entry to a category, enforcing the category budget
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       userId   path string             true "User ID"
// @Param       month    path string             true "Month name"
// @Param       category path string             true "Category name"
// @Param       request  body SubCategoryRequest true "Spend entry"
// @Success     200 {object} MessageResponse "Sub-category added"
// @Failure     400 {object} ErrorResponse "Invalid input or budget exceeded"
// @Failure     404 {object} ErrorResponse "Expense, month, or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/month/{month}/category/{category} [post]
func (h *LedgerHandler) AddSubCategory(c *gin.Context) {
	userID := c.Param("userId")
	month, err := pathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sub := models.SubCategoryRecord{SubCategory: req.SubCategory, AmountSpent: req.AmountSpent}
	if _, err := h.ledgerService.AddSubCategory(c.Request.Context(), userID, month, c.Param("category"), sub); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_SUBCATEGORY", "subcategory", c.ClientIP(),
		map[string]any{"month": month, "category": c.Param("category"), "sub_category": req.SubCategory, "amount_spent": req.AmountSpent})

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory added successfully and total amount updated."})
}

// DeleteSubCategory removes all matching spend entries from a category.
// @Summary     Delete sub-category
// @Description Delete a spend entry from a category
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId      path string true "User ID"
// @Param       month       path string true "Month name"
// @Param       category    path string true "Category name"
// @Param       subCategory path string true "Sub-category name"
// @Success     200 {object} MessageResponse "Sub-category deleted"
// @Failure     404 {object} ErrorResponse "Expense, month, or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/month/{month}/category/{category}/subcategory/{subCategory} [delete]
func (h *LedgerHandler) DeleteSubCategory(c *gin.Context) {
	userID := c.Param("userId")
	month, err := pathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.ledgerService.DeleteSubCategory(c.Request.Context(), userID, month,
		c.Param("category"), c.Param("subCategory")); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SUBCATEGORY", "subcategory", c.ClientIP(),
		map[string]any{"month": month, "category": c.Param("category"), "sub_category": c.Param("subCategory")})

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted successfully and total amount updated."})
}

// UpdateSubCategoryAmount overwrites a spend entry's amount.
// @Summary     Update sub-category amount
// @Description Overwrite a spend entry's amount, enforcing the category budget
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       userId       path  string true "User ID"
// @Param       month        path  string true "Month name"
// @Param       category     path  string true "Category name"
// @Param       subCategory  path  string true "Sub-category name"
// @Param       amount_spent query int    true "New amount"
// @Success     200 {object} MessageResponse "Sub-category updated"
// @Failure     400 {object} ErrorResponse "Invalid input or budget exceeded"
// @Failure     404 {object} ErrorResponse "Expense, month, category, or sub-category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{userId}/month/{month}/category/{category}/subcategory/{subCategory} [put]
func (h *LedgerHandler) UpdateSubCategoryAmount(c *gin.Context) {
	userID := c.Param("userId")
	month, err := pathMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	amount, err := strconv.Atoi(c.Query("amount_spent"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount_spent must be an integer"))
		return
	}

	if _, err := h.ledgerService.UpdateSubCategoryAmount(c.Request.Context(), userID, month,
		c.Param("category"), c.Param("subCategory"), amount); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SUBCATEGORY", "subcategory", c.ClientIP(),
		map[string]any{"month": month, "category": c.Param("category"), "sub_category": c.Param("subCategory"), "amount_spent": amount})

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory updated successfully."})
}
