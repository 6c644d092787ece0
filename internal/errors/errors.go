// Package errors provides custom error types for the Budgetboard API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors. A duplicate userid on registration is reported as a plain 400
// to match the public contract.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrUserExists   = &AppError{Code: "USER_EXISTS", Message: "User already exists", StatusCode: http.StatusBadRequest}
)

// Ledger errors. Each missing level of the document tree gets its own code so
// clients can tell which path segment failed to resolve.
var (
	ErrLedgerNotFound      = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found.", StatusCode: http.StatusNotFound}
	ErrLedgerExists        = &AppError{Code: "EXPENSE_EXISTS", Message: "Expense document already exists", StatusCode: http.StatusBadRequest}
	ErrMonthNotFound       = &AppError{Code: "MONTH_NOT_FOUND", Message: "Month not found.", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found.", StatusCode: http.StatusNotFound}
	ErrSubCategoryNotFound = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Subcategory not found.", StatusCode: http.StatusNotFound}
)

// Budget rule violations. BudgetExceeded is a client-correctable error, never
// a server fault; the message carries the remaining budget so the caller can
// retry with a smaller amount.
var (
	ErrBudgetExceeded = &AppError{Code: "BUDGET_EXCEEDED", Message: "Expense exceeds remaining budget.", StatusCode: http.StatusBadRequest}
	ErrWriteConflict  = &AppError{Code: "WRITE_CONFLICT", Message: "Document was modified concurrently, please retry", StatusCode: http.StatusConflict}
)

// BudgetExceeded returns a budget violation error carrying the remaining
// budget for the category.
func BudgetExceeded(remaining int) *AppError {
	return WithMessage(ErrBudgetExceeded,
		fmt.Sprintf("Expense exceeds remaining budget. Remaining budget: $%d", remaining))
}
