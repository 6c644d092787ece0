package services

import (
	"context"

	"budgetboard/internal/models"
)

// UserServicer defines the contract for registration and login.
type UserServicer interface {
	// Register creates the credential record and the user's initial
	// twelve-month ledger in one logical step.
	Register(ctx context.Context, userID, password, email, fullName string) (*models.User, error)
	AttemptLogin(ctx context.Context, userID, password string) (*models.User, error)
}

// LedgerServicer is the mutation engine over budget ledgers. Every mutator is
// a whole-document load-modify-store against a single snapshot: the month's
// derived spend total is recomputed from scratch before the write, and no
// partial state is ever persisted.
type LedgerServicer interface {
	GetLedger(ctx context.Context, userID string) (*models.Ledger, error)
	GetMonth(ctx context.Context, userID, month string) (*models.MonthRecord, error)

	CreateLedger(ctx context.Context, userID string, months []models.MonthRecord) (*models.Ledger, error)
	ReplaceLedger(ctx context.Context, userID string, months []models.MonthRecord) (*models.Ledger, error)

	AddCategory(ctx context.Context, userID, month string, category models.CategoryRecord) (*models.MonthRecord, error)
	DeleteCategory(ctx context.Context, userID, month, category string) (*models.MonthRecord, error)
	ModifyCategoryBudget(ctx context.Context, userID, month, category string, newBudget int) (*models.MonthRecord, error)

	AddSubCategory(ctx context.Context, userID, month, category string, sub models.SubCategoryRecord) (*models.MonthRecord, error)
	DeleteSubCategory(ctx context.Context, userID, month, category, subCategory string) (*models.MonthRecord, error)
	UpdateSubCategoryAmount(ctx context.Context, userID, month, category, subCategory string, newAmount int) (*models.MonthRecord, error)
}

// LeaderboardServicer ranks users by savings for a month.
type LeaderboardServicer interface {
	// Rank returns entries sorted descending by savings. Users without a
	// ledger or without the requested month are silently excluded; ties
	// keep registration order. An empty slice is a valid result.
	Rank(ctx context.Context, month string) ([]models.LeaderboardEntry, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, ipAddress string, changes map[string]any)
}
