package services

import (
	"context"
	"errors"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/models"
	"budgetboard/internal/store"
)

// casRetries bounds how many times a mutation is reapplied to a fresh
// snapshot after losing a version race.
const casRetries = 3

// ledgerService implements the mutation engine over a LedgerStore.
type ledgerService struct {
	ledgers store.LedgerStore
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(ledgers store.LedgerStore) LedgerServicer {
	return &ledgerService{ledgers: ledgers}
}

// mutate runs the load-modify-store cycle: fetch the current snapshot, apply
// the transform, write back with a version check. A domain error from apply
// abandons the operation before any write; a version conflict re-reads and
// reapplies, up to casRetries attempts.
func (s *ledgerService) mutate(ctx context.Context, userID string, apply func(*models.Ledger) error) (*models.Ledger, error) {
	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		ledger, err := s.ledgers.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.ErrLedgerNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := apply(ledger); err != nil {
			return nil, err
		}

		err = s.ledgers.Update(ctx, ledger)
		if err == nil {
			return ledger, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		lastErr = err
	}
	return nil, apperrors.Wrap(apperrors.ErrWriteConflict, lastErr)
}

// mutateMonth is mutate scoped to one month; the transform runs after the
// month is resolved and the month's spend total is recomputed afterwards.
func (s *ledgerService) mutateMonth(ctx context.Context, userID, month string, apply func(*models.MonthRecord) error) (*models.MonthRecord, error) {
	ledger, err := s.mutate(ctx, userID, func(l *models.Ledger) error {
		m := l.FindMonth(month)
		if m == nil {
			return apperrors.ErrMonthNotFound
		}
		if err := apply(m); err != nil {
			return err
		}
		m.RecomputeSpent()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ledger.FindMonth(month), nil
}

// GetLedger returns the user's whole ledger.
func (s *ledgerService) GetLedger(ctx context.Context, userID string) (*models.Ledger, error) {
	ledger, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ledger, nil
}

// GetMonth returns one month record from the user's ledger.
func (s *ledgerService) GetMonth(ctx context.Context, userID, month string) (*models.MonthRecord, error) {
	ledger, err := s.GetLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := ledger.FindMonth(month)
	if m == nil {
		return nil, apperrors.ErrMonthNotFound
	}
	return m, nil
}

// CreateLedger inserts a whole ledger for a user that has none yet.
// No invariant re-validation is performed; the caller is trusted.
func (s *ledgerService) CreateLedger(ctx context.Context, userID string, months []models.MonthRecord) (*models.Ledger, error) {
	ledger := &models.Ledger{UserID: userID, Months: months}
	if err := s.ledgers.Insert(ctx, ledger); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperrors.ErrLedgerExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ledger, nil
}

// ReplaceLedger unconditionally overwrites the user's ledger (bulk import).
// Last writer wins; the version counter restarts.
func (s *ledgerService) ReplaceLedger(ctx context.Context, userID string, months []models.MonthRecord) (*models.Ledger, error) {
	ledger := &models.Ledger{UserID: userID, Months: months}
	if err := s.ledgers.Replace(ctx, ledger); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ledger, nil
}

// AddCategory appends a category to the month's category list. Duplicate
// category names are accepted; later name lookups resolve to the first match.
func (s *ledgerService) AddCategory(ctx context.Context, userID, month string, category models.CategoryRecord) (*models.MonthRecord, error) {
	if category.SubCategories == nil {
		category.SubCategories = []models.SubCategoryRecord{}
	}
	return s.mutateMonth(ctx, userID, month, func(m *models.MonthRecord) error {
		m.Categories = append(m.Categories, category)
		return nil
	})
}

// DeleteCategory removes every category with the given name from the month.
// Removing a name that is not present is a successful no-op.
func (s *ledgerService) DeleteCategory(ctx context.Context, userID, month, category string) (*models.MonthRecord, error) {
	return s.mutateMonth(ctx, userID, month, func(m *models.MonthRecord) error {
		kept := m.Categories[:0]
		for _, c := range m.Categories {
			if c.Category != category {
				kept = append(kept, c)
			}
		}
		m.Categories = kept
		return nil
	})
}

// ModifyCategoryBudget sets the category's budget and shifts the month's
// budget by the delta. The month budget is a running total of historical
// edits, deliberately not recomputed from the live categories, so deleting a
// category later leaves its last budget contribution behind.
func (s *ledgerService) ModifyCategoryBudget(ctx context.Context, userID, month, category string, newBudget int) (*models.MonthRecord, error) {
	if newBudget < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget must not be negative")
	}
	return s.mutateMonth(ctx, userID, month, func(m *models.MonthRecord) error {
		c := m.FindCategory(category)
		if c == nil {
			return apperrors.ErrCategoryNotFound
		}
		oldBudget := c.TotalBudget
		c.TotalBudget = newBudget
		m.MonthlyBudget += newBudget - oldBudget
		return nil
	})
}

// AddSubCategory appends a spend entry to the category, refusing any amount
// beyond the category's remaining budget. Spending exactly the remaining
// budget is allowed.
func (s *ledgerService) AddSubCategory(ctx context.Context, userID, month, category string, sub models.SubCategoryRecord) (*models.MonthRecord, error) {
	if sub.AmountSpent < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount_spent must not be negative")
	}
	return s.mutateMonth(ctx, userID, month, func(m *models.MonthRecord) error {
		c := m.FindCategory(category)
		if c == nil {
			return apperrors.ErrCategoryNotFound
		}
		remaining := c.RemainingBudget()
		if sub.AmountSpent > remaining {
			return apperrors.BudgetExceeded(remaining)
		}
		c.SubCategories = append(c.SubCategories, sub)
		return nil
	})
}

// DeleteSubCategory removes every matching-named spend entry from the
// category. Removing a name that is not present is a successful no-op.
func (s *ledgerService) DeleteSubCategory(ctx context.Context, userID, month, category, subCategory string) (*models.MonthRecord, error) {
	return s.mutateMonth(ctx, userID, month, func(m *models.MonthRecord) error {
		c := m.FindCategory(category)
		if c == nil {
			return apperrors.ErrCategoryNotFound
		}
		kept := c.SubCategories[:0]
		for _, sc := range c.SubCategories {
			if sc.SubCategory != subCategory {
				kept = append(kept, sc)
			}
		}
		c.SubCategories = kept
		return nil
	})
}

// UpdateSubCategoryAmount overwrites the first matching spend entry's amount.
// The new amount is validated against the category budget the same way an
// insert is, with the entry's own previous amount excluded from current spend.
func (s *ledgerService) UpdateSubCategoryAmount(ctx context.Context, userID, month, category, subCategory string, newAmount int) (*models.MonthRecord, error) {
	if newAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount_spent must not be negative")
	}
	return s.mutateMonth(ctx, userID, month, func(m *models.MonthRecord) error {
		c := m.FindCategory(category)
		if c == nil {
			return apperrors.ErrCategoryNotFound
		}
		for i := range c.SubCategories {
			sc := &c.SubCategories[i]
			if sc.SubCategory != subCategory {
				continue
			}
			remaining := c.RemainingBudget() + sc.AmountSpent
			if newAmount > remaining {
				return apperrors.BudgetExceeded(remaining)
			}
			sc.AmountSpent = newAmount
			return nil
		}
		return apperrors.ErrSubCategoryNotFound
	})
}
