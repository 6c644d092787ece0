package testutil_test

import (
	"context"
	"errors"
	"testing"

	apperrors "budgetboard/internal/errors"
	"budgetboard/internal/models"
	"budgetboard/internal/store"
	"budgetboard/internal/testutil"
)

func TestFixtures(t *testing.T) {
	users := testutil.NewMemUserStore()
	ledgers := testutil.NewMemLedgerStore()

	user := testutil.CreateTestUser(t, users, ledgers)
	if user.UserID == "" {
		t.Fatal("user should have a non-empty id")
	}

	ledger, err := ledgers.Get(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("expected a default ledger: %v", err)
	}
	if len(ledger.Months) != 12 {
		t.Errorf("expected 12 months, got %d", len(ledger.Months))
	}

	testutil.SeedSpend(t, ledgers, user.UserID, "March", "Food", "Groceries", 150)
	m := testutil.GetMonth(t, ledgers, user.UserID, "March")
	if m.AmountSpent != 150 {
		t.Errorf("expected seeded spend 150, got %d", m.AmountSpent)
	}
}

func TestMemLedgerStoreVersioning(t *testing.T) {
	ledgers := testutil.NewMemLedgerStore()
	ctx := context.Background()

	if err := ledgers.Insert(ctx, models.NewLedger("alice")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	t.Run("update bumps version", func(t *testing.T) {
		ledger, err := ledgers.Get(ctx, "alice")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		before := ledger.Version
		if err := ledgers.Update(ctx, ledger); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if ledger.Version != before+1 {
			t.Errorf("expected version %d, got %d", before+1, ledger.Version)
		}
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale, err := ledgers.Get(ctx, "alice")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if err := ledgers.Update(ctx, stale); err != nil {
			t.Fatalf("first update failed: %v", err)
		}

		stale.Version--
		if err := ledgers.Update(ctx, stale); !errors.Is(err, store.ErrVersionConflict) {
			t.Errorf("expected ErrVersionConflict, got %v", err)
		}
	})

	t.Run("stored state does not alias caller state", func(t *testing.T) {
		ledger, err := ledgers.Get(ctx, "alice")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		ledger.Months[0].MonthlyBudget = 1

		again, err := ledgers.Get(ctx, "alice")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if again.Months[0].MonthlyBudget == 1 {
			t.Error("mutating a returned ledger should not affect stored state")
		}
	})

	t.Run("duplicate insert rejected", func(t *testing.T) {
		err := ledgers.Insert(ctx, models.NewLedger("alice"))
		if !errors.Is(err, store.ErrDuplicateKey) {
			t.Errorf("expected ErrDuplicateKey, got %v", err)
		}
	})
}

func TestAssertAppError(t *testing.T) {
	err := apperrors.WithMessage(apperrors.ErrCategoryNotFound, "custom message")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
