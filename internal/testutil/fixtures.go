package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"budgetboard/internal/models"
	"budgetboard/internal/store"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser registers a user with a unique id and the default ledger.
func CreateTestUser(t *testing.T, users store.UserStore, ledgers store.LedgerStore) *models.User {
	t.Helper()
	return CreateTestUserWithID(t, users, ledgers, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithID registers a user with the given id and the default ledger.
func CreateTestUserWithID(t *testing.T, users store.UserStore, ledgers store.LedgerStore, userID string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		UserID:   userID,
		Password: string(hash),
		Email:    userID + "@test.com",
	}
	if err := users.Insert(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if err := ledgers.Insert(context.Background(), models.NewLedger(userID)); err != nil {
		t.Fatalf("failed to create test ledger: %v", err)
	}
	return user
}

// SeedSpend appends a spend entry directly to the stored ledger, bypassing
// the budget check, and recomputes the month total.
func SeedSpend(t *testing.T, ledgers store.LedgerStore, userID, month, category, subCategory string, amount int) {
	t.Helper()

	ctx := context.Background()
	ledger, err := ledgers.Get(ctx, userID)
	if err != nil {
		t.Fatalf("failed to load ledger for seeding: %v", err)
	}
	m := ledger.FindMonth(month)
	if m == nil {
		t.Fatalf("month %q not found in ledger", month)
	}
	c := m.FindCategory(category)
	if c == nil {
		t.Fatalf("category %q not found in month %q", category, month)
	}
	c.SubCategories = append(c.SubCategories, models.SubCategoryRecord{
		SubCategory: subCategory,
		AmountSpent: amount,
	})
	m.RecomputeSpent()
	if err := ledgers.Update(ctx, ledger); err != nil {
		t.Fatalf("failed to store seeded ledger: %v", err)
	}
}

// GetMonth loads the stored month record, failing the test if absent.
func GetMonth(t *testing.T, ledgers store.LedgerStore, userID, month string) *models.MonthRecord {
	t.Helper()

	ledger, err := ledgers.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to load ledger: %v", err)
	}
	m := ledger.FindMonth(month)
	if m == nil {
		t.Fatalf("month %q not found in ledger", month)
	}
	return m
}
