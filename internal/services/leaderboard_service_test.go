package services

import (
	"context"
	"testing"

	"budgetboard/internal/models"
	"budgetboard/internal/testutil"
)

func TestRank(t *testing.T) {
	t.Run("sorted_descending_by_savings", func(t *testing.T) {
		users := testutil.NewMemUserStore()
		ledgers := testutil.NewMemLedgerStore()
		testutil.CreateTestUserWithID(t, users, ledgers, "alice")
		testutil.CreateTestUserWithID(t, users, ledgers, "bob")
		testutil.CreateTestUserWithID(t, users, ledgers, "carol")

		// Savings: alice 900-200=700, bob 900-550=350, carol 900-0=900.
		testutil.SeedSpend(t, ledgers, "alice", "January", "Food", "Groceries", 200)
		testutil.SeedSpend(t, ledgers, "bob", "January", "Food", "Groceries", 550)

		svc := NewLeaderboardService(users, ledgers)
		entries, err := svc.Rank(context.Background(), "January")
		testutil.AssertNoError(t, err)

		want := []models.LeaderboardEntry{
			{UserID: "carol", TotalSavings: 900},
			{UserID: "alice", TotalSavings: 700},
			{UserID: "bob", TotalSavings: 350},
		}
		if len(entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(entries))
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("entry %d: expected %+v, got %+v", i, want[i], entries[i])
			}
		}
	})

	t.Run("negative_savings_rank_last", func(t *testing.T) {
		users := testutil.NewMemUserStore()
		ledgers := testutil.NewMemLedgerStore()
		testutil.CreateTestUserWithID(t, users, ledgers, "alice")
		testutil.CreateTestUserWithID(t, users, ledgers, "bob")

		// Overspend bob past his monthly budget via a raised category budget.
		svc := NewLedgerService(ledgers)
		_, err := svc.ModifyCategoryBudget(context.Background(), "bob", "January", "Food", 2000)
		testutil.AssertNoError(t, err)
		testutil.SeedSpend(t, ledgers, "bob", "January", "Food", "Splurge", 2500)

		entries, err := NewLeaderboardService(users, ledgers).Rank(context.Background(), "January")
		testutil.AssertNoError(t, err)

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].UserID != "alice" {
			t.Errorf("expected alice first, got %s", entries[0].UserID)
		}
		if entries[1].UserID != "bob" || entries[1].TotalSavings >= 0 {
			t.Errorf("expected bob last with negative savings, got %+v", entries[1])
		}
	})

	t.Run("users_without_month_excluded", func(t *testing.T) {
		users := testutil.NewMemUserStore()
		ledgers := testutil.NewMemLedgerStore()
		testutil.CreateTestUserWithID(t, users, ledgers, "alice")
		testutil.CreateTestUserWithID(t, users, ledgers, "bob")

		// Bob's ledger is trimmed down to a single month.
		testutil.AssertNoError(t, ledgers.Replace(context.Background(),
			&models.Ledger{UserID: "bob", Months: []models.MonthRecord{{Month: "February", MonthlyBudget: 100}}}))

		entries, err := NewLeaderboardService(users, ledgers).Rank(context.Background(), "January")
		testutil.AssertNoError(t, err)

		if len(entries) != 1 || entries[0].UserID != "alice" {
			t.Errorf("expected only alice, got %+v", entries)
		}
	})

	t.Run("user_without_ledger_excluded", func(t *testing.T) {
		users := testutil.NewMemUserStore()
		ledgers := testutil.NewMemLedgerStore()
		testutil.CreateTestUserWithID(t, users, ledgers, "alice")

		// Registered but no ledger document.
		testutil.AssertNoError(t, users.Insert(context.Background(), &models.User{UserID: "ghost"}))

		entries, err := NewLeaderboardService(users, ledgers).Rank(context.Background(), "January")
		testutil.AssertNoError(t, err)

		if len(entries) != 1 || entries[0].UserID != "alice" {
			t.Errorf("expected only alice, got %+v", entries)
		}
	})

	t.Run("ties_keep_registration_order", func(t *testing.T) {
		users := testutil.NewMemUserStore()
		ledgers := testutil.NewMemLedgerStore()
		for _, id := range []string{"first", "second", "third"} {
			testutil.CreateTestUserWithID(t, users, ledgers, id)
		}

		entries, err := NewLeaderboardService(users, ledgers).Rank(context.Background(), "January")
		testutil.AssertNoError(t, err)

		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		for i, id := range []string{"first", "second", "third"} {
			if entries[i].UserID != id {
				t.Errorf("position %d: expected %s, got %s", i, id, entries[i].UserID)
			}
		}
	})

	t.Run("empty_result_is_not_an_error", func(t *testing.T) {
		users := testutil.NewMemUserStore()
		ledgers := testutil.NewMemLedgerStore()

		entries, err := NewLeaderboardService(users, ledgers).Rank(context.Background(), "January")
		testutil.AssertNoError(t, err)
		if len(entries) != 0 {
			t.Errorf("expected empty leaderboard, got %+v", entries)
		}
	})
}
