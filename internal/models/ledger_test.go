package models

import "testing"

func TestNewLedger(t *testing.T) {
	ledger := NewLedger("alice")

	if ledger.UserID != "alice" {
		t.Errorf("expected user id alice, got %s", ledger.UserID)
	}
	if len(ledger.Months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(ledger.Months))
	}

	for i, m := range ledger.Months {
		if m.Month != MonthNames[i] {
			t.Errorf("month %d: expected %s, got %s", i, MonthNames[i], m.Month)
		}
		if m.MonthlyBudget != 900 {
			t.Errorf("%s: expected monthly budget 900, got %d", m.Month, m.MonthlyBudget)
		}
		if m.AmountSpent != 0 {
			t.Errorf("%s: expected zero spend, got %d", m.Month, m.AmountSpent)
		}
		if len(m.Categories) != 2 {
			t.Fatalf("%s: expected 2 default categories, got %d", m.Month, len(m.Categories))
		}
		if m.Categories[0].Category != "Food" || m.Categories[0].TotalBudget != 600 {
			t.Errorf("%s: unexpected first category %+v", m.Month, m.Categories[0])
		}
		if m.Categories[1].Category != "Transportation" || m.Categories[1].TotalBudget != 300 {
			t.Errorf("%s: unexpected second category %+v", m.Month, m.Categories[1])
		}
	}
}

func TestMonthRecordTotalSpent(t *testing.T) {
	m := MonthRecord{
		Month: "January",
		Categories: []CategoryRecord{
			{Category: "Food", TotalBudget: 600, SubCategories: []SubCategoryRecord{
				{SubCategory: "Groceries", AmountSpent: 200},
				{SubCategory: "Dining", AmountSpent: 150},
			}},
			{Category: "Transportation", TotalBudget: 300, SubCategories: []SubCategoryRecord{
				{SubCategory: "Bus", AmountSpent: 40},
			}},
			{Category: "Empty", TotalBudget: 100},
		},
	}

	if got := m.TotalSpent(); got != 390 {
		t.Errorf("expected total spent 390, got %d", got)
	}

	// The stored derived field only changes through recomputation.
	if m.AmountSpent != 0 {
		t.Errorf("expected stored spend untouched, got %d", m.AmountSpent)
	}
	m.RecomputeSpent()
	if m.AmountSpent != 390 {
		t.Errorf("expected recomputed spend 390, got %d", m.AmountSpent)
	}
}

func TestSavings(t *testing.T) {
	m := MonthRecord{MonthlyBudget: 900, AmountSpent: 350}
	if got := m.Savings(); got != 550 {
		t.Errorf("expected savings 550, got %d", got)
	}

	// Overspending yields negative savings.
	m.AmountSpent = 1000
	if got := m.Savings(); got != -100 {
		t.Errorf("expected savings -100, got %d", got)
	}
}

func TestFindCategoryFirstMatch(t *testing.T) {
	m := MonthRecord{
		Categories: []CategoryRecord{
			{Category: "Food", TotalBudget: 600},
			{Category: "Food", TotalBudget: 100},
		},
	}

	c := m.FindCategory("Food")
	if c == nil {
		t.Fatal("expected a match")
	}
	if c.TotalBudget != 600 {
		t.Errorf("expected first match (budget 600), got %d", c.TotalBudget)
	}
	if m.FindCategory("Rent") != nil {
		t.Error("expected nil for unknown category")
	}
}

func TestCategoryRemainingBudget(t *testing.T) {
	c := CategoryRecord{
		Category:    "Food",
		TotalBudget: 600,
		SubCategories: []SubCategoryRecord{
			{SubCategory: "Groceries", AmountSpent: 200},
		},
	}
	if got := c.RemainingBudget(); got != 400 {
		t.Errorf("expected remaining 400, got %d", got)
	}
}

func TestIsMonthName(t *testing.T) {
	for _, name := range MonthNames {
		if !IsMonthName(name) {
			t.Errorf("expected %s to be a month name", name)
		}
	}
	for _, name := range []string{"", "january", "Smarch", "Jan"} {
		if IsMonthName(name) {
			t.Errorf("expected %q not to be a month name", name)
		}
	}
}

func TestFindMonth(t *testing.T) {
	ledger := NewLedger("bob")
	if m := ledger.FindMonth("July"); m == nil || m.Month != "July" {
		t.Errorf("expected July record, got %+v", m)
	}
	if ledger.FindMonth("Sometober") != nil {
		t.Error("expected nil for unknown month")
	}
}
